// Package kernel defines the geometry kernel used to build a solid preview
// of a polycube. Implementations (sdfx) turn unions of axis-aligned boxes
// into triangle meshes.
package kernel

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds solids from boxes and meshes them.
type Kernel interface {
	// Box returns an x by y by z box with its minimum corner at the origin.
	Box(x, y, z float64) Solid

	// Union returns the union of all solids. It returns nil for no solids.
	Union(solids ...Solid) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh tessellates a solid.
	ToMesh(s Solid) (*Mesh, error)
}
