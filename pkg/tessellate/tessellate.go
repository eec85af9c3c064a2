// Package tessellate builds a solid preview of a polycube with a geometry
// kernel. Voxels are merged into runs along X before meshing so the kernel
// sees one box per run instead of one per voxel.
package tessellate

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/chazu/polypanel/pkg/kernel"
	"github.com/chazu/polypanel/pkg/lattice"
	"github.com/chazu/polypanel/pkg/polycube"
)

// MeshName is the name given to polycube meshes.
const MeshName = "polycube"

// Run is a line of consecutive voxels along X starting at Start.
type Run struct {
	Start  lattice.Point
	Length int
}

// Runs groups the voxels of pc into maximal X runs, ordered by Z, Y, then X.
func Runs(pc *polycube.Polycube) []Run {
	voxels := pc.Voxels()
	slices.SortFunc(voxels, func(a, b lattice.Point) int {
		return cmp.Or(cmp.Compare(a.Z, b.Z), cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})

	var runs []Run
	for _, v := range voxels {
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			end := last.Start.Add(lattice.Point{X: last.Length})
			if end == v {
				last.Length++
				continue
			}
		}
		runs = append(runs, Run{Start: v, Length: 1})
	}
	return runs
}

// Solid returns the union of one box per run, or nil for an empty polycube.
func Solid(pc *polycube.Polycube, k kernel.Kernel) kernel.Solid {
	runs := Runs(pc)
	solids := make([]kernel.Solid, 0, len(runs))
	for _, r := range runs {
		box := k.Box(float64(r.Length), 1, 1)
		solids = append(solids, k.Translate(box, float64(r.Start.X), float64(r.Start.Y), float64(r.Start.Z)))
	}
	return k.Union(solids...)
}

// Tessellate meshes the polycube with k. It never mutates the polycube.
func Tessellate(pc *polycube.Polycube, k kernel.Kernel) (*kernel.Mesh, error) {
	if pc == nil || pc.Len() == 0 {
		return &kernel.Mesh{Name: MeshName}, nil
	}
	mesh, err := k.ToMesh(Solid(pc, k))
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for %d voxels: %w", pc.Len(), err)
	}
	mesh.Name = MeshName
	return mesh, nil
}
