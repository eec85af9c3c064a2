// Package polycube grows a solid of unit voxels one cube at a time and keeps
// its exposed faces grouped into panels.
//
// A face exists for voxel v and direction d exactly when v is occupied and
// its neighbor in direction d is not. Adding a voxel covers the faces it
// shares with occupied neighbors and exposes the rest, merging each new face
// with any exposed face beside it in the same plane.
package polycube

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/chazu/polypanel/pkg/lattice"
	"github.com/chazu/polypanel/pkg/panel"
)

// ErrOccupied is returned when adding a voxel that is already part of the
// polycube.
var ErrOccupied = errors.New("voxel already occupied")

// Polycube is a growing set of voxels and the panel index over its exposed
// faces. It is not safe for concurrent use.
type Polycube struct {
	voxels map[lattice.Point]struct{}
	index  *panel.Index
}

// New returns a polycube holding the single voxel at the origin, with its six
// faces exposed as six single-face panels.
func New() *Polycube {
	pc := &Polycube{
		voxels: make(map[lattice.Point]struct{}),
		index:  panel.NewIndex(),
	}
	if err := pc.Add(lattice.Origin); err != nil {
		panic(fmt.Sprintf("polycube: seeding origin: %v", err))
	}
	return pc
}

// Add places a voxel at p. It fails with ErrOccupied, leaving the polycube
// unchanged, if p is already occupied.
func (pc *Polycube) Add(p lattice.Point) error {
	if pc.Occupied(p) {
		return fmt.Errorf("polycube: add %v: %w", p, ErrOccupied)
	}
	pc.voxels[p] = struct{}{}

	for _, d := range lattice.Directions {
		face := lattice.FaceOf(p, d)

		if pc.Occupied(p.Neighbor(d)) {
			// The neighbor exposed this face towards us; it is interior now.
			if err := pc.index.Remove(d.Negate(), face); err != nil {
				return fmt.Errorf("polycube: add %v: covering %s face: %w", p, d.Negate(), err)
			}
			continue
		}

		if err := pc.index.Insert(d, face); err != nil {
			return fmt.Errorf("polycube: add %v: exposing %s face: %w", p, d, err)
		}
		for _, e := range d.InPlane() {
			pc.index.Union(d, face, face.Step(e))
		}
	}
	return nil
}

// AddAll adds the points in order and stops at the first error.
func (pc *Polycube) AddAll(points ...lattice.Point) error {
	for _, p := range points {
		if err := pc.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// Occupied reports whether p is part of the polycube.
func (pc *Polycube) Occupied(p lattice.Point) bool {
	_, ok := pc.voxels[p]
	return ok
}

// Len returns the number of voxels.
func (pc *Polycube) Len() int {
	return len(pc.voxels)
}

// Voxels returns the occupied points in ascending order.
func (pc *Polycube) Voxels() []lattice.Point {
	return slices.SortedFunc(maps.Keys(pc.voxels), lattice.Point.Compare)
}

// Bounds returns the inclusive minimum and maximum voxel coordinates.
func (pc *Polycube) Bounds() (lo, hi lattice.Point) {
	first := true
	for p := range pc.voxels {
		if first {
			lo, hi, first = p, p, false
			continue
		}
		lo = lattice.Point{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = lattice.Point{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}

// Exposed reports whether the face of voxel v in direction d is exposed.
func (pc *Polycube) Exposed(v lattice.Point, d lattice.Direction) bool {
	return pc.index.Contains(d, lattice.FaceOf(v, d))
}

// PanelOf returns the panel holding the face of voxel v in direction d.
func (pc *Polycube) PanelOf(v lattice.Point, d lattice.Direction) (*panel.Panel, error) {
	return pc.index.Find(d, lattice.FaceOf(v, d))
}

// Planes returns the planes holding exposed faces in direction d, in
// ascending coordinate order.
func (pc *Polycube) Planes(d lattice.Direction) []*panel.Plane {
	return pc.index.Planes(d)
}

// Panels returns every panel ordered by direction, plane and smallest member.
func (pc *Polycube) Panels() []*panel.Panel {
	var out []*panel.Panel
	for _, d := range lattice.Directions {
		for _, pl := range pc.index.Planes(d) {
			out = append(out, pl.Panels()...)
		}
	}
	return out
}

// FaceCount returns the number of exposed faces.
func (pc *Polycube) FaceCount() int {
	return pc.index.FaceCount()
}

// PanelCount returns the number of panels.
func (pc *Polycube) PanelCount() int {
	return pc.index.PanelCount()
}
