package panel

import (
	"fmt"
	"maps"
	"slices"

	"github.com/chazu/polypanel/pkg/lattice"
)

// Index holds, for each direction, the forests of every plane that currently
// has exposed faces. Planes are created on their first face and dropped when
// their last face is removed.
type Index struct {
	planes [lattice.NumDirections]map[int]*Plane
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	ix := &Index{}
	for i := range ix.planes {
		ix.planes[i] = make(map[int]*Plane)
	}
	return ix
}

func (ix *Index) plane(d lattice.Direction, f lattice.FacePoint) *Plane {
	if !d.Valid() {
		return nil
	}
	return ix.planes[d][f.Plane(d.Axis())]
}

// Insert exposes f in direction d as a new single-member panel, creating the
// plane's forest if needed.
func (ix *Index) Insert(d lattice.Direction, f lattice.FacePoint) error {
	if !d.Valid() {
		return fmt.Errorf("insert %v: invalid direction %d", f, int(d))
	}
	coord := f.Plane(d.Axis())
	pl, ok := ix.planes[d][coord]
	if !ok {
		pl = NewPlane(d, coord)
		ix.planes[d][coord] = pl
	}
	return pl.Insert(f)
}

// Contains reports whether f is exposed in direction d.
func (ix *Index) Contains(d lattice.Direction, f lattice.FacePoint) bool {
	pl := ix.plane(d, f)
	return pl != nil && pl.Contains(f)
}

// Find returns the panel that owns f in direction d.
func (ix *Index) Find(d lattice.Direction, f lattice.FacePoint) (*Panel, error) {
	pl := ix.plane(d, f)
	if pl == nil {
		return nil, fmt.Errorf("find %v facing %s: %w", f, d, ErrFaceNotFound)
	}
	return pl.Find(f)
}

// Union merges the panels owning a and b in direction d. Faces in different
// planes are never merged.
func (ix *Index) Union(d lattice.Direction, a, b lattice.FacePoint) bool {
	pl := ix.plane(d, a)
	if pl == nil || b.Plane(d.Axis()) != pl.coord {
		return false
	}
	return pl.Union(a, b)
}

// Remove retires f in direction d. The plane is dropped once it has no faces.
func (ix *Index) Remove(d lattice.Direction, f lattice.FacePoint) error {
	pl := ix.plane(d, f)
	if pl == nil {
		return fmt.Errorf("remove %v facing %s: %w", f, d, ErrFaceNotFound)
	}
	if err := pl.Remove(f); err != nil {
		return err
	}
	if pl.Empty() {
		delete(ix.planes[d], pl.coord)
	}
	return nil
}

// Plane returns the forest for direction d at the doubled coordinate, or nil.
func (ix *Index) Plane(d lattice.Direction, coord int) *Plane {
	if !d.Valid() {
		return nil
	}
	return ix.planes[d][coord]
}

// Planes returns the planes of direction d in ascending coordinate order.
func (ix *Index) Planes(d lattice.Direction) []*Plane {
	if !d.Valid() {
		return nil
	}
	coords := slices.Sorted(maps.Keys(ix.planes[d]))
	out := make([]*Plane, len(coords))
	for i, c := range coords {
		out[i] = ix.planes[d][c]
	}
	return out
}

// FaceCount returns the number of exposed faces across all directions.
func (ix *Index) FaceCount() int {
	n := 0
	for _, planes := range ix.planes {
		for _, pl := range planes {
			n += pl.faces
		}
	}
	return n
}

// PanelCount returns the number of panels across all directions.
func (ix *Index) PanelCount() int {
	n := 0
	for _, planes := range ix.planes {
		for _, pl := range planes {
			n += len(pl.panels)
		}
	}
	return n
}
