// Package panel tracks exposed polycube faces grouped into panels: maximal
// connected sets of faces that lie in one plane and face one direction.
//
// Each (direction, plane) pair owns a disjoint-set forest. Faces are
// assigned stable integer ids in an arena with parent links; forest roots
// carry the live member set of their panel. Lookups compress paths and
// unions merge the smaller panel into the larger, so each face event costs
// amortized near-constant time.
package panel

import (
	"errors"
	"fmt"
	"slices"

	"github.com/chazu/polypanel/pkg/lattice"
)

var (
	// ErrFaceNotFound is returned when a face is absent from its forest,
	// either because it was never exposed or because it has been covered.
	ErrFaceNotFound = errors.New("face not found")

	// ErrFaceExists is returned when inserting a face that is already live.
	ErrFaceExists = errors.New("face already exposed")

	// ErrFaceRetired is returned when inserting a face that was covered
	// earlier. Covered faces never become exposed again.
	ErrFaceRetired = errors.New("face already covered")

	// ErrWrongPlane is returned when a face does not lie in the plane it
	// is inserted into.
	ErrWrongPlane = errors.New("face not in plane")
)

// Plane is the disjoint-set forest over the faces exposed in a single plane
// for a single direction.
//
// Faces removed from their panel keep their arena slot: they may still sit on
// another face's path to its root.
type Plane struct {
	dir   lattice.Direction
	coord int // doubled coordinate along dir's axis

	ids    map[lattice.FacePoint]int
	points []lattice.FacePoint
	parent []int
	live   []bool

	panels map[int]*Panel // keyed by root id
	faces  int            // live faces
}

// Panel is one connected set of faces. A *Panel stays valid until the panel
// is merged into another or emptied; look it up again after mutating the
// plane.
type Panel struct {
	plane   *Plane
	root    int
	members map[int]struct{}
}

// NewPlane returns an empty forest for faces facing d at the given doubled
// plane coordinate.
func NewPlane(d lattice.Direction, coord int) *Plane {
	return &Plane{
		dir:    d,
		coord:  coord,
		ids:    make(map[lattice.FacePoint]int),
		panels: make(map[int]*Panel),
	}
}

// Direction returns the direction all faces of the plane face.
func (pl *Plane) Direction() lattice.Direction { return pl.dir }

// Coord returns the doubled plane coordinate.
func (pl *Plane) Coord() int { return pl.coord }

// FaceCount returns the number of live faces in the plane.
func (pl *Plane) FaceCount() int { return pl.faces }

// PanelCount returns the number of panels in the plane.
func (pl *Plane) PanelCount() int { return len(pl.panels) }

// Empty reports whether the plane has no live faces.
func (pl *Plane) Empty() bool { return pl.faces == 0 }

// Insert adds f as a new single-member panel.
func (pl *Plane) Insert(f lattice.FacePoint) error {
	if f.Plane(pl.dir.Axis()) != pl.coord {
		return fmt.Errorf("insert %v into %s plane %s: %w", f, pl.dir, lattice.HalfString(pl.coord), ErrWrongPlane)
	}
	if id, ok := pl.ids[f]; ok {
		if pl.live[id] {
			return fmt.Errorf("insert %v: %w", f, ErrFaceExists)
		}
		return fmt.Errorf("insert %v: %w", f, ErrFaceRetired)
	}

	id := len(pl.points)
	pl.ids[f] = id
	pl.points = append(pl.points, f)
	pl.parent = append(pl.parent, id)
	pl.live = append(pl.live, true)
	pl.panels[id] = &Panel{plane: pl, root: id, members: map[int]struct{}{id: {}}}
	pl.faces++
	return nil
}

// Contains reports whether f is a live face of the plane.
func (pl *Plane) Contains(f lattice.FacePoint) bool {
	id, ok := pl.ids[f]
	return ok && pl.live[id]
}

// Find returns the panel that owns f.
func (pl *Plane) Find(f lattice.FacePoint) (*Panel, error) {
	root, _, err := pl.find(f)
	if err != nil {
		return nil, err
	}
	return pl.panels[root], nil
}

// find returns the root id of f's tree and the number of parent links
// followed, then points every node on the path directly at the root.
func (pl *Plane) find(f lattice.FacePoint) (root, hops int, err error) {
	id, ok := pl.ids[f]
	if !ok || !pl.live[id] {
		return 0, 0, fmt.Errorf("find %v in %s plane %s: %w", f, pl.dir, lattice.HalfString(pl.coord), ErrFaceNotFound)
	}
	root = id
	for pl.parent[root] != root {
		root = pl.parent[root]
		hops++
	}
	for id != root {
		next := pl.parent[id]
		pl.parent[id] = root
		id = next
	}
	return root, hops, nil
}

// Union merges the panels owning a and b and reports whether a merge
// happened. It is a no-op when either face is absent or both already share a
// panel. The panel with fewer members joins the larger one; on a tie a's
// panel joins b's.
func (pl *Plane) Union(a, b lattice.FacePoint) bool {
	ra, _, err := pl.find(a)
	if err != nil {
		return false
	}
	rb, _, err := pl.find(b)
	if err != nil {
		return false
	}
	if ra == rb {
		return false
	}

	winner, loser := pl.panels[rb], pl.panels[ra]
	if len(loser.members) > len(winner.members) {
		winner, loser = loser, winner
	}
	pl.parent[loser.root] = winner.root
	for id := range loser.members {
		winner.members[id] = struct{}{}
	}
	delete(pl.panels, loser.root)
	return true
}

// Remove retires f from its panel. A panel left with no members is deleted.
func (pl *Plane) Remove(f lattice.FacePoint) error {
	root, _, err := pl.find(f)
	if err != nil {
		return err
	}
	id := pl.ids[f]
	pl.live[id] = false
	pl.faces--

	p := pl.panels[root]
	delete(p.members, id)
	if len(p.members) == 0 {
		delete(pl.panels, root)
	}
	return nil
}

// Panels returns the plane's panels ordered by their smallest member.
func (pl *Plane) Panels() []*Panel {
	out := make([]*Panel, 0, len(pl.panels))
	for _, p := range pl.panels {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Panel) int {
		return a.first().Compare(b.first())
	})
	return out
}

// Direction returns the direction the panel's faces face.
func (p *Panel) Direction() lattice.Direction { return p.plane.dir }

// Coord returns the doubled coordinate of the panel's plane.
func (p *Panel) Coord() int { return p.plane.coord }

// Len returns the number of member faces.
func (p *Panel) Len() int { return len(p.members) }

// Root returns the face at the root of the panel's tree. The root face may
// itself have been covered already; it still identifies the panel.
func (p *Panel) Root() lattice.FacePoint { return p.plane.points[p.root] }

// Contains reports whether f is a member of the panel.
func (p *Panel) Contains(f lattice.FacePoint) bool {
	id, ok := p.plane.ids[f]
	if !ok {
		return false
	}
	_, ok = p.members[id]
	return ok
}

// Members returns the member faces in ascending order.
func (p *Panel) Members() []lattice.FacePoint {
	out := make([]lattice.FacePoint, 0, len(p.members))
	for id := range p.members {
		out = append(out, p.plane.points[id])
	}
	slices.SortFunc(out, lattice.FacePoint.Compare)
	return out
}

func (p *Panel) first() lattice.FacePoint {
	var lo lattice.FacePoint
	started := false
	for id := range p.members {
		f := p.plane.points[id]
		if !started || f.Compare(lo) < 0 {
			lo, started = f, true
		}
	}
	return lo
}
