// Package outline traces the boundary of a set of grid cells as unit line
// segments.
package outline

import (
	"fmt"
	"maps"
	"slices"
)

// Cell is an integer grid cell covering the unit square [X, X+1] x [Y, Y+1].
type Cell struct {
	X, Y int
}

// Corner is a lattice point on cell boundaries.
type Corner struct {
	X, Y int
}

// Segment is one unit edge of an outline.
type Segment struct {
	Start, End Corner
}

func (s Segment) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

// offsets are the four edge directions of a cell, checked in this order.
var offsets = [4]Cell{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

func compareCells(a, b Cell) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}

// Trace returns one segment for every cell edge whose neighbor across that
// edge is not in cells. Edges shared by two cells cancel, so the result is
// the region's outline, including the outlines of any holes. Colinear
// segments are not merged. Duplicate cells are ignored and cells are visited
// in ascending order, so the output order is deterministic.
func Trace(cells []Cell) []Segment {
	set := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return TraceSet(set)
}

// TraceSet is Trace over a cell set.
func TraceSet(set map[Cell]struct{}) []Segment {
	var segs []Segment
	for _, c := range slices.SortedFunc(maps.Keys(set), compareCells) {
		for _, o := range offsets {
			if _, ok := set[Cell{c.X + o.X, c.Y + o.Y}]; ok {
				continue
			}
			segs = append(segs, edge(c, o))
		}
	}
	return segs
}

// edge returns the side of c facing o. With m the midpoint between c's
// center and its neighbor's, the endpoints are m +/- half a unit along the
// perpendicular. Doubled coordinates keep the arithmetic exact.
func edge(c, o Cell) Segment {
	mx := 2*c.X + o.X + 1
	my := 2*c.Y + o.Y + 1
	return Segment{
		Start: Corner{(mx + o.Y) / 2, (my + o.X) / 2},
		End:   Corner{(mx - o.Y) / 2, (my - o.X) / 2},
	}
}

// Bounds returns the smallest and largest corners touched by segs.
func Bounds(segs []Segment) (lo, hi Corner) {
	if len(segs) == 0 {
		return lo, hi
	}
	lo, hi = segs[0].Start, segs[0].Start
	for _, s := range segs {
		for _, p := range [2]Corner{s.Start, s.End} {
			lo = Corner{min(lo.X, p.X), min(lo.Y, p.Y)}
			hi = Corner{max(hi.X, p.X), max(hi.Y, p.Y)}
		}
	}
	return lo, hi
}
