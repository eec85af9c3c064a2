package lattice

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is the integer coordinate of a voxel.
type Point struct {
	X, Y, Z int
}

// Origin is the voxel every polycube starts from.
var Origin = Point{}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Scale returns p*k.
func (p Point) Scale(k int) Point {
	return Point{p.X * k, p.Y * k, p.Z * k}
}

// Neighbor returns the voxel adjacent to p across its face in direction d.
func (p Point) Neighbor(d Direction) Point {
	return p.Add(d.Offset())
}

// Get returns the coordinate of p along a.
func (p Point) Get(a Axis) int {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

func (p *Point) set(a Axis, v int) {
	switch a {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	default:
		p.Z = v
	}
}

// Less orders points by X, then Y, then Z.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.Z < q.Z
}

// Compare returns -1, 0 or +1 following Less. It is suitable for slices.SortFunc.
func (p Point) Compare(q Point) int {
	switch {
	case p == q:
		return 0
	case p.Less(q):
		return -1
	default:
		return 1
	}
}

// FacePoint is the midpoint between a voxel and one of its six neighbors.
// Coordinates are stored doubled so half-integer positions stay exact:
// the face of voxel v in direction d is 2*v + offset(d).
type FacePoint Point

// FaceOf returns the face point shared by voxel v and its neighbor in
// direction d. FaceOf(v, d) == FaceOf(v.Neighbor(d), d.Negate()).
func FaceOf(v Point, d Direction) FacePoint {
	return FacePoint(v.Scale(2).Add(d.Offset()))
}

func (f FacePoint) String() string {
	return fmt.Sprintf("(%s,%s,%s)", HalfString(f.X), HalfString(f.Y), HalfString(f.Z))
}

// Step returns the face one unit away from f in direction d.
func (f FacePoint) Step(d Direction) FacePoint {
	return FacePoint(Point(f).Add(d.Offset().Scale(2)))
}

// Plane returns the doubled coordinate of f along a. For a face exposed in a
// direction on axis a this identifies the face's plane; opposite directions
// on the same axis produce the same key for the same geometric plane.
func (f FacePoint) Plane(a Axis) int {
	return Point(f).Get(a)
}

// Cell projects f onto the plane perpendicular to a, dropping the a
// coordinate: X keeps (y, z), Y keeps (x, z), Z keeps (x, y). The in-plane
// coordinates of a face are always even, so the result is in voxel units.
func (f FacePoint) Cell(a Axis) (u, v int) {
	switch a {
	case AxisX:
		return f.Y / 2, f.Z / 2
	case AxisY:
		return f.X / 2, f.Z / 2
	default:
		return f.X / 2, f.Y / 2
	}
}

// Compare orders face points like Point.Compare.
func (f FacePoint) Compare(g FacePoint) int {
	return Point(f).Compare(Point(g))
}

// PlaneValue converts a doubled coordinate to its real value.
func PlaneValue(doubled int) float64 {
	return float64(doubled) / 2
}

// HalfString formats a doubled coordinate as its real value without
// floating point, e.g. 1 -> "0.5", -3 -> "-1.5", 4 -> "2".
func HalfString(doubled int) string {
	var b strings.Builder
	if doubled < 0 {
		b.WriteByte('-')
		doubled = -doubled
	}
	b.WriteString(strconv.Itoa(doubled / 2))
	if doubled%2 != 0 {
		b.WriteString(".5")
	}
	return b.String()
}
