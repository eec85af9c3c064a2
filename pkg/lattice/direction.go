// Package lattice defines the integer geometry shared by the polycube
// packages: the three axes, the six principal directions, voxel points and
// doubled face points.
package lattice

import "fmt"

// Axis is one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Direction is a unit direction parallel to an axis.
type Direction int

const (
	XPos Direction = iota // +X
	XNeg                  // -X
	YPos                  // +Y
	YNeg                  // -Y
	ZPos                  // +Z
	ZNeg                  // -Z
)

// NumDirections is the number of principal directions.
const NumDirections = 6

// Directions lists every direction in iteration order.
var Directions = [NumDirections]Direction{XPos, XNeg, YPos, YNeg, ZPos, ZNeg}

var directionNames = [NumDirections]string{"xpos", "xneg", "ypos", "yneg", "zpos", "zneg"}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Valid reports whether d is one of the six principal directions.
func (d Direction) Valid() bool {
	return d >= XPos && d <= ZNeg
}

// ParseDirection returns the direction with the given name ("xpos", "zneg", ...).
func ParseDirection(name string) (Direction, error) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("invalid direction %q, expected one of xpos/xneg/ypos/yneg/zpos/zneg", name)
}

// Axis returns the axis d is parallel to.
func (d Direction) Axis() Axis {
	return Axis(d / 2)
}

// Sign returns +1 for positive directions and -1 for negative ones.
func (d Direction) Sign() int {
	if d%2 == 0 {
		return 1
	}
	return -1
}

// Negate returns the opposite direction on the same axis.
func (d Direction) Negate() Direction {
	return d ^ 1
}

// Offset returns the unit step along d.
func (d Direction) Offset() Point {
	var p Point
	p.set(d.Axis(), d.Sign())
	return p
}

// InPlane returns the four directions orthogonal to d's axis, in iteration
// order. These are the directions in which a face of d can have neighbors
// in its own plane.
func (d Direction) InPlane() [4]Direction {
	var out [4]Direction
	i := 0
	for _, e := range Directions {
		if e.Axis() != d.Axis() {
			out[i] = e
			i++
		}
	}
	return out
}
