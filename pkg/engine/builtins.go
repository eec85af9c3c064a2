package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/polypanel/pkg/lattice"
	"github.com/chazu/polypanel/pkg/polycube"
	zygo "github.com/glycerine/zygomys/zygo"
)

// kwPrefix marks keywords rewritten into strings by preprocessSource.
const kwPrefix = "__kw_"

// maxCuboidVoxels bounds a single cuboid call.
const maxCuboidVoxels = 1 << 20

// preprocessSource adapts script source to zygomys:
//
//   - :keyword becomes the string "__kw_keyword"
//   - ; line comments become // comments
//   - kebab-case identifiers become snake_case (zygomys reads a-b as a
//     subtraction)
//
// String literals are copied untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := source
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c == '"' || c == '`':
			j := i + 1
			for j < len(b) && b[j] != c {
				if c == '"' && b[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j, len(b)-1)
			out.WriteString(b[i : j+1])
			i = j

		case c == ';':
			j := i
			for j < len(b) && b[j] == ';' {
				j++
			}
			k := j
			for k < len(b) && b[k] != '\n' {
				k++
			}
			out.WriteString("//")
			out.WriteString(b[j:k])
			i = k - 1

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && (isIdentChar(b[j]) || b[j] == '-') {
				j++
			}
			fmt.Fprintf(&out, "%q", kwPrefix+strings.ReplaceAll(b[i+1:j], "-", "_"))
			i = j - 1

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')

		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// sexpPoint carries a voxel coordinate between builtins.
type sexpPoint struct {
	p lattice.Point
}

func (s *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %d %d %d)", s.p.X, s.p.Y, s.p.Z)
}
func (s *sexpPoint) Type() *zygo.RegisteredType { return nil }

// kwArgs is an argument list split into keywords and positionals.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	res := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := keyword(args[i])
		if !ok {
			res.positional = append(res.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			res.kw[name] = args[i+1]
			i++
		} else {
			res.kw[name] = zygo.SexpNull
		}
	}
	return res
}

func keyword(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

func describe(s zygo.Sexp) string {
	if s == nil {
		return "nil"
	}
	return fmt.Sprintf("%T (%s)", s, s.SexpString(nil))
}

// toInt accepts integers and integral floats.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
		return 0, fmt.Errorf("expected integer, got %v", v.Val)
	}
	return 0, fmt.Errorf("expected integer, got %s", describe(s))
}

func toPoint(s zygo.Sexp) (lattice.Point, error) {
	if v, ok := s.(*sexpPoint); ok {
		return v.p, nil
	}
	return lattice.Point{}, fmt.Errorf("expected vec3, got %s", describe(s))
}

func toDirection(s zygo.Sexp) (lattice.Direction, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return 0, fmt.Errorf("expected direction keyword, got %s", describe(s))
	}
	return lattice.ParseDirection(strings.TrimPrefix(str.S, kwPrefix))
}

// extent returns the number of voxels in [lo, hi] along one axis, or false
// when it exceeds maxCuboidVoxels. The difference is taken in uint64 so
// extreme coordinates cannot wrap.
func extent(lo, hi int) (int, bool) {
	d := uint64(hi) - uint64(lo)
	if hi < lo || d >= maxCuboidVoxels {
		return 0, false
	}
	return int(d) + 1, true
}

// cuboidExtents returns the voxel counts of the inclusive box [lo, hi] along
// each axis, or false when the box holds more than maxCuboidVoxels.
func cuboidExtents(lo, hi lattice.Point) (dx, dy, dz int, ok bool) {
	dx, okX := extent(lo.X, hi.X)
	dy, okY := extent(lo.Y, hi.Y)
	dz, okZ := extent(lo.Z, hi.Z)
	if !okX || !okY || !okZ || dx > maxCuboidVoxels/dy/dz {
		return 0, 0, 0, false
	}
	return dx, dy, dz, true
}

// pointArgs reads either one vec3 or three integers.
func pointArgs(args []zygo.Sexp) (lattice.Point, error) {
	switch len(args) {
	case 1:
		return toPoint(args[0])
	case 3:
		var c [3]int
		for i, a := range args {
			n, err := toInt(a)
			if err != nil {
				return lattice.Point{}, fmt.Errorf("%c: %w", "xyz"[i], err)
			}
			c[i] = n
		}
		return lattice.Point{X: c[0], Y: c[1], Z: c[2]}, nil
	}
	return lattice.Point{}, fmt.Errorf("expected a vec3 or 3 integers, got %d arguments", len(args))
}

// registerBuiltins installs the voxel builtins, all operating on pc.
// Source must go through preprocessSource first so keywords are recognized.
func registerBuiltins(env *zygo.Zlisp, pc *polycube.Polycube) {

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		p, err := pointArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
		}
		return &sexpPoint{p: p}, nil
	})

	// (voxel 1 0 0) or (voxel (vec3 1 0 0))
	env.AddFunction("voxel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, err := pointArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("voxel: %w", err)
		}
		if err := pc.Add(p); err != nil {
			return zygo.SexpNull, fmt.Errorf("voxel: %w", err)
		}
		return &sexpPoint{p: p}, nil
	})

	// (walk :from (vec3 0 0 0) :dir :xpos :count 3) adds the count voxels
	// after :from along :dir and returns the last one.
	env.AddFunction("walk", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		from := lattice.Origin
		if v, ok := pa.kw["from"]; ok {
			p, err := toPoint(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("walk: from: %w", err)
			}
			from = p
		}
		v, ok := pa.kw["dir"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("walk requires :dir")
		}
		d, err := toDirection(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("walk: dir: %w", err)
		}
		count := 1
		if v, ok := pa.kw["count"]; ok {
			if count, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("walk: count: %w", err)
			}
		}
		if count < 0 || count > maxCuboidVoxels {
			return zygo.SexpNull, fmt.Errorf("walk: count %d out of range", count)
		}

		p := from
		for i := 0; i < count; i++ {
			p = p.Neighbor(d)
			if err := pc.Add(p); err != nil {
				return zygo.SexpNull, fmt.Errorf("walk: %w", err)
			}
		}
		return &sexpPoint{p: p}, nil
	})

	// (cuboid :min (vec3 0 0 0) :max (vec3 2 1 0)) fills the inclusive box,
	// skipping voxels that are already occupied, and returns how many it
	// added.
	env.AddFunction("cuboid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var corners [2]lattice.Point
		for i, key := range []string{"min", "max"} {
			v, ok := pa.kw[key]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("cuboid requires :%s", key)
			}
			p, err := toPoint(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cuboid: %s: %w", key, err)
			}
			corners[i] = p
		}
		lo, hi := corners[0], corners[1]
		if hi.X < lo.X || hi.Y < lo.Y || hi.Z < lo.Z {
			return zygo.SexpNull, fmt.Errorf("cuboid: max %v is below min %v", hi, lo)
		}
		dx, dy, dz, ok := cuboidExtents(lo, hi)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cuboid: %v..%v exceeds limit %d voxels", lo, hi, maxCuboidVoxels)
		}

		// Offsets instead of x <= hi.X so a corner at the int limit cannot wrap.
		added := 0
		for i := 0; i < dx; i++ {
			for j := 0; j < dy; j++ {
				for k := 0; k < dz; k++ {
					p := lo.Add(lattice.Point{X: i, Y: j, Z: k})
					if pc.Occupied(p) {
						continue
					}
					if err := pc.Add(p); err != nil {
						return zygo.SexpNull, fmt.Errorf("cuboid: %w", err)
					}
					added++
				}
			}
		}
		return &zygo.SexpInt{Val: int64(added)}, nil
	})

	// (voxel-count)
	env.AddFunction("voxel_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(pc.Len())}, nil
	})
}
