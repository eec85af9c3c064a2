package lattice

import "testing"

func TestDirectionNegate(t *testing.T) {
	tests := []struct {
		d, want Direction
	}{
		{XPos, XNeg},
		{XNeg, XPos},
		{YPos, YNeg},
		{YNeg, YPos},
		{ZPos, ZNeg},
		{ZNeg, ZPos},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.Negate(); got != tt.want {
				t.Errorf("Negate() = %v, want %v", got, tt.want)
			}
			if got := tt.d.Negate().Negate(); got != tt.d {
				t.Errorf("double Negate() = %v, want %v", got, tt.d)
			}
			if tt.d.Axis() != tt.want.Axis() {
				t.Errorf("negation changed axis: %v -> %v", tt.d.Axis(), tt.want.Axis())
			}
		})
	}
}

func TestDirectionOffset(t *testing.T) {
	tests := []struct {
		d    Direction
		want Point
	}{
		{XPos, Point{1, 0, 0}},
		{XNeg, Point{-1, 0, 0}},
		{YPos, Point{0, 1, 0}},
		{YNeg, Point{0, -1, 0}},
		{ZPos, Point{0, 0, 1}},
		{ZNeg, Point{0, 0, -1}},
	}
	for _, tt := range tests {
		if got := tt.d.Offset(); got != tt.want {
			t.Errorf("%v.Offset() = %v, want %v", tt.d, got, tt.want)
		}
		if got := tt.d.Offset().Add(tt.d.Negate().Offset()); got != Origin {
			t.Errorf("%v offset and its negation do not cancel: %v", tt.d, got)
		}
	}
}

func TestDirectionInPlane(t *testing.T) {
	for _, d := range Directions {
		seen := map[Direction]bool{}
		for _, e := range d.InPlane() {
			if e.Axis() == d.Axis() {
				t.Errorf("%v.InPlane() contains %v on the same axis", d, e)
			}
			seen[e] = true
		}
		if len(seen) != 4 {
			t.Errorf("%v.InPlane() has %d distinct directions, want 4", d, len(seen))
		}
	}
	if got := ZPos.InPlane(); got != [4]Direction{XPos, XNeg, YPos, YNeg} {
		t.Errorf("ZPos.InPlane() = %v", got)
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q): %v", d.String(), err)
		}
		if got != d {
			t.Errorf("ParseDirection(%q) = %v", d.String(), got)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestFaceOfIsShared(t *testing.T) {
	v := Point{3, -2, 7}
	for _, d := range Directions {
		a := FaceOf(v, d)
		b := FaceOf(v.Neighbor(d), d.Negate())
		if a != b {
			t.Errorf("%v: FaceOf from both sides differ: %v vs %v", d, a, b)
		}
		if a.Plane(d.Axis()) != b.Plane(d.Negate().Axis()) {
			t.Errorf("%v: plane keys differ for opposite directions", d)
		}
	}
}

func TestFacePointPlaneAndCell(t *testing.T) {
	f := FaceOf(Point{1, 2, 3}, ZPos)
	if f != (FacePoint{2, 4, 7}) {
		t.Fatalf("FaceOf = %v", f)
	}
	if got := f.Plane(AxisZ); got != 7 {
		t.Errorf("Plane(z) = %d, want 7", got)
	}
	if u, v := f.Cell(AxisZ); u != 1 || v != 2 {
		t.Errorf("Cell(z) = (%d,%d), want (1,2)", u, v)
	}

	g := FaceOf(Point{-1, 2, 3}, XNeg)
	if u, v := g.Cell(AxisX); u != 2 || v != 3 {
		t.Errorf("Cell(x) = (%d,%d), want (2,3)", u, v)
	}
	if u, v := FaceOf(Point{-1, 2, -3}, YPos).Cell(AxisY); u != -1 || v != -3 {
		t.Errorf("Cell(y) = (%d,%d), want (-1,-3)", u, v)
	}
}

func TestFacePointStep(t *testing.T) {
	f := FaceOf(Origin, ZPos)
	g := f.Step(XPos)
	if g != FaceOf(Point{1, 0, 0}, ZPos) {
		t.Errorf("Step(XPos) = %v, want face of (1,0,0)", g)
	}
	if g.Step(XNeg) != f {
		t.Error("Step is not reversible")
	}
}

func TestHalfString(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{1, "0.5"},
		{-1, "-0.5"},
		{4, "2"},
		{-3, "-1.5"},
		{7, "3.5"},
	}
	for _, tt := range tests {
		if got := HalfString(tt.in); got != tt.want {
			t.Errorf("HalfString(%d) = %q, want %q", tt.in, got, tt.want)
		}
		if got := PlaneValue(tt.in); got*2 != float64(tt.in) {
			t.Errorf("PlaneValue(%d) = %v", tt.in, got)
		}
	}
}

func TestPointCompare(t *testing.T) {
	a := Point{0, 1, 2}
	b := Point{0, 2, 0}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare ordering wrong for %v, %v", a, b)
	}
}
