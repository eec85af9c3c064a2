package tessellate_test

import (
	"testing"

	"github.com/chazu/polypanel/pkg/kernel/sdfx"
	"github.com/chazu/polypanel/pkg/lattice"
	"github.com/chazu/polypanel/pkg/polycube"
	"github.com/chazu/polypanel/pkg/tessellate"
)

func TestRunsMergeAlongX(t *testing.T) {
	pc := polycube.New()
	pts := []lattice.Point{{X: 1}, {X: 2}, {X: 4}, {Y: 1}, {X: 1, Y: 1}}
	if err := pc.AddAll(pts...); err != nil {
		t.Fatal(err)
	}
	runs := tessellate.Runs(pc)
	want := []tessellate.Run{
		{Start: lattice.Point{X: 0}, Length: 3},
		{Start: lattice.Point{X: 0, Y: 1}, Length: 2},
		{Start: lattice.Point{X: 4}, Length: 1},
	}
	got := map[lattice.Point]int{}
	for _, r := range runs {
		got[r.Start] = r.Length
	}
	if len(runs) != len(want) {
		t.Fatalf("got %d runs %v, want %d", len(runs), runs, len(want))
	}
	for _, w := range want {
		if got[w.Start] != w.Length {
			t.Errorf("run at %v has length %d, want %d", w.Start, got[w.Start], w.Length)
		}
	}
}

func TestTessellateSingleVoxel(t *testing.T) {
	mesh, err := tessellate.Tessellate(polycube.New(), sdfx.New(40))
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if mesh.Name != tessellate.MeshName {
		t.Errorf("Name = %q, want %q", mesh.Name, tessellate.MeshName)
	}
}

func TestTessellateBounds(t *testing.T) {
	pc := polycube.New()
	if err := pc.AddAll(lattice.Point{X: 1}, lattice.Point{X: 1, Z: 1}, lattice.Point{X: 1, Z: 2}); err != nil {
		t.Fatal(err)
	}
	mesh, err := tessellate.Tessellate(pc, sdfx.New(60))
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	min, max := mesh.Bounds()
	// Marching cubes is approximate; the solid spans (0,0,0)-(2,1,3).
	const tol = 0.2
	want := [2][3]float32{{0, 0, 0}, {2, 1, 3}}
	for i := 0; i < 3; i++ {
		if abs(min[i]-want[0][i]) > tol {
			t.Errorf("min[%d] = %.2f, expected near %.0f", i, min[i], want[0][i])
		}
		if abs(max[i]-want[1][i]) > tol {
			t.Errorf("max[%d] = %.2f, expected near %.0f", i, max[i], want[1][i])
		}
	}
}

func TestTessellateNil(t *testing.T) {
	mesh, err := tessellate.Tessellate(nil, sdfx.New(0))
	if err != nil {
		t.Fatal(err)
	}
	if !mesh.IsEmpty() {
		t.Error("nil polycube should give an empty mesh")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
