package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/polypanel/pkg/kernel/sdfx"
	"github.com/chazu/polypanel/pkg/render"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
	if c.Render.Scale != render.DefaultScale || c.Render.Stroke != render.DefaultStroke {
		t.Errorf("render defaults = %+v, want the render package defaults", c.Render)
	}
	if c.Mesh.Cells != sdfx.DefaultMeshCells {
		t.Errorf("mesh cells = %d, want %d", c.Mesh.Cells, sdfx.DefaultMeshCells)
	}
	if c.Mesh.Path != "" {
		t.Error("mesh output should be off by default")
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	c, err := Decode(`
[render]
output_dir = "out"
scale = 20

[log]
level = "debug"
`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Render.OutputDir != "out" || c.Render.Scale != 20 {
		t.Errorf("render = %+v", c.Render)
	}
	if c.Render.Stroke != Default().Render.Stroke {
		t.Errorf("stroke default lost: %q", c.Render.Stroke)
	}
	if lvl, _ := c.Log.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("level = %v, want debug", lvl)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad syntax", `[render`},
		{"zero scale", "[render]\nscale = 0"},
		{"negative cells", "[mesh]\ncells = -1"},
		{"unknown level", "[log]\nlevel = \"loud\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode("[render]\ncolour = \"red\"\n")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "render.colour") {
		t.Errorf("error %q does not name the key", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polypanel.toml")
	data := "[mesh]\npath = \"cube.json\"\ncells = 50\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Mesh.Path != "cube.json" || c.Mesh.Cells != 50 {
		t.Errorf("mesh = %+v", c.Mesh)
	}

	if err := os.WriteFile(path, []byte("[render]\ncolour = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Render.OutputDir != "panels" {
		t.Errorf("OutputDir = %q", c.Render.OutputDir)
	}
}
