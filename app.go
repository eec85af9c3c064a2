package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chazu/polypanel/pkg/config"
	"github.com/chazu/polypanel/pkg/engine"
	"github.com/chazu/polypanel/pkg/kernel"
	"github.com/chazu/polypanel/pkg/kernel/sdfx"
	"github.com/chazu/polypanel/pkg/lattice"
	"github.com/chazu/polypanel/pkg/outline"
	"github.com/chazu/polypanel/pkg/panel"
	"github.com/chazu/polypanel/pkg/polycube"
	"github.com/chazu/polypanel/pkg/render"
	"github.com/chazu/polypanel/pkg/tessellate"
)

// App runs the script -> polycube -> panels -> SVG pipeline.
type App struct {
	cfg    *config.Config
	engine *engine.Engine
	kernel kernel.Kernel
	log    *slog.Logger
}

// PanelSummary describes one emitted panel.
type PanelSummary struct {
	Name      string  `json:"name"`
	Direction string  `json:"direction"`
	Plane     float64 `json:"plane"`
	Faces     int     `json:"faces"`
	Segments  int     `json:"segments"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Report is the result of one Evaluate call.
type Report struct {
	Voxels     int             `json:"voxels"`
	Faces      int             `json:"faces"`
	PanelCount int             `json:"panelCount"`
	Panels     []PanelSummary  `json:"panels"`
	Files      []string        `json:"files"`
	Mesh       string          `json:"mesh,omitempty"`
	Errors     []EvalErrorData `json:"errors"`
}

// NewApp creates an App with a fresh engine and the sdfx kernel. A nil
// logger discards log output.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &App{
		cfg:    cfg,
		engine: engine.NewEngine(),
		kernel: sdfx.New(cfg.Mesh.Cells),
		log:    logger,
	}
}

// summarySink records every panel it passes on to next.
type summarySink struct {
	next      render.Sink
	summaries []PanelSummary
}

func (s *summarySink) Emit(name string, segs []outline.Segment) error {
	if err := s.next.Emit(name, segs); err != nil {
		return err
	}
	s.summaries = append(s.summaries, PanelSummary{Name: name, Segments: len(segs)})
	return nil
}

func (s *summarySink) EmitPanel(name string, p *panel.Panel, segs []outline.Segment) error {
	if err := s.next.Emit(name, segs); err != nil {
		return err
	}
	s.summaries = append(s.summaries, PanelSummary{
		Name:      name,
		Direction: p.Direction().String(),
		Plane:     lattice.PlaneValue(p.Coord()),
		Faces:     p.Len(),
		Segments:  len(segs),
	})
	return nil
}

// Evaluate runs source, writes one SVG per panel into the configured output
// directory and, when a mesh path is configured, the preview mesh as JSON.
// Script and output failures are reported in Report.Errors.
func (a *App) Evaluate(source string) Report {
	result := Report{
		Panels: []PanelSummary{},
		Files:  []string{},
		Errors: []EvalErrorData{},
	}
	fail := func(msg string, err error) Report {
		a.log.Error(msg, "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: msg + ": " + err.Error()})
		return result
	}

	pc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return fail("evaluation failed", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			a.log.Warn("script error", "line", e.Line, "message", e.Message)
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	result.Voxels = pc.Len()
	result.Faces = pc.FaceCount()
	result.PanelCount = pc.PanelCount()
	a.log.Debug("polycube built", "voxels", result.Voxels, "faces", result.Faces, "panels", result.PanelCount)

	svgSink := render.NewSVGSink(a.cfg.Render.OutputDir, a.cfg.Render.Scale)
	if a.cfg.Render.Stroke != "" {
		svgSink.Stroke = a.cfg.Render.Stroke
	}
	sink := &summarySink{next: svgSink}
	_, renderErr := render.Render(pc, sink)
	result.Files = append(result.Files, svgSink.Files...)
	result.Panels = append(result.Panels, sink.summaries...)
	if renderErr != nil {
		return fail("render failed", renderErr)
	}
	a.log.Info("panels written", "dir", a.cfg.Render.OutputDir, "count", len(svgSink.Files))

	if a.cfg.Mesh.Path != "" {
		if err := a.writeMesh(pc, a.cfg.Mesh.Path); err != nil {
			return fail("mesh failed", err)
		}
		result.Mesh = a.cfg.Mesh.Path
		a.log.Info("mesh written", "path", a.cfg.Mesh.Path)
	}
	return result
}

func (a *App) writeMesh(pc *polycube.Polycube, path string) error {
	mesh, err := tessellate.Tessellate(pc, a.kernel)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(mesh, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding mesh: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
