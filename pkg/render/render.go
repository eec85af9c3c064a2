// Package render walks a polycube's panels, projects each onto its plane,
// traces its outline and hands the segments to a Sink.
package render

import (
	"fmt"
	"strings"

	"github.com/chazu/polypanel/pkg/lattice"
	"github.com/chazu/polypanel/pkg/outline"
	"github.com/chazu/polypanel/pkg/panel"
	"github.com/chazu/polypanel/pkg/polycube"
)

// Sink receives the traced outline of one panel.
type Sink interface {
	Emit(name string, segs []outline.Segment) error
}

// PanelSink is a Sink that also wants the panel an outline was traced from.
// Render calls EmitPanel instead of Emit on sinks that implement it.
type PanelSink interface {
	Sink
	EmitPanel(name string, p *panel.Panel, segs []outline.Segment) error
}

// PanelName returns the deterministic name of the n-th panel in a plane,
// e.g. "zpos-0_5-0". The plane is given as a doubled coordinate and printed
// as its real value with the decimal point replaced.
func PanelName(d lattice.Direction, coord, n int) string {
	plane := strings.ReplaceAll(lattice.HalfString(coord), ".", "_")
	return fmt.Sprintf("%s-%s-%d", d, plane, n)
}

// Cells projects a panel's faces onto its plane.
func Cells(p *panel.Panel) []outline.Cell {
	axis := p.Direction().Axis()
	members := p.Members()
	cells := make([]outline.Cell, len(members))
	for i, f := range members {
		u, v := f.Cell(axis)
		cells[i] = outline.Cell{X: u, Y: v}
	}
	return cells
}

// Walk calls fn for every panel of pc with its name, ordered by direction,
// plane and panel. It stops at the first error fn returns.
func Walk(pc *polycube.Polycube, fn func(name string, p *panel.Panel) error) error {
	for _, d := range lattice.Directions {
		for _, pl := range pc.Planes(d) {
			for n, p := range pl.Panels() {
				if err := fn(PanelName(d, pl.Coord(), n), p); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Render emits every panel of pc in Walk order and returns the number of
// panels emitted. It stops at the first sink error. The polycube is only
// read.
func Render(pc *polycube.Polycube, sink Sink) (int, error) {
	emitted := 0
	err := Walk(pc, func(name string, p *panel.Panel) error {
		segs := outline.Trace(Cells(p))
		var err error
		if ps, ok := sink.(PanelSink); ok {
			err = ps.EmitPanel(name, p, segs)
		} else {
			err = sink.Emit(name, segs)
		}
		if err != nil {
			return fmt.Errorf("render: panel %s: %w", name, err)
		}
		emitted++
		return nil
	})
	return emitted, err
}

// Panel is a traced panel held by a MemorySink.
type Panel struct {
	Name     string
	Segments []outline.Segment
}

// MemorySink keeps emitted panels in memory, in emission order.
type MemorySink struct {
	Panels []Panel
}

// Emit records the panel.
func (m *MemorySink) Emit(name string, segs []outline.Segment) error {
	m.Panels = append(m.Panels, Panel{Name: name, Segments: segs})
	return nil
}
