package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/polypanel/pkg/outline"
)

const (
	// DefaultScale is the number of SVG units per voxel edge.
	DefaultScale = 100

	// DefaultStroke is the line style used for outlines.
	DefaultStroke = "stroke:rgb(0,0,0);fill:none"
)

// WriteSVG writes segs as an SVG document with one line element per
// segment. Coordinates are multiplied by scale; the view box covers the
// scaled outline plus a margin of a tenth of a voxel.
func WriteSVG(w io.Writer, segs []outline.Segment, scale int, stroke string) error {
	if scale <= 0 {
		return fmt.Errorf("svg: scale must be positive, got %d", scale)
	}
	lo, hi := outline.Bounds(segs)
	margin := max(scale/10, 1)
	minX, minY := lo.X*scale-margin, lo.Y*scale-margin
	width := (hi.X-lo.X)*scale + 2*margin
	height := (hi.Y-lo.Y)*scale + 2*margin

	canvas := svg.New(w)
	canvas.Startview(width, height, minX, minY, width, height)
	for _, s := range segs {
		canvas.Line(s.Start.X*scale, s.Start.Y*scale, s.End.X*scale, s.End.Y*scale, stroke)
	}
	canvas.End()
	return nil
}

// SVGSink writes each panel to <Dir>/<name>.svg.
type SVGSink struct {
	Dir    string
	Scale  int
	Stroke string

	// Files lists the paths written so far.
	Files []string
}

// NewSVGSink returns a sink writing into dir with the default style.
func NewSVGSink(dir string, scale int) *SVGSink {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &SVGSink{Dir: dir, Scale: scale, Stroke: DefaultStroke}
}

// Emit writes one SVG file.
func (s *SVGSink) Emit(name string, segs []outline.Segment) (err error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("svg: %w", err)
	}
	path := filepath.Join(s.Dir, name+".svg")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("svg: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	stroke := s.Stroke
	if stroke == "" {
		stroke = DefaultStroke
	}
	if err := WriteSVG(f, segs, s.Scale, stroke); err != nil {
		return err
	}
	s.Files = append(s.Files, path)
	return nil
}
