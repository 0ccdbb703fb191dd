/*
Package svg implements a headless drawing surface which writes the scene
as an SVG document.
*/
package svg

import (
	"fmt"
	"io"
	"strings"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/Kreavita/fourier-fun/surface"
	"github.com/jbeda/geom"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'surface'
func tracer() tracing.Trace {
	return tracing.Select("surface")
}

// Styles of the drawables.
const (
	StyleChain = "fill:none;stroke:#ffffff;stroke-width:0.5"
	StyleTrail = "fill:none;stroke:#00ffff;stroke-width:1.5;stroke-linecap:round"
	Background = "#000000"
)

// Writer is a SVG serialization helper.
type Writer struct {
	w   io.Writer
	err error // first write error
}

// NewWriter creates a helper writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (svg *Writer) printf(format string, a ...interface{}) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.w, format, a...)
}

// Err returns the first error of the underlying writer.
func (svg *Writer) Err() error {
	return svg.err
}

// extraparams turns "key=value" strings into attributes and everything else
// into a style attribute. Not quoting aware.
func extraparams(s []string) string {
	var ep strings.Builder
	for _, p := range s {
		if strings.Index(p, "=") > 0 {
			ep.WriteString(p + " ")
		} else if len(p) > 0 {
			fmt.Fprintf(&ep, "style='%s' ", p)
		}
	}
	return ep.String()
}

// Start writes the document header.
func (svg *Writer) Start(viewBox geom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg" %s>
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), extraparams(s))
}

// End closes the document.
func (svg *Writer) End() {
	svg.printf("</svg>\n")
}

// Rect writes a rectangle.
func (svg *Writer) Rect(r geom.Rect, s ...string) {
	svg.printf("<rect x='%f' y='%f' width='%f' height='%f' %s/>\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), extraparams(s))
}

// Line writes a line.
func (svg *Writer) Line(p1 geom.Coord, p2 geom.Coord, s ...string) {
	svg.printf("<line x1='%f' y1='%f' x2='%f' y2='%f' %s/>\n", p1.X, p1.Y, p2.X, p2.Y, extraparams(s))
}

// Ellipse writes an ellipse inscribed in box.
func (svg *Writer) Ellipse(box geom.Rect, s ...string) {
	svg.printf("<ellipse cx='%f' cy='%f' rx='%f' ry='%f' %s/>\n",
		(box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2, box.Width()/2, box.Height()/2,
		extraparams(s))
}

// StartPath begins a path at p1.
func (svg *Writer) StartPath(p1 geom.Coord, s ...string) {
	svg.printf("<path %sd='M%f,%f", extraparams(s), p1.X, p1.Y)
}

// PathLineTo continues a path with a straight line.
func (svg *Writer) PathLineTo(p geom.Coord) {
	svg.printf("\n  L%f,%f", p.X, p.Y)
}

// EndPath finishes a path.
func (svg *Writer) EndPath() {
	svg.printf("'/>\n")
}

// ---------------------------------------------------------------------------

// Canvas is a surface which records the scene and writes it as a SVG
// document on Close. It reports itself closed after a fixed number of
// frames, ending the animation driving it.
type Canvas struct {
	*surface.Scene
	out    io.Writer
	world  fourier.Rect
	frames int
	limit  int
}

// New creates a canvas for world, which closes after limit frames.
// A limit of 0 never closes.
func New(out io.Writer, world fourier.Rect, limit int) *Canvas {
	return &Canvas{
		Scene: surface.NewScene(),
		out:   out,
		world: world,
		limit: limit,
	}
}

// Frames is the number of frames pumped so far.
func (c *Canvas) Frames() int {
	return c.frames
}

// Pump counts a frame. Once the frame limit is reached, it returns
// surface.ErrClosed.
func (c *Canvas) Pump() error {
	c.frames++
	if c.limit > 0 && c.frames >= c.limit {
		return surface.ErrClosed
	}
	return nil
}

func coord(p fourier.Pair) geom.Coord {
	return geom.Coord{X: p.X(), Y: p.Y()}
}

func rect(r fourier.Rect) geom.Rect {
	return geom.Rect{Min: coord(r.Min), Max: coord(r.Max)}
}

// Close writes the current scene: the trail as one path per connected run
// of segments, then circles and arms on top. The view box is the world
// rectangle, grown to contain the whole trail.
func (c *Canvas) Close() error {
	viewBox := rect(c.world)
	var trail, chain []surface.Shape
	c.Each(func(_ surface.Handle, s surface.Shape) {
		if s.Kind == surface.KindTrail {
			trail = append(trail, s)
			viewBox.ExpandToContainCoord(coord(s.From))
			viewBox.ExpandToContainCoord(coord(s.To))
			return
		}
		chain = append(chain, s)
	})
	svg := NewWriter(c.out)
	svg.Start(viewBox)
	svg.Rect(viewBox, fmt.Sprintf("fill='%s'", Background))
	for i, s := range trail {
		if i == 0 || s.From != trail[i-1].To {
			if i > 0 {
				svg.EndPath()
			}
			svg.StartPath(coord(s.From), StyleTrail)
		}
		svg.PathLineTo(coord(s.To))
	}
	if len(trail) > 0 {
		svg.EndPath()
	}
	for _, s := range chain {
		switch s.Kind {
		case surface.KindEllipse:
			svg.Ellipse(rect(s.Box()), StyleChain)
		default:
			svg.Line(coord(s.From), coord(s.To), StyleChain)
		}
	}
	svg.End()
	if err := svg.Err(); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	tracer().Infof("wrote svg after %d frames: %d trail segments, %d drawables",
		c.frames, len(trail), len(chain))
	return nil
}
