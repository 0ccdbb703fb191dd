/*
Package polygon treats a tour as the closed outline of the traced shape.

Polygons are backed by polyclip contours. They are used to find the region
of the canvas a drawing occupies, so renderers can fit it to their device.
*/
package polygon

import (
	"bytes"
	"fmt"

	fourier "github.com/Kreavita/fourier-fun"
	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to the polygon tracer.
func L() tracing.Trace {
	return tracing.Select("polygon")
}

// Polygon is a sequence of knots. A cyclic polygon connects its last knot
// back to the first.
type Polygon struct {
	contour polyclip.Contour
	cycle   bool
}

// NullPolygon creates an empty polygon, to be extended by Knot().
//
//	pg := NullPolygon().Knot(P(0,0)).Knot(P(1,3)).Knot(P(3,0)).Cycle()
func NullPolygon() *Polygon {
	return &Polygon{}
}

// FromPath creates a closed polygon with the points of a path as knots.
func FromPath(path []fourier.Pair) *Polygon {
	pg := &Polygon{contour: make(polyclip.Contour, 0, len(path))}
	for _, p := range path {
		pg.Knot(p)
	}
	return pg.Cycle()
}

// Box creates a rectangular polygon from two opposite corners.
func Box(a, b fourier.Pair) *Polygon {
	r := fourier.R(a, b)
	return NullPolygon().Knot(r.Min).Knot(fourier.P(r.Max.X(), r.Min.Y())).
		Knot(r.Max).Knot(fourier.P(r.Min.X(), r.Max.Y())).Cycle()
}

// Knot appends a knot. Part of builder functionality.
func (pg *Polygon) Knot(p fourier.Pair) *Polygon {
	pg.contour.Add(polyclip.Point{X: p.X(), Y: p.Y()})
	return pg
}

// Cycle closes the polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// IsCycle is true for closed polygons.
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// Z returns knot i.
func (pg *Polygon) Z(i int) fourier.Pair {
	pt := pg.contour[i]
	return fourier.P(pt.X, pt.Y)
}

// Bounds returns the bounding box of all knots. An empty polygon has an
// empty bounding box at the origin.
func (pg *Polygon) Bounds() fourier.Rect {
	if pg.N() == 0 {
		return fourier.Rect{}
	}
	bb := pg.contour.BoundingBox()
	r := fourier.R(fourier.P(bb.Min.X, bb.Min.Y), fourier.P(bb.Max.X, bb.Max.Y))
	L().Debugf("bounds of %d knots = %s", pg.N(), r)
	return r
}

// Contains is true if p lies inside the closed polygon.
func (pg *Polygon) Contains(p fourier.Pair) bool {
	if !pg.cycle || pg.N() < 3 {
		return false
	}
	return pg.contour.Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

// AsString returns a MetaPost-like notation of a polygon.
func AsString(pg *Polygon) string {
	var buf bytes.Buffer
	for i := 0; i < pg.N(); i++ {
		if i > 0 {
			buf.WriteString(" -- ")
		}
		buf.WriteString(pg.Z(i).String())
	}
	if pg.cycle {
		buf.WriteString(" -- cycle")
	}
	return buf.String()
}

func (pg *Polygon) String() string {
	return fmt.Sprintf("polygon(%d knots)", pg.N())
}
