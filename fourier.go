/*
Package fourier draws the edge contour of an image with epicycles: a chain of
rotating vectors whose lengths and speeds are the coefficients of a truncated
Fourier series of the contour.

This root package implements the numeric basics shared by all the stages:
points as complex numbers, rectangles and affine transforms. The stages live
in sub-packages:

	mask      edge mask → point set
	tour      point set → ordered path (greedy nearest neighbour)
	series    ordered path → Fourier coefficients (direct integration)
	epicycle  coefficients → per-frame geometry and running trace

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package fourier

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fourier'
func tracer() tracing.Trace {
	return tracing.Select("fourier")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// === Pair Data Type ========================================================

// Pair is a point or a vector in the plane, stored as a complex number:
// the real part is x (image column), the imaginary part is y (image row).
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// C2P returns a Pair from a complex number.
func C2P(c complex128) Pair {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		tracer().Errorf("created pair for complex.NaN")
		return P(0, 0)
	}
	return Pair(c)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs, tolerating differences below Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Abs is the length of p seen as a vector.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// Dist is the euclidean distance between p and p2, i.e. the magnitude of
// their complex difference.
func (p Pair) Dist(p2 Pair) float64 {
	return cmplx.Abs(p.C() - p2.C())
}

// Dist2 is the squared euclidean distance between p and p2. It orders
// candidates exactly like Dist, but is exact for integer coordinates.
func (p Pair) Dist2(p2 Pair) float64 {
	dx, dy := p.X()-p2.X(), p.Y()-p2.Y()
	return dx*dx + dy*dy
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return Translation(v).Transform(p)
}

// === Rectangles ============================================================

// Rect is an axis aligned rectangle, spanned by its minimum and maximum corner.
type Rect struct {
	Min, Max Pair
}

// R is a quick notation for a rectangle spanned by two arbitrary corners.
func R(a, b Pair) Rect {
	return Rect{
		Min: P(math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y())),
		Max: P(math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y())),
	}
}

// Width of r.
func (r Rect) Width() float64 {
	return r.Max.X() - r.Min.X()
}

// Height of r.
func (r Rect) Height() float64 {
	return r.Max.Y() - r.Min.Y()
}

// Center of r.
func (r Rect) Center() Pair {
	return (r.Min + r.Max) / 2
}

// Empty is true if r has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Inflate grows r by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{Min: r.Min - P(d, d), Max: r.Max + P(d, d)}
}

// ExpandToContain returns the smallest rectangle containing r and p.
func (r Rect) ExpandToContain(p Pair) Rect {
	return R(P(math.Min(r.Min.X(), p.X()), math.Min(r.Min.Y(), p.Y())),
		P(math.Max(r.Max.X(), p.X()), math.Max(r.Max.Y(), p.Y())))
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return r.ExpandToContain(o.Min).ExpandToContain(o.Max)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%s..%s]", r.Min, r.Max)
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 3)
	c[0] = m[col]
	c[1] = m[3+col]
	c[2] = m[6+col]
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Scaling transform. Scales x by sx and y by sy, relative to the origin.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Fit returns a transform which maps world into device, scaled uniformly
// and centered. A world rectangle without area is mapped with scale 1.
func Fit(world, device Rect) AT {
	s := 1.0
	if !world.Empty() {
		s = math.Min(device.Width()/world.Width(), device.Height()/world.Height())
	}
	T := Translation(-world.Center()).Combine(Scaling(s, s)).Combine(Translation(device.Center()))
	tracer().Debugf("fit %s into %s: scale %g", world, device, s)
	return T
}

// ScaleFactor returns the x-scale of an affine transform without rotation.
func (m AT) ScaleFactor() float64 {
	return m.get(0, 0)
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	p1 := vec1[0] * vec2[0]
	p2 := vec1[1] * vec2[1]
	p3 := vec1[2] * vec2[2]
	return p1 + p2 + p3
}

// Combine 2 affine transformation to a new one: the result applies m first,
// then n. Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 3)
	c[0] = dotProd(m.row(0), v)
	c[1] = dotProd(m.row(1), v)
	c[2] = dotProd(m.row(2), v)
	return c
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	c := []float64{p.X(), p.Y(), 1.0}
	c = m.multiplyVector(c)
	return P(c[0], c[1])
}
