package series

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	fourier "github.com/Kreavita/fourier-fun"
)

var (
	// ErrInvalidDepth indicates a depth which leaves no harmonics to compute.
	ErrInvalidDepth = errors.New("epicycle depth must be at least 1")
	// ErrEmptyPath indicates a path without samples.
	ErrEmptyPath = errors.New("cannot integrate an empty path")
)

// ValidateDepth checks that depth yields a non-empty band of harmonics.
func ValidateDepth(depth int) error {
	if depth <= 0 {
		return fmt.Errorf("%w, is %d", ErrInvalidDepth, depth)
	}
	return nil
}

// HarmonicRange returns the half-open band [lo, hi) of harmonic indices for
// a series of the given depth. The lower bound is rounded towards negative
// infinity, so the band always holds exactly depth indices:
//
//	depth 6  →  -3 … 2
//	depth 5  →  -3 … 1
//	depth 1  →  -1
func HarmonicRange(depth int) (lo, hi int) {
	hi = depth / 2
	lo = -hi
	if depth%2 != 0 {
		lo--
	}
	return lo, hi
}

// Coefficient computes the coefficient of harmonic n for a path, treating the
// path as k samples of a periodic function over t in [0,1), sample i at
// t = i/k. The Fourier integral is approximated by the Riemann sum
//
//	c.n = Σ dt ⋅ f(t.i) ⋅ e^(-2πi⋅n⋅t.i),   dt = 1/k
func Coefficient(path []fourier.Pair, n int) complex128 {
	k := len(path)
	dt := 1 / float64(k)
	var c complex128
	for i, z := range path {
		t := float64(i) * dt
		c += complex(dt, 0) * z.C() * cmplx.Exp(complex(0, -2*math.Pi*float64(n)*t))
	}
	return c
}

// Solve computes depth coefficients for a path, for the harmonics in
// HarmonicRange(depth). This is a direct O(k⋅depth) integration, not an FFT;
// callers should bound depth for interactive use.
func Solve(path []fourier.Pair, depth int) (Series, error) {
	if err := ValidateDepth(depth); err != nil {
		return Series{}, err
	}
	if len(path) == 0 {
		return Series{}, ErrEmptyPath
	}
	lo, hi := HarmonicRange(depth)
	T().P("op", "solve").Infof("integrating %d samples for harmonics %d … %d", len(path), lo, hi-1)
	s := New()
	for n := lo; n < hi; n++ {
		s.setTerm(n, Coefficient(path, n))
	}
	T().Debugf("series = %s", s)
	return s, nil
}
