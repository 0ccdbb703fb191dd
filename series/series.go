// Package series computes and evaluates truncated complex Fourier series of
// closed paths.
package series

import (
	"bytes"
	"fmt"
	"math"
	"math/cmplx"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the series tracer.
func T() tracing.Trace {
	return tracing.Select("series")
}

// Term is a single coefficient C of harmonic N, i.e. the rotating vector
//
//	C⋅e^(2πi⋅N⋅t)
type Term struct {
	N int        // harmonic index, negative rotates clockwise
	C complex128 // coefficient
}

func (tm Term) String() string {
	return fmt.Sprintf("c[%d] = %s", tm.N, fourier.Pair(tm.C))
}

// Series is a truncated Fourier series
//
//	f(t) = Σ c.n e^(2πi⋅n⋅t),   n in [lo, hi)
//
// We store the coefficients only, keyed by harmonic index n. Coefficients
// live in a TreeMap (sorted map), so iteration is by ascending n. Values are
// of type complex128.
type Series struct {
	Terms *treemap.Map
}

// New creates a series from a list of terms. A later term with the same
// harmonic replaces an earlier one.
func New(tms ...Term) Series {
	s := Series{}
	for _, tm := range tms {
		s.setTerm(tm.N, tm.C)
	}
	s.checkTerms()
	return s
}

func (s *Series) checkTerms() {
	if s.Terms == nil {
		s.Terms = treemap.NewWithIntComparator()
	}
}

// setTerm sets the coefficient for harmonic n. It writes into the shared
// tree map, so it is only used while a series is being built.
func (s *Series) setTerm(n int, c complex128) {
	s.checkTerms()
	s.Terms.Put(n, c)
}

// Len is the number of coefficients, the depth of the series.
func (s Series) Len() int {
	if s.Terms == nil {
		return 0
	}
	return s.Terms.Size()
}

// Coeff returns the coefficient of harmonic n, if present.
func (s Series) Coeff(n int) (complex128, bool) {
	if s.Terms == nil {
		return 0, false
	}
	c, found := s.Terms.Get(n)
	if !found {
		return 0, false
	}
	return c.(complex128), true
}

// Harmonics returns all harmonic indices present, ascending.
func (s Series) Harmonics() []int {
	s.checkTerms()
	keys := s.Terms.Keys()
	ns := make([]int, len(keys))
	for i, k := range keys {
		ns[i] = k.(int)
	}
	return ns
}

// List returns all terms ordered by ascending harmonic index.
func (s Series) List() []Term {
	s.checkTerms()
	tms := make([]Term, 0, s.Terms.Size())
	it := s.Terms.Iterator()
	for it.Next() {
		tms = append(tms, Term{N: it.Key().(int), C: it.Value().(complex128)})
	}
	return tms
}

// Eval reconstructs the path at time t in [0,1) from the coefficients.
func (s Series) Eval(t float64) fourier.Pair {
	s.checkTerms()
	var z complex128
	it := s.Terms.Iterator()
	for it.Next() {
		n := it.Key().(int)
		z += it.Value().(complex128) * rotor(n, t)
	}
	return fourier.Pair(z)
}

// rotor is e^(2πi⋅n⋅t).
func rotor(n int, t float64) complex128 {
	return cmplx.Exp(complex(0, 2*math.Pi*float64(n)*t))
}

// Energy is the sum of the squared magnitudes of all coefficients.
func (s Series) Energy() float64 {
	e := 0.0
	for _, tm := range s.List() {
		a := cmplx.Abs(tm.C)
		e += a * a
	}
	return e
}

// String creates a readable string representation for a Series, one term
// per harmonic, coefficients rounded to ε.
func (s Series) String() string {
	var buffer bytes.Buffer
	s.checkTerms()
	it := s.Terms.Iterator()
	for it.Next() {
		c := it.Value().(complex128)
		buffer.WriteString(fmt.Sprintf("{ %s e^%d } ",
			fourier.P(fourier.Round(real(c)), fourier.Round(imag(c))), it.Key().(int)))
	}
	return buffer.String()
}
