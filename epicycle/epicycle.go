/*
Package epicycle turns a Fourier series into the animated chain of rotating
vectors which draws it.

Geometry and Step are pure: they compute the circles, arms and trail of a
frame from the series, the configuration and the current state. The Animator
is a thin adapter which feeds these frames to a drawing surface.
*/
package epicycle

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"time"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/Kreavita/fourier-fun/series"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle'
func tracer() tracing.Trace {
	return tracing.Select("epicycle")
}

// ErrInvalidConfig is returned for configurations which cannot be animated.
var ErrInvalidConfig = errors.New("invalid animation configuration")

// Ordering selects the order in which coefficients are chained.
type Ordering int

const (
	// ByHarmonic chains the coefficients by ascending |n|, the negative
	// harmonic first, each rotating with its own harmonic index.
	ByHarmonic Ordering = iota
	// Legacy recomputes n from the position i = 1…depth in the chain
	// (n = i/2 for odd i, n = -i/2 for even i) and takes the coefficient at
	// position n + depth/2 of the ascending list. For odd depths the
	// coefficient picked does not belong to harmonic n.
	Legacy
)

func (o Ordering) String() string {
	switch o {
	case ByHarmonic:
		return "by-harmonic"
	case Legacy:
		return "legacy"
	}
	return fmt.Sprintf("ordering(%d)", int(o))
}

// Config holds the parameters of an animation.
type Config struct {
	Width, Height int           // canvas size
	Scale         float64       // scale factor for all vectors
	Speed         float64       // revolutions of harmonic 1 per frame
	Origin        fourier.Pair  // where the chain starts
	MaxTrace      int           // trail segments retained
	Ordering      Ordering      // chaining order of the coefficients
	FrameInterval time.Duration // pause between frames, 0 for none
}

// DefaultConfig returns the configuration for a canvas of the given size:
// unit scale, one revolution per 1000 frames, a trail of 2000 segments.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:         width,
		Height:        height,
		Scale:         1,
		Speed:         0.001,
		MaxTrace:      2000,
		Ordering:      ByHarmonic,
		FrameInterval: 16 * time.Millisecond,
	}
}

// Validate checks a configuration.
func (cfg Config) Validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	case cfg.MaxTrace < 1:
		return fmt.Errorf("%w: trace length %d", ErrInvalidConfig, cfg.MaxTrace)
	case math.IsNaN(cfg.Scale) || math.IsInf(cfg.Scale, 0):
		return fmt.Errorf("%w: scale %g", ErrInvalidConfig, cfg.Scale)
	case math.IsNaN(cfg.Speed) || math.IsInf(cfg.Speed, 0):
		return fmt.Errorf("%w: speed %g", ErrInvalidConfig, cfg.Speed)
	case cfg.Ordering != ByHarmonic && cfg.Ordering != Legacy:
		return fmt.Errorf("%w: %s", ErrInvalidConfig, cfg.Ordering)
	}
	return nil
}

// Period is the number of frames of one full revolution of harmonic 1.
func (cfg Config) Period() int {
	if cfg.Speed == 0 {
		return 0
	}
	return int(math.Round(1 / math.Abs(cfg.Speed)))
}

// Epicycle is one link of the chain: coefficient C rotating with harmonic N.
type Epicycle struct {
	N int
	C complex128
}

// Plan puts the terms of a series into chaining order. terms must be
// ordered by ascending harmonic index, as returned by series.Series.List.
func Plan(terms []series.Term, ordering Ordering) []Epicycle {
	depth := len(terms)
	plan := make([]Epicycle, 0, depth)
	switch ordering {
	case Legacy:
		for i := 1; i <= depth; i++ {
			n := -i / 2
			if i%2 == 1 {
				n = i / 2
			}
			plan = append(plan, Epicycle{N: n, C: terms[n+depth/2].C})
		}
	default:
		for _, tm := range terms {
			plan = append(plan, Epicycle{N: tm.N, C: tm.C})
		}
		slices.SortStableFunc(plan, func(a, b Epicycle) int {
			if d := abs(a.N) - abs(b.N); d != 0 {
				return d
			}
			return a.N - b.N
		})
	}
	tracer().Debugf("planned %d epicycles, %s", len(plan), ordering)
	return plan
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Circle is the circle an epicycle's vector sweeps.
type Circle struct {
	Center fourier.Pair
	Radius float64
}

// Box returns the bounding box of the circle.
func (c Circle) Box() fourier.Rect {
	r := fourier.P(c.Radius, c.Radius)
	return fourier.Rect{Min: c.Center - r, Max: c.Center + r}
}

// Frame is the geometry of one animation step.
type Frame struct {
	T       float64      // time step
	Circles []Circle     // one per epicycle, in chain order
	Arms    []Segment    // one per epicycle, from the circle's center to the next center
	Tip     fourier.Pair // end of the chain, the traced point
	Trail   *Segment     // new trail segment, nil on the first frame
	Evicted []Segment    // trail segments dropped from the trace, oldest first
}

// Geometry computes circles and arms of the chain at time step t.
// The vector of epicycle (n, c) is
//
//	Scale ⋅ c ⋅ e^(n⋅2πi⋅t⋅Speed)
//
// added to the running center, which starts at cfg.Origin.
func Geometry(plan []Epicycle, cfg Config, t float64) Frame {
	f := Frame{
		T:       t,
		Circles: make([]Circle, len(plan)),
		Arms:    make([]Segment, len(plan)),
	}
	center := cfg.Origin
	for i, e := range plan {
		v := fourier.Pair(complex(cfg.Scale, 0) * e.C * cmplx.Exp(complex(0, float64(e.N)*2*math.Pi*t*cfg.Speed)))
		next := center + v
		f.Circles[i] = Circle{Center: center, Radius: v.Abs()}
		f.Arms[i] = Segment{From: center, To: next}
		center = next
	}
	f.Tip = center
	return f
}

// Tip computes only the end of the chain at time step t.
func Tip(plan []Epicycle, cfg Config, t float64) fourier.Pair {
	tip := cfg.Origin.C()
	for _, e := range plan {
		tip += complex(cfg.Scale, 0) * e.C * cmplx.Exp(complex(0, float64(e.N)*2*math.Pi*t*cfg.Speed))
	}
	return fourier.Pair(tip)
}

// State is the state of an animation between two frames.
type State struct {
	T       int64        // last time step computed
	Last    fourier.Pair // tip of the last frame
	HasLast bool         // false before the first frame
	Trace   Trace        // recent trail segments
}

// NewState creates the state of an animation which has not yet started.
func NewState(cfg Config) State {
	return State{Trace: NewTrace(cfg.MaxTrace)}
}

// Step advances an animation by one time step. It returns the successor
// state and the frame's geometry. Starting with the second frame, the frame
// carries a trail segment from the previous tip to the current one.
func Step(s State, plan []Epicycle, cfg Config) (State, Frame) {
	next := State{T: s.T + 1, Trace: s.Trace}
	f := Geometry(plan, cfg, float64(next.T))
	if s.HasLast {
		seg := Segment{From: s.Last, To: f.Tip}
		f.Trail = &seg
		next.Trace, f.Evicted = s.Trace.Push(seg)
	}
	next.Last, next.HasLast = f.Tip, true
	return next, f
}
