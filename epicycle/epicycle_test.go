package epicycle

import (
	"context"
	"math"
	"math/cmplx"
	"testing"
	"time"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/Kreavita/fourier-fun/series"
	"github.com/Kreavita/fourier-fun/surface"
	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func seg(i int) Segment {
	return Segment{From: fourier.P(float64(i), 0), To: fourier.P(float64(i+1), 0)}
}

func terms(depth int) []series.Term {
	lo, hi := series.HarmonicRange(depth)
	tms := make([]series.Term, 0, depth)
	for n := lo; n < hi; n++ {
		tms = append(tms, series.Term{N: n, C: complex(float64(n), 1)})
	}
	return tms
}

func harmonics(plan []Epicycle) []int {
	ns := make([]int, len(plan))
	for i, e := range plan {
		ns[i] = e.N
	}
	return ns
}

func TestTraceFIFO(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := NewTrace(3)
	var evicted []Segment
	for i := 0; i < 5; i++ {
		var ev []Segment
		tr, ev = tr.Push(seg(i))
		evicted = append(evicted, ev...)
	}
	assert.Equal(t, 3, tr.Len())
	diff(t, []Segment{seg(2), seg(3), seg(4)}, tr.Segments())
	diff(t, []Segment{seg(0), seg(1)}, evicted)
}

func TestTraceIsValue(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr, _ := NewTrace(2).Push(seg(0))
	tr2, _ := tr.Push(seg(1))
	tr3, ev := tr2.Push(seg(2))
	assert.Equal(t, 1, tr.Len())
	diff(t, []Segment{seg(0), seg(1)}, tr2.Segments())
	diff(t, []Segment{seg(1), seg(2)}, tr3.Segments())
	diff(t, []Segment{seg(0)}, ev)
	assert.Equal(t, 1, NewTrace(0).Max())
}

func TestTracePushTwice(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := NewTrace(8)
	for i := 0; i < 3; i++ {
		tr, _ = tr.Push(seg(i))
	}
	a, _ := tr.Push(seg(10))
	b, _ := tr.Push(seg(20))
	diff(t, []Segment{seg(0), seg(1), seg(2), seg(10)}, a.Segments())
	diff(t, []Segment{seg(0), seg(1), seg(2), seg(20)}, b.Segments())
	diff(t, []Segment{seg(0), seg(1), seg(2)}, tr.Segments())
}

func TestStepLeavesPredecessorsAlone(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig(10, 10)
	cfg.MaxTrace = 4
	plan := []Epicycle{{N: 1, C: 5}}
	s := NewState(cfg)
	for i := 0; i < 4; i++ {
		s, _ = Step(s, plan, cfg)
	}
	require.Equal(t, 3, s.Trace.Len())
	a, _ := Step(s, plan, cfg)
	before := a.Trace.Segments()
	b, f := Step(s, []Epicycle{{N: 0, C: 1000}}, cfg)
	diff(t, before, a.Trace.Segments())
	assert.Equal(t, fourier.P(1000, 0), b.Trace.Segments()[b.Trace.Len()-1].To)
	assert.Equal(t, fourier.P(1000, 0), f.Tip)
	assert.Equal(t, 3, s.Trace.Len())
}

func TestPlanOrderings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	even := terms(6)
	assert.Equal(t, []int{0, -1, 1, -2, 2, -3}, harmonics(Plan(even, ByHarmonic)))
	diff(t, Plan(even, ByHarmonic), Plan(even, Legacy))

	odd := terms(5) // harmonics -3 … 1
	assert.Equal(t, []int{0, -1, 1, -2, -3}, harmonics(Plan(odd, ByHarmonic)))
	legacy := Plan(odd, Legacy)
	assert.Equal(t, []int{0, -1, 1, -2, 2}, harmonics(legacy))
	// position n + depth/2 holds the coefficient of harmonic n - 1
	assert.Equal(t, complex(-1, 1), legacy[0].C)
	assert.Equal(t, complex(1, 1), legacy[4].C)
}

func TestGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig(100, 100)
	cfg.Scale = 2
	cfg.Speed = 0.25
	cfg.Origin = fourier.P(10, 10)
	plan := []Epicycle{{N: 0, C: 3}, {N: 1, C: 1}}
	f := Geometry(plan, cfg, 1) // harmonic 1 turned by a quarter
	require.Len(t, f.Circles, 2)
	assert.Equal(t, fourier.P(10, 10), f.Circles[0].Center)
	assert.InDelta(t, 6, f.Circles[0].Radius, 1e-12)
	assert.True(t, f.Circles[1].Center.Equal(fourier.P(16, 10)))
	assert.InDelta(t, 2, f.Circles[1].Radius, 1e-12)
	assert.True(t, f.Tip.Equal(fourier.P(16, 12)), "tip = %v", f.Tip)
	assert.True(t, f.Arms[1].To.Equal(f.Tip))
	assert.True(t, Tip(plan, cfg, 1).Equal(f.Tip))
	box := f.Circles[1].Box()
	assert.True(t, box.Min.Equal(fourier.P(14, 8)))
	assert.True(t, box.Max.Equal(fourier.P(18, 12)))
}

func TestStepTrail(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig(10, 10)
	cfg.MaxTrace = 5
	plan := []Epicycle{{N: 1, C: 1}}
	s := NewState(cfg)
	s, f := Step(s, plan, cfg)
	assert.Nil(t, f.Trail, "no trail on the first frame")
	assert.Equal(t, int64(1), s.T)
	var tips []fourier.Pair
	tips = append(tips, f.Tip)
	for i := 0; i < 12; i++ {
		prev := s
		s, f = Step(s, plan, cfg)
		tips = append(tips, f.Tip)
		require.NotNil(t, f.Trail)
		assert.Equal(t, prev.Last, f.Trail.From)
		assert.Equal(t, f.Tip, f.Trail.To)
	}
	assert.Equal(t, int64(13), s.T)
	require.Equal(t, cfg.MaxTrace, s.Trace.Len())
	segs := s.Trace.Segments()
	for i, sg := range segs { // the five newest, oldest first
		assert.Equal(t, tips[len(tips)-6+i], sg.From)
		assert.Equal(t, tips[len(tips)-5+i], sg.To)
	}
}

func TestSinglePointSeries(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := fourier.P(5, 5)
	s, err := series.Solve([]fourier.Pair{p}, 4)
	require.NoError(t, err)
	cfg := DefaultConfig(10, 10)
	plan := Plan(s.List(), cfg.Ordering)
	state := NewState(cfg)
	var f Frame
	for i := 0; i < 3; i++ {
		state, f = Step(state, plan, cfg)
	}
	want := 0i
	for _, e := range plan {
		want += e.C * cmplx.Exp(complex(0, float64(e.N)*2*math.Pi*3*cfg.Speed))
	}
	assert.True(t, f.Tip.Equal(fourier.Pair(want)))
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.NoError(t, DefaultConfig(1, 1).Validate())
	cfg := DefaultConfig(0, 10)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg = DefaultConfig(10, 10)
	cfg.MaxTrace = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg = DefaultConfig(10, 10)
	cfg.Speed = math.NaN()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	assert.Equal(t, 1000, DefaultConfig(1, 1).Period())
}

// recorder is a surface which closes itself after a number of pumps.
type recorder struct {
	*surface.Scene
	pumps, closeAfter int
}

func (r *recorder) Pump() error {
	r.pumps++
	if r.closeAfter > 0 && r.pumps >= r.closeAfter {
		return surface.ErrClosed
	}
	return nil
}

func TestAnimatorRun(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig(100, 100)
	cfg.MaxTrace = 10
	cfg.FrameInterval = 0
	plan := Plan(terms(4), cfg.Ordering)
	rec := &recorder{Scene: surface.NewScene(), closeAfter: 25}
	a, err := NewAnimator(rec, plan, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2*len(plan), rec.Len())
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 25, rec.pumps)
	assert.Equal(t, int64(25), a.State().T)
	assert.Equal(t, 2*len(plan)+cfg.MaxTrace, rec.Len())
	trails := 0
	rec.Each(func(_ surface.Handle, s surface.Shape) {
		if s.Kind == surface.KindTrail {
			trails++
		}
	})
	assert.Equal(t, cfg.MaxTrace, trails)
	// trail drawables mirror the trace
	oldest := a.State().Trace.Segments()[0]
	found := false
	rec.Each(func(_ surface.Handle, s surface.Shape) {
		if s.Kind == surface.KindTrail && s.From == oldest.From && s.To == oldest.To {
			found = true
		}
	})
	assert.True(t, found)
}

func TestAnimatorCancel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig(100, 100)
	cfg.FrameInterval = time.Millisecond
	rec := &recorder{Scene: surface.NewScene()}
	a, err := NewAnimator(rec, Plan(terms(2), cfg.Ordering), cfg)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Run(ctx), context.DeadlineExceeded)
	assert.Greater(t, rec.pumps, 0)
}

func TestAnimatorRejectsConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewAnimator(&recorder{Scene: surface.NewScene()}, nil, Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
