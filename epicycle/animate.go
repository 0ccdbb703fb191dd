package epicycle

import (
	"context"
	"errors"
	"time"

	"github.com/Kreavita/fourier-fun/surface"
)

// Animator renders the frames of an epicycle chain onto a surface. It owns
// the animation state; there is exactly one per running animation.
type Animator struct {
	surf    surface.Surface
	plan    []Epicycle
	cfg     Config
	state   State
	circles []surface.Handle
	arms    []surface.Handle
	trail   []surface.Handle // parallel to state.Trace, oldest first
}

// NewAnimator creates one circle and one arm drawable per epicycle on surf,
// placed at time step 0.
func NewAnimator(surf surface.Surface, plan []Epicycle, cfg Config) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Animator{
		surf:    surf,
		plan:    plan,
		cfg:     cfg,
		state:   NewState(cfg),
		circles: make([]surface.Handle, len(plan)),
		arms:    make([]surface.Handle, len(plan)),
	}
	f := Geometry(plan, cfg, 0)
	for i := range plan {
		a.circles[i] = surf.Ellipse(f.Circles[i].Box())
		a.arms[i] = surf.Line(f.Arms[i].From, f.Arms[i].To)
	}
	tracer().Infof("animating %d epicycles, trail of %d", len(plan), cfg.MaxTrace)
	return a, nil
}

// State returns the current animation state.
func (a *Animator) State() State {
	return a.state
}

// Tick advances the animation by one frame: it moves every circle and arm,
// adds the new trail segment, deletes evicted ones and then pumps the
// surface. Errors are those of the surface's Pump.
func (a *Animator) Tick() error {
	next, f := Step(a.state, a.plan, a.cfg)
	for i := range f.Circles {
		a.surf.MoveEllipse(a.circles[i], f.Circles[i].Box())
		a.surf.MoveLine(a.arms[i], f.Arms[i].From, f.Arms[i].To)
	}
	if f.Trail != nil {
		a.trail = append(a.trail, a.surf.Trail(f.Trail.From, f.Trail.To))
	}
	for range f.Evicted {
		a.surf.Delete(a.trail[0])
		a.trail = a.trail[1:]
	}
	a.state = next
	return a.surf.Pump()
}

// Run ticks until the surface is closed or ctx is cancelled. There is no
// other way for an animation to end. Closing the surface is not an error;
// cancellation returns the context's error.
func (a *Animator) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if a.cfg.FrameInterval > 0 {
		ticker := time.NewTicker(a.cfg.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		if err := a.Tick(); err != nil {
			if errors.Is(err, surface.ErrClosed) {
				tracer().Infof("surface closed after %d frames", a.state.T)
				return nil
			}
			return err
		}
		if tick == nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
}
