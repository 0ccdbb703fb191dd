/*
Package scope renders an epicycle chain as sound for an oscilloscope in XY
mode: the tip of the chain drives the left channel with its x coordinate
and the right channel with its y coordinate.

Played back fast enough, the drawing stands still on the screen of the
oscilloscope.
*/
package scope

import (
	"fmt"
	"io"
	"math"
	"time"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/Kreavita/fourier-fun/epicycle"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'scope'
func tracer() tracing.Trace {
	return tracing.Select("scope")
}

// Options configure the sound.
type Options struct {
	SampleRate beep.SampleRate
	Frequency  float64       // revolutions of the chain per second
	Volume     float64       // peak amplitude, at most 1
	Duration   time.Duration // length of a recording
}

// DefaultOptions returns 48kHz samples, a drawing traced 50 times per
// second, at 80% volume, for 5 seconds.
func DefaultOptions() Options {
	return Options{
		SampleRate: beep.SampleRate(48000),
		Frequency:  50,
		Volume:     0.8,
		Duration:   5 * time.Second,
	}
}

// Streamer is an endless beep.Streamer of the chain's tip positions.
type Streamer struct {
	plan   []epicycle.Epicycle
	cfg    epicycle.Config
	center fourier.Pair
	half   float64 // half of the longer side of the world
	opts   Options
	pos    int
}

// NewStreamer creates a streamer for a chain, mapping world onto the
// amplitude range. Vertical positions are flipped, so that a drawing in
// image coordinates shows upright.
func NewStreamer(plan []epicycle.Epicycle, world fourier.Rect, opts Options) *Streamer {
	half := math.Max(world.Width(), world.Height()) / 2
	if half <= 0 {
		half = 1
	}
	return &Streamer{
		plan:   plan,
		cfg:    epicycle.Config{Scale: 1, Speed: 1},
		center: world.Center(),
		half:   half,
		opts:   opts,
	}
}

// Stream fills samples with tip positions. It never drains.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(s.pos) * s.opts.Frequency / float64(s.opts.SampleRate)
		t -= math.Floor(t) // keep in [0, 1)
		v := (epicycle.Tip(s.plan, s.cfg, t) - s.center).Scaled(s.opts.Volume / s.half)
		samples[i][0] = clamp(v.X())
		samples[i][1] = clamp(-v.Y())
		s.pos++
	}
	return len(samples), true
}

// Err is always nil.
func (s *Streamer) Err() error {
	return nil
}

func clamp(a float64) float64 {
	return math.Max(-1, math.Min(1, a))
}

// WriteWAV records opts.Duration of a streamer as a 16-bit stereo WAV file.
func WriteWAV(w io.WriteSeeker, st beep.Streamer, opts Options) error {
	n := opts.SampleRate.N(opts.Duration)
	format := beep.Format{SampleRate: opts.SampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, beep.Take(n, st), format); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	tracer().Infof("recorded %d samples at %d Hz", n, int(opts.SampleRate))
	return nil
}
