/*
Package pipeline runs the steps from an image file to the Fourier series of
its edge contour: edge detection, point extraction, tour building and
coefficient computation.

Every step announces itself on the progress writer of the options. All
errors are fatal to a run.
*/
package pipeline

import (
	"fmt"
	"io"
	"math"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/Kreavita/fourier-fun/edge"
	"github.com/Kreavita/fourier-fun/mask"
	"github.com/Kreavita/fourier-fun/polygon"
	"github.com/Kreavita/fourier-fun/series"
	"github.com/Kreavita/fourier-fun/tour"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pipeline'
func tracer() tracing.Trace {
	return tracing.Select("pipeline")
}

// Options configure a run.
type Options struct {
	Low, High float64   // edge detection thresholds
	MaxSide   int       // images are scaled down to fit MaxSide × MaxSide, 0 for never
	MaskFile  string    // if set, the edge mask is stored there as PNG
	Out       io.Writer // progress announcements, nil for none
}

// DefaultOptions returns the options used by the command line programs:
// thresholds 50 and 200, images scaled down to at most 512 pixels.
func DefaultOptions(out io.Writer) Options {
	return Options{
		Low:     edge.DefaultLow,
		High:    edge.DefaultHigh,
		MaxSide: 512,
		Out:     out,
	}
}

func (opts Options) announce(msg string) {
	if opts.Out != nil {
		fmt.Fprintln(opts.Out, msg)
	}
}

// Result holds everything computed by a run.
type Result struct {
	Width, Height int              // size of the edge mask, the canvas
	Points        []fourier.Pair   // edge pixels in row-major order
	Path          []fourier.Pair   // the points ordered into a tour
	Stats         tour.Stats       // diagnostics of the tour
	Outline       *polygon.Polygon // the tour as a closed polygon
	Series        series.Series    // the coefficients, depth many
}

// Run computes the Fourier series of the edges of an image. depth is
// checked before the image is read.
func Run(imagePath string, depth int, opts Options) (*Result, error) {
	if err := series.ValidateDepth(depth); err != nil {
		return nil, err
	}
	opts.announce("Finding Edges ...")
	img, err := edge.Load(imagePath)
	if err != nil {
		return nil, err
	}
	img = edge.Thumbnail(img, opts.MaxSide)
	m := edge.Canny(img, opts.Low, opts.High)
	if opts.MaskFile != "" {
		if err := edge.WriteMask(opts.MaskFile, m); err != nil {
			return nil, err
		}
		tracer().Infof("edge mask stored in %s", opts.MaskFile)
	}
	return FromMask(m, depth, opts)
}

// FromMask computes the Fourier series of the foreground pixels of m.
func FromMask(m *mask.Mask, depth int, opts Options) (*Result, error) {
	if err := series.ValidateDepth(depth); err != nil {
		return nil, err
	}
	r := &Result{Width: m.Width, Height: m.Height}
	var err error
	opts.announce("Extracting all edge points ...")
	if r.Points, err = m.Points(); err != nil {
		return nil, err
	}
	opts.announce("sorting points ...")
	if r.Path, err = tour.Build(r.Points); err != nil {
		return nil, err
	}
	r.Stats = tour.Measure(r.Path)
	r.Outline = polygon.FromPath(r.Path)
	opts.announce("Computing Fourier coefficients ...")
	if r.Series, err = series.Solve(r.Path, depth); err != nil {
		return nil, err
	}
	tracer().Infof("%d edge points, tour length %.1f, %d coefficients",
		len(r.Points), r.Stats.Length, r.Series.Len())
	return r, nil
}

// Canvas is the rectangle of the edge mask.
func (r *Result) Canvas() fourier.Rect {
	return fourier.R(fourier.Origin, fourier.P(float64(r.Width), float64(r.Height)))
}

// World is the region a renderer should show: the bounds of the outline
// with a margin of 5% of the canvas' longer side. Outlines without area
// show the whole canvas.
func (r *Result) World() fourier.Rect {
	if r.Outline == nil {
		return r.Canvas()
	}
	b := r.Outline.Bounds()
	if b.Empty() {
		return r.Canvas()
	}
	margin := math.Max(1, 0.05*math.Max(float64(r.Width), float64(r.Height)))
	return b.Inflate(margin)
}
