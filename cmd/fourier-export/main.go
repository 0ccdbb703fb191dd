/*
Command fourier-export renders the epicycles of an image without a display.

	fourier-export <image> <depth> <out.svg|out.wav>

An .svg output is a snapshot after one full revolution of the chain, with
the complete trail. A .wav output is a stereo recording for an oscilloscope
in XY mode.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Kreavita/fourier-fun/epicycle"
	"github.com/Kreavita/fourier-fun/pipeline"
	"github.com/Kreavita/fourier-fun/scope"
	"github.com/Kreavita/fourier-fun/series"
	"github.com/Kreavita/fourier-fun/surface/svg"
)

const usage = "usage: fourier-export <image> <depth> <out.svg|out.wav>"

var errUsage = errors.New(usage)

func main() {
	err := run(os.Args[1:])
	if errors.Is(err, errUsage) {
		fmt.Println(usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fourier-export: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", series.ErrInvalidDepth, args[1])
	}
	out := args[2]
	ext := strings.ToLower(filepath.Ext(out))
	if ext != ".svg" && ext != ".wav" {
		return fmt.Errorf("%w: cannot write %q", errUsage, out)
	}
	r, err := pipeline.Run(args[0], depth, pipeline.DefaultOptions(os.Stdout))
	if err != nil {
		return err
	}
	cfg := epicycle.DefaultConfig(r.Width, r.Height)
	cfg.FrameInterval = 0
	plan := epicycle.Plan(r.Series.List(), cfg.Ordering)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if ext == ".wav" {
		fmt.Println("Recording Epicycles")
		err = scope.WriteWAV(f, scope.NewStreamer(plan, r.World(), scope.DefaultOptions()), scope.DefaultOptions())
	} else {
		fmt.Println("Drawing Epicycles")
		err = snapshot(f, r, plan, cfg)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// snapshot animates one revolution onto a SVG canvas and writes it.
func snapshot(f *os.File, r *pipeline.Result, plan []epicycle.Epicycle, cfg epicycle.Config) error {
	canvas := svg.New(f, r.World(), cfg.Period()+1)
	animator, err := epicycle.NewAnimator(canvas, plan, cfg)
	if err != nil {
		return err
	}
	if err := animator.Run(context.Background()); err != nil {
		return err
	}
	return canvas.Close()
}
