/*
Command fourier-fun draws the edges of an image with epicycles.

	fourier-fun <image> <depth>

It finds the edges of the image, orders the edge pixels into a tour,
computes depth Fourier coefficients of the tour and animates the chain of
rotating vectors in the terminal. Esc, q or Ctrl-C end the animation.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Kreavita/fourier-fun/epicycle"
	"github.com/Kreavita/fourier-fun/pipeline"
	"github.com/Kreavita/fourier-fun/series"
	"github.com/Kreavita/fourier-fun/surface/term"
	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing"
)

const usage = "Insufficient Arguments. No Image specified and/or No amount of epicycles"

var errUsage = errors.New(usage)

// traceKeys are all tracers of the program.
var traceKeys = []string{
	"fourier", "mask", "tour", "polygon", "series",
	"epicycle", "surface", "edge", "pipeline", "scope",
}

func main() {
	err := run(os.Args[1:])
	if errors.Is(err, errUsage) {
		fmt.Println(usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fourier-fun: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", series.ErrInvalidDepth, args[1])
	}
	r, err := pipeline.Run(args[0], depth, pipeline.DefaultOptions(os.Stdout))
	if err != nil {
		return err
	}
	cfg := epicycle.DefaultConfig(r.Width, r.Height)
	plan := epicycle.Plan(r.Series.List(), cfg.Ordering)
	fmt.Println("Animating Epicycles")

	// the screen belongs to the animation from here on
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(tracing.LevelError)
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	animator, err := epicycle.NewAnimator(term.New(screen, r.World()), plan, cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := animator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
