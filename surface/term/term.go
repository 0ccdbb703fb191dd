/*
Package term implements a drawing surface on a terminal screen.

Drawables are rasterized into braille characters, each terminal cell
holding 2×4 dots. The world rectangle given to New is fitted into the
screen and refitted whenever the terminal is resized.
*/
package term

import (
	"math"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/Kreavita/fourier-fun/surface"
	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'surface'
func tracer() tracing.Trace {
	return tracing.Select("surface")
}

const (
	dotsX = 2 // braille dots per cell, horizontally
	dotsY = 4 // braille dots per cell, vertically

	brailleBase = 0x2800
	maxSamples  = 4096 // polygon corners used for the largest ellipses
)

// braille dot bits, indexed by [row][column] within a cell
var dotBits = [dotsY][dotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

var (
	styleChain = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleTrail = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorAqua)
)

// Canvas is a surface on a tcell screen.
type Canvas struct {
	*surface.Scene
	screen   tcell.Screen
	world    fourier.Rect
	toDevice fourier.AT
	events   chan tcell.Event
	done     chan struct{} // closed once the canvas is closed
	stopped  chan struct{} // closed when the event reader ends
	width    int           // in cells
	height   int           // in cells
	dots     []uint8       // braille bits per cell
	trail    []bool        // cell shows trail
	closed   bool
}

// New creates a canvas on an initialized screen, fitting world into it.
// It starts reading the screen's events; reading ends when the screen is
// finalized or the canvas is closed.
func New(screen tcell.Screen, world fourier.Rect) *Canvas {
	c := &Canvas{
		Scene:   surface.NewScene(),
		screen:  screen,
		world:   world,
		events:  make(chan tcell.Event, 64),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	c.resize()
	go c.read()
	return c
}

func (c *Canvas) read() {
	defer close(c.stopped)
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			close(c.events)
			return
		}
		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}

// close marks the canvas closed. Events arriving later are dropped.
func (c *Canvas) close() {
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}

// Size returns the size of the canvas in cells.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Dots returns the braille dot bits of cell (x, y).
func (c *Canvas) Dots(x, y int) uint8 {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return 0
	}
	return c.dots[y*c.width+x]
}

// Rune returns the character of cell (x, y) as drawn by the last Pump.
func (c *Canvas) Rune(x, y int) rune {
	if d := c.Dots(x, y); d != 0 {
		return rune(brailleBase + int(d))
	}
	return ' '
}

// IsTrail is true if cell (x, y) shows a trail segment.
func (c *Canvas) IsTrail(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	return c.trail[y*c.width+x]
}

// Device maps a world point to dot coordinates.
func (c *Canvas) Device(p fourier.Pair) fourier.Pair {
	return c.toDevice.Transform(p)
}

func (c *Canvas) resize() {
	c.width, c.height = c.screen.Size()
	c.dots = make([]uint8, c.width*c.height)
	c.trail = make([]bool, c.width*c.height)
	device := fourier.R(fourier.Origin, fourier.P(float64(c.width*dotsX-1), float64(c.height*dotsY-1)))
	c.toDevice = fourier.Fit(c.world, device)
	tracer().Debugf("canvas %dx%d cells, world %s", c.width, c.height, c.world)
}

// Pump processes pending events, then redraws the scene. It never waits
// for input. After the user pressed Esc, q or Ctrl-C, Pump returns
// surface.ErrClosed.
func (c *Canvas) Pump() error {
	c.drain()
	if c.closed {
		return surface.ErrClosed
	}
	c.raster()
	c.show()
	return nil
}

func (c *Canvas) drain() {
	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				c.close()
				return
			}
			c.handle(ev)
		default:
			return
		}
	}
}

func (c *Canvas) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			tracer().Infof("closed by user")
			c.close()
		}
	case *tcell.EventResize:
		c.screen.Sync()
		c.resize()
	}
}

// raster rebuilds the dot buffer from the scene.
func (c *Canvas) raster() {
	clear(c.dots)
	clear(c.trail)
	c.Each(func(_ surface.Handle, s surface.Shape) {
		trail := s.Kind == surface.KindTrail
		switch s.Kind {
		case surface.KindEllipse:
			c.ellipse(s.Box(), trail)
		default:
			c.line(c.Device(s.From), c.Device(s.To), trail)
		}
	})
}

func (c *Canvas) show() {
	c.screen.Clear()
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			d := c.dots[y*c.width+x]
			if d == 0 {
				continue
			}
			style := styleChain
			if c.trail[y*c.width+x] {
				style = styleTrail
			}
			c.screen.SetContent(x, y, rune(brailleBase+int(d)), nil, style)
		}
	}
	c.screen.Show()
}

func (c *Canvas) dot(x, y int, trail bool) {
	if x < 0 || y < 0 || x >= c.width*dotsX || y >= c.height*dotsY {
		return
	}
	i := (y/dotsY)*c.width + x/dotsX
	c.dots[i] |= dotBits[y%dotsY][x%dotsX]
	if trail {
		c.trail[i] = true
	}
}

// line draws with Bresenham's algorithm, in dot coordinates.
func (c *Canvas) line(from, to fourier.Pair, trail bool) {
	cx, cy := int(math.Round(from.X())), int(math.Round(from.Y()))
	ex, ey := int(math.Round(to.X())), int(math.Round(to.Y()))
	if !c.visible(cx, cy, ex, ey) {
		return
	}
	dx, dy := ex-cx, ey-cy
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if cx > ex {
		sx = -1
	}
	if cy > ey {
		sy = -1
	}
	err := dx - dy
	for {
		c.dot(cx, cy, trail)
		if cx == ex && cy == ey {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			cx += sx
		}
		if e2 < dx {
			err += dx
			cy += sy
		}
	}
}

// visible is false for lines entirely to one side of the dot grid.
func (c *Canvas) visible(x0, y0, x1, y1 int) bool {
	w, h := c.width*dotsX, c.height*dotsY
	return !(x0 < 0 && x1 < 0 || y0 < 0 && y1 < 0 || x0 >= w && x1 >= w || y0 >= h && y1 >= h)
}

// ellipse approximates an ellipse by a polygon with about one corner per dot
// of circumference.
func (c *Canvas) ellipse(box fourier.Rect, trail bool) {
	min, max := c.Device(box.Min), c.Device(box.Max)
	center := (min + max) / 2
	rx, ry := math.Abs(max.X()-min.X())/2, math.Abs(max.Y()-min.Y())/2
	if rx < 0.5 && ry < 0.5 {
		c.dot(int(math.Round(center.X())), int(math.Round(center.Y())), trail)
		return
	}
	n := int(math.Ceil(2 * math.Pi * math.Max(rx, ry)))
	n = int(math.Min(float64(maxSamples), math.Max(8, float64(n))))
	prev := center + fourier.P(rx, 0)
	for i := 1; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		p := center + fourier.P(rx*math.Cos(a), ry*math.Sin(a))
		c.line(prev, p, trail)
		prev = p
	}
}
