/*
Package surface defines the drawing surface an animation renders to.

A surface is retained: drawables are created once, addressed by handle,
moved, and eventually deleted. Nothing is visible before Pump, which
redraws the scene and processes pending user input.
*/
package surface

import (
	"errors"
	"sort"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'surface'
func tracer() tracing.Trace {
	return tracing.Select("surface")
}

// ErrClosed is returned by Pump once the user has closed the surface.
var ErrClosed = errors.New("surface closed")

// Handle identifies a drawable on a surface. The zero handle is never issued.
type Handle int

// Surface is a retained drawing surface.
type Surface interface {
	Ellipse(box fourier.Rect) Handle          // create an ellipse inscribed in box
	MoveEllipse(h Handle, box fourier.Rect)   // update an ellipse
	Line(from, to fourier.Pair) Handle        // create a line
	MoveLine(h Handle, from, to fourier.Pair) // update a line
	Trail(from, to fourier.Pair) Handle       // create a persistent trail segment
	Delete(h Handle)                          // remove a drawable
	Pump() error                              // redraw and process events
}

// Kind tells what a drawable is.
type Kind int

const (
	KindEllipse Kind = iota + 1
	KindLine
	KindTrail
)

func (k Kind) String() string {
	switch k {
	case KindEllipse:
		return "ellipse"
	case KindLine:
		return "line"
	case KindTrail:
		return "trail"
	}
	return "unknown"
}

// Shape is a drawable as stored in a Scene. Ellipses use From and To as the
// corners of their bounding box.
type Shape struct {
	Kind     Kind
	From, To fourier.Pair
}

// Box returns the bounding box of the shape.
func (s Shape) Box() fourier.Rect {
	return fourier.R(s.From, s.To)
}

// Scene is a store of drawables, shared by the surface implementations.
// It implements everything of Surface but Pump.
type Scene struct {
	shapes map[Handle]Shape
	next   Handle
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{shapes: make(map[Handle]Shape)}
}

func (sc *Scene) add(s Shape) Handle {
	if sc.shapes == nil {
		sc.shapes = make(map[Handle]Shape)
	}
	sc.next++
	sc.shapes[sc.next] = s
	return sc.next
}

func (sc *Scene) move(h Handle, kind Kind, from, to fourier.Pair) {
	s, ok := sc.shapes[h]
	if !ok || s.Kind != kind {
		tracer().Errorf("cannot move drawable %d: not a live %s", h, kind)
		return
	}
	s.From, s.To = from, to
	sc.shapes[h] = s
}

// Ellipse creates an ellipse inscribed in box.
func (sc *Scene) Ellipse(box fourier.Rect) Handle {
	return sc.add(Shape{Kind: KindEllipse, From: box.Min, To: box.Max})
}

// MoveEllipse updates the bounding box of an ellipse.
func (sc *Scene) MoveEllipse(h Handle, box fourier.Rect) {
	sc.move(h, KindEllipse, box.Min, box.Max)
}

// Line creates a line.
func (sc *Scene) Line(from, to fourier.Pair) Handle {
	return sc.add(Shape{Kind: KindLine, From: from, To: to})
}

// MoveLine updates the end points of a line.
func (sc *Scene) MoveLine(h Handle, from, to fourier.Pair) {
	sc.move(h, KindLine, from, to)
}

// Trail creates a trail segment.
func (sc *Scene) Trail(from, to fourier.Pair) Handle {
	return sc.add(Shape{Kind: KindTrail, From: from, To: to})
}

// Delete removes a drawable. Unknown handles are ignored.
func (sc *Scene) Delete(h Handle) {
	delete(sc.shapes, h)
}

// Len is the number of drawables.
func (sc *Scene) Len() int {
	return len(sc.shapes)
}

// Get returns the drawable for a handle.
func (sc *Scene) Get(h Handle) (Shape, bool) {
	s, ok := sc.shapes[h]
	return s, ok
}

// Each calls fn for every drawable in creation order.
func (sc *Scene) Each(fn func(Handle, Shape)) {
	handles := make([]Handle, 0, len(sc.shapes))
	for h := range sc.shapes {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	for _, h := range handles {
		fn(h, sc.shapes[h])
	}
}
