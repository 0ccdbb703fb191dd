package epicycle

import (
	"slices"

	fourier "github.com/Kreavita/fourier-fun"
)

// Segment is a straight line from one point to another.
type Segment struct {
	From, To fourier.Pair
}

// Trace is a bounded FIFO of trail segments. Once it holds Max segments,
// every push evicts the oldest one.
//
// Trace is a value: Push returns the successor and never writes to the
// segments of the receiver, so any earlier Trace may be pushed again.
type Trace struct {
	segs []Segment
	max  int
}

// NewTrace creates an empty trace retaining at most max segments. A max
// below 1 is treated as 1.
func NewTrace(max int) Trace {
	if max < 1 {
		max = 1
	}
	return Trace{max: max}
}

// Push appends seg and returns the new trace together with the segments
// evicted to stay within bounds, oldest first.
func (tr Trace) Push(seg Segment) (Trace, []Segment) {
	if tr.max < 1 {
		tr.max = 1
	}
	segs := append(slices.Clip(tr.segs), seg) // always a fresh array
	var evicted []Segment
	if over := len(segs) - tr.max; over > 0 {
		evicted = segs[:over:over]
		segs = segs[over:]
	}
	tr.segs = segs
	return tr, evicted
}

// Len is the number of retained segments.
func (tr Trace) Len() int {
	return len(tr.segs)
}

// Max is the number of segments retained at most.
func (tr Trace) Max() int {
	return tr.max
}

// Segments returns a copy of the retained segments, oldest first.
func (tr Trace) Segments() []Segment {
	out := make([]Segment, len(tr.segs))
	copy(out, tr.segs)
	return out
}
