// Package tour orders a set of points into a single path by greedy
// nearest-neighbour chaining.
//
// The result is not an optimal tour. When the points form several disjoint
// contours the path jumps between them; Measure reports the longest of
// these hops.
package tour

import (
	"errors"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tour'
func tracer() tracing.Trace {
	return tracing.Select("tour")
}

// ErrEmptyPointSet indicates that there is nothing to order.
var ErrEmptyPointSet = errors.New("cannot build a tour from an empty point set")

// Build orders points into a path. The path starts with points[0]; every
// following point is the closest point not yet visited, measured from the
// previously appended one. Ties go to the candidate coming first in the
// input order. points itself is not modified.
//
// Build is O(k²) for k points.
func Build(points []fourier.Pair) ([]fourier.Pair, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPointSet
	}
	remaining := make([]fourier.Pair, len(points)-1)
	copy(remaining, points[1:])
	path := make([]fourier.Pair, 1, len(points))
	path[0] = points[0]
	for len(remaining) > 0 {
		j := closest(remaining, path[len(path)-1])
		path = append(path, remaining[j])
		// keep the order of the remaining candidates, it decides ties
		remaining = append(remaining[:j], remaining[j+1:]...)
	}
	tracer().Debugf("tour of %d points built", len(path))
	return path, nil
}

// closest returns the index of the candidate nearest to p. Only a strictly
// smaller distance replaces the current best.
func closest(candidates []fourier.Pair, p fourier.Pair) int {
	best, bestDist := 0, p.Dist2(candidates[0])
	for i := 1; i < len(candidates); i++ {
		if d := p.Dist2(candidates[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Stats describes a path.
type Stats struct {
	Points     int     // number of points
	Length     float64 // sum of all hops, without closing the loop
	LongestHop float64 // longest distance between consecutive points
	LongestAt  int     // index of the point the longest hop arrives at
}

// Measure computes statistics of a path.
func Measure(path []fourier.Pair) Stats {
	st := Stats{Points: len(path)}
	for i := 1; i < len(path); i++ {
		d := path[i-1].Dist(path[i])
		st.Length += d
		if d > st.LongestHop {
			st.LongestHop, st.LongestAt = d, i
		}
	}
	if st.LongestHop > 2 {
		tracer().Infof("tour jumps %.1f pixels to %s", st.LongestHop, path[st.LongestAt])
	}
	return st
}
