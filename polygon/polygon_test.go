package polygon

import (
	"testing"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(fourier.P(0, 0)).Knot(fourier.P(1, 3)).Knot(fourier.P(3, 0)).Cycle()
	L().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	assert.Equal(t, "(0,0) -- (1,3) -- (3,0) -- cycle", AsString(pg))
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(fourier.P(0, 5), fourier.P(4, 1))
	L().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	assert.Equal(t, fourier.R(fourier.P(0, 1), fourier.P(4, 5)), box.Bounds())
	assert.True(t, box.Contains(fourier.P(2, 3)))
	assert.False(t, box.Contains(fourier.P(5, 3)))
}

func TestFromPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := []fourier.Pair{fourier.P(3, 2), fourier.P(7, 4), fourier.P(5, 9), fourier.P(1, 6)}
	pg := FromPath(path)
	assert.True(t, pg.IsCycle())
	assert.Equal(t, 4, pg.N())
	assert.Equal(t, fourier.P(5, 9), pg.Z(2))
	assert.Equal(t, fourier.R(fourier.P(1, 2), fourier.P(7, 9)), pg.Bounds())
}

func TestEmptyBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.True(t, NullPolygon().Bounds().Empty())
	assert.False(t, NullPolygon().Knot(fourier.P(1, 1)).Contains(fourier.P(1, 1)))
}
