package mask

import (
	"image"
	"image/color"
	"testing"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsRowMajor(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New(4, 3)
	m.Set(3, 0, 1)
	m.Set(1, 0, 255)
	m.Set(0, 2, 7)
	m.Set(2, 1, 1)
	points, err := m.Points()
	require.NoError(t, err)
	want := []fourier.Pair{fourier.P(1, 0), fourier.P(3, 0), fourier.P(2, 1), fourier.P(0, 2)}
	assert.Equal(t, want, points)
	assert.Equal(t, 4, m.Count())
}

func TestSinglePixel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New(10, 10)
	m.Set(5, 5, 255)
	points, err := m.Points()
	require.NoError(t, err)
	assert.Equal(t, []fourier.Pair{fourier.P(5, 5)}, points)
}

func TestEmptyMask(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := New(8, 8).Points()
	assert.ErrorIs(t, err, ErrEmptyEdgeSet)
	_, err = New(0, 0).Points()
	assert.ErrorIs(t, err, ErrEmptyEdgeSet)
}

func TestOutOfBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New(2, 2)
	m.Set(-1, 0, 1)
	m.Set(2, 1, 1)
	assert.Equal(t, 0, m.Count())
	assert.Equal(t, uint8(0), m.At(5, 5))
}

func TestGrayRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	img := image.NewGray(image.Rect(2, 3, 7, 6))
	img.SetGray(4, 4, color.Gray{Y: 12})
	m := FromGray(img)
	require.Equal(t, 5, m.Width)
	require.Equal(t, 3, m.Height)
	assert.Equal(t, uint8(12), m.At(2, 1))
	points, err := m.Points()
	require.NoError(t, err)
	assert.Equal(t, []fourier.Pair{fourier.P(2, 1)}, points)
	g := m.Gray()
	assert.Equal(t, uint8(0xff), g.GrayAt(2, 1).Y)
	assert.Equal(t, uint8(0), g.GrayAt(0, 0).Y)
}
