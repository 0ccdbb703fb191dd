// Package mask holds binary edge masks and extracts their foreground pixels
// as points.
package mask

import (
	"errors"
	"image"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'mask'
func tracer() tracing.Trace {
	return tracing.Select("mask")
}

// ErrEmptyEdgeSet indicates a mask without any foreground pixel.
var ErrEmptyEdgeSet = errors.New("edge mask has no foreground pixels")

// Mask is a 2D intensity mask of Height rows by Width columns, stored row by
// row. Any nonzero cell is a foreground (edge) pixel.
type Mask struct {
	Width, Height int
	Pix           []uint8
}

// New creates an all-background mask.
func New(width, height int) *Mask {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FromGray copies a grayscale image into a mask.
func FromGray(img *image.Gray) *Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(m.Pix[y*m.Width:(y+1)*m.Width], img.Pix[off:off+m.Width])
	}
	return m
}

// At returns the value at column x, row y. Outside cells are background.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Set the value at column x, row y. Outside cells are ignored.
func (m *Mask) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = v
}

// Count returns the number of foreground cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Points returns one point per foreground cell, with the column as the real
// part and the row as the imaginary part.
//
// Points are handed out in row-major scan order. Tours built from them are
// therefore reproducible; callers must not rely on any other property of
// the order.
func (m *Mask) Points() ([]fourier.Pair, error) {
	points := make([]fourier.Pair, 0, m.Count())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Pix[y*m.Width+x] != 0 {
				points = append(points, fourier.P(float64(x), float64(y)))
			}
		}
	}
	if len(points) == 0 {
		return nil, ErrEmptyEdgeSet
	}
	tracer().Debugf("extracted %d points from %dx%d mask", len(points), m.Width, m.Height)
	return points, nil
}

// Gray returns the mask as a grayscale image, foreground white.
func (m *Mask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v != 0 {
			img.Pix[i] = 0xff
		}
	}
	return img
}
