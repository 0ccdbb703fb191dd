package edge

import (
	"image"
	"image/color"
	"math"

	"github.com/Kreavita/fourier-fun/mask"
)

// Thresholds used by the command line programs.
const (
	DefaultLow  = 50
	DefaultHigh = 200
)

var (
	tan22 = math.Tan(math.Pi / 8)     // boundary of the horizontal sector
	tan67 = math.Tan(3 * math.Pi / 8) // boundary of the vertical sector
)

// gradient holds Sobel derivatives and their L1 magnitude for a w×h raster.
type gradient struct {
	w, h   int
	dx, dy []float64
	mag    []float64
}

// grayLevels converts img to 8-bit luminance, row by row.
func grayLevels(img image.Image) ([]float64, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			lum[y*w+x] = float64(g.Y)
		}
	}
	return lum, w, h
}

// sobel computes 3×3 Sobel derivatives. Pixels outside the raster replicate
// the nearest border pixel.
func sobel(lum []float64, w, h int) *gradient {
	g := &gradient{
		w:   w,
		h:   h,
		dx:  make([]float64, w*h),
		dy:  make([]float64, w*h),
		mag: make([]float64, w*h),
	}
	at := func(x, y int) float64 {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		return lum[y*w+x]
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			gy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			i := y*w + x
			g.dx[i], g.dy[i] = gx, gy
			g.mag[i] = math.Abs(gx) + math.Abs(gy)
		}
	}
	return g
}

// m returns the magnitude at (x, y), 0 outside the raster.
func (g *gradient) m(x, y int) float64 {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return 0
	}
	return g.mag[y*g.w+x]
}

// isMaximum tells if the magnitude at (x, y) is a local maximum across the
// edge, i.e. along the gradient direction quantized to one of four sectors.
func (g *gradient) isMaximum(x, y int) bool {
	i := y*g.w + x
	m := g.mag[i]
	ax, ay := math.Abs(g.dx[i]), math.Abs(g.dy[i])
	switch {
	case ay < ax*tan22: // horizontal gradient, vertical edge
		return m > g.m(x-1, y) && m >= g.m(x+1, y)
	case ay > ax*tan67:
		return m > g.m(x, y-1) && m >= g.m(x, y+1)
	case (g.dx[i] < 0) != (g.dy[i] < 0):
		return m > g.m(x-1, y+1) && m >= g.m(x+1, y-1)
	default:
		return m > g.m(x-1, y-1) && m >= g.m(x+1, y+1)
	}
}

// Canny finds the edges of img. Gradient magnitudes are the L1 norm of the
// Sobel derivatives. Pixels above high are edges; pixels above low are edges
// if they connect to an edge pixel through 8-neighbours above low. Only local
// maxima across the edge are kept. Edge pixels are set to 255 in the
// resulting mask, which is indexed relative to img's bounds.
func Canny(img image.Image, low, high float64) *mask.Mask {
	if low > high {
		low, high = high, low
	}
	lum, w, h := grayLevels(img)
	out := mask.New(w, h)
	if w == 0 || h == 0 {
		return out
	}
	g := sobel(lum, w, h)
	const (
		none = iota
		weak
		strong
	)
	class := make([]uint8, w*h)
	var stack []int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if g.mag[i] <= low || !g.isMaximum(x, y) {
				continue
			}
			if g.mag[i] > high {
				class[i] = strong
				stack = append(stack, i)
			} else {
				class[i] = weak
			}
		}
	}
	// hysteresis: grow strong pixels into connected weak ones
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out.Pix[i] = 255
		x, y := i%w, i/w
		for ny := y - 1; ny <= y+1; ny++ {
			for nx := x - 1; nx <= x+1; nx++ {
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				if j := ny*w + nx; class[j] == weak {
					class[j] = strong
					stack = append(stack, j)
				}
			}
		}
	}
	tracer().Debugf("canny %g/%g: %d edge pixels in %dx%d image", low, high, out.Count(), w, h)
	return out
}
