/*
Package edge loads raster images and finds their edges.

The edge detector follows the shape of the classic Canny algorithm:
Sobel gradients, non-maximum suppression and hysteresis between a low and a
high threshold. Its result is a mask.Mask with one foreground pixel per edge
pixel.
*/
package edge

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/Kreavita/fourier-fun/mask"
	"github.com/nfnt/resize"
	"github.com/npillmayer/schuko/tracing"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// tracer writes to trace with key 'edge'
func tracer() tracing.Trace {
	return tracing.Select("edge")
}

// ErrImageLoad is returned for images which are missing, unreadable or
// cannot be decoded.
var ErrImageLoad = errors.New("cannot load image")

// Load reads an image file in one of the registered formats: png, jpeg,
// gif, bmp, tiff or webp.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer file.Close()
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, path, err)
	}
	tracer().Infof("loaded %s image %s, size %v", format, path, img.Bounds().Size())
	return img, nil
}

// Thumbnail scales img down to fit into maxSide × maxSide, keeping its aspect
// ratio. Images already small enough, and a maxSide ≤ 0, leave img unchanged.
func Thumbnail(img image.Image, maxSide int) image.Image {
	size := img.Bounds().Size()
	if maxSide <= 0 || (size.X <= maxSide && size.Y <= maxSide) {
		return img
	}
	thumb := resize.Thumbnail(uint(maxSide), uint(maxSide), img, resize.Lanczos3)
	tracer().Debugf("scaled image from %v to %v", size, thumb.Bounds().Size())
	return thumb
}

// WriteMask stores an edge mask as a PNG image, edge pixels white.
func WriteMask(path string, m *mask.Mask) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = png.Encode(file, m.Gray()); err != nil {
		file.Close()
		return fmt.Errorf("encoding edge mask: %w", err)
	}
	return file.Close()
}
