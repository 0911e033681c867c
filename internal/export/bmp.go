package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"
)

var ErrImageSize = errors.New("export: value count does not match image size")

// NoiseImage maps values, row-major, onto a grayscale image. The smallest
// value becomes black and the largest white; a constant field is black.
func NoiseImage(values []float32, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 || len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrImageSize, len(values), width, height)
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	scale := float32(0)
	if hi > lo {
		scale = 255 / (hi - lo)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i, v := range values {
		img.SetGray(i%width, i/width, color.Gray{Y: uint8((v-lo)*scale + 0.5)})
	}
	return img, nil
}

// WriteBMP encodes img as an uncompressed BMP.
func WriteBMP(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}
