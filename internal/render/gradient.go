package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/camnoval/audioVisualization/internal/spectral"
)

// ErrInvalidConfig is returned for non-positive rendering dimensions.
var ErrInvalidConfig = errors.New("invalid rendering configuration")

// ErrNoContent is returned when composition is asked to stack zero images.
var ErrNoContent = errors.New("no images to compose")

// Rasterize turns a color sequence into a horizontal gradient strip: column
// i holds colors[i] broadcast across all rows. An empty sequence yields a
// legal zero-width image; height must be positive.
func Rasterize(colors spectral.Sequence, height int) (*image.RGBA, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: height %d", ErrInvalidConfig, height)
	}

	width := len(colors)
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for x, c := range colors {
		col := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		for y := 0; y < height; y++ {
			img.SetRGBA(x, y, col)
		}
	}
	return img, nil
}
