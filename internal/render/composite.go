package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/camnoval/audioVisualization/internal/spectral"
)

const (
	// titleBandHeight is the vertical space reserved for an album title.
	titleBandHeight = 80

	// thumbnailSize and sampleStride control dominant-color detection:
	// each image is reduced to a thumbnailSize² nearest-neighbour
	// thumbnail and every sampleStride-th pixel is counted.
	thumbnailSize = 100
	sampleStride  = 4
)

// neutralBackground is used only when no input pixels exist to vote on.
var neutralBackground = spectral.RGB{R: 128, G: 128, B: 128}

// CompositeOptions configures album composition.
type CompositeOptions struct {
	// AlbumTitle, when non-empty, reserves a title band and renders the
	// cleaned title centered within it.
	AlbumTitle string
	// Background overrides dominant-color detection when set.
	Background *spectral.RGB
	// Margin is the vertical gap between strips; Border pads all sides.
	Margin int
	Border int
	// FontName is the preferred title font, resolved best-effort.
	FontName string
}

// CleanTitle strips bracketed metadata suffixes that video sources append,
// truncating at the first " [" or " {".
func CleanTitle(title string) string {
	for _, marker := range []string{" [", " {"} {
		if i := strings.Index(title, marker); i >= 0 {
			title = title[:i]
		}
	}
	return title
}

// DominantColor picks the most frequent color across the input images. Each
// image is down-sampled to a small thumbnail and a uniform subset of pixels
// is counted; the first color to reach the maximum count wins, which keeps
// the result deterministic for a fixed input order.
func DominantColor(images []*image.RGBA) spectral.RGB {
	counts := make(map[spectral.RGB]int)
	best := neutralBackground
	bestCount := 0

	for _, img := range images {
		bounds := img.Bounds()
		if bounds.Dx() == 0 || bounds.Dy() == 0 {
			continue
		}

		thumb := image.NewRGBA(image.Rect(0, 0, thumbnailSize, thumbnailSize))
		xdraw.NearestNeighbor.Scale(thumb, thumb.Bounds(), img, bounds, xdraw.Src, nil)

		for y := 0; y < thumbnailSize; y++ {
			for x := 0; x < thumbnailSize; x += sampleStride {
				px := thumb.RGBAAt(x, y)
				c := spectral.RGB{R: px.R, G: px.G, B: px.B}
				counts[c]++
				if counts[c] > bestCount {
					bestCount = counts[c]
					best = c
				}
			}
		}
	}

	return best
}

// Compose stacks labeled strips vertically with uniform margins and border
// on a shared background, optionally topped by an album title band. Strips
// narrower than the widest input are centered horizontally. Input order is
// placement order, top to bottom.
func Compose(images []*image.RGBA, opts CompositeOptions, fonts FontProvider) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, ErrNoContent
	}
	if opts.Margin < 0 || opts.Border < 0 {
		return nil, fmt.Errorf("%w: margin %d, border %d", ErrInvalidConfig, opts.Margin, opts.Border)
	}

	bg := opts.Background
	if bg == nil {
		detected := DominantColor(images)
		bg = &detected
	}

	maxWidth := 0
	sumHeight := 0
	for _, img := range images {
		if w := img.Bounds().Dx(); w > maxWidth {
			maxWidth = w
		}
		sumHeight += img.Bounds().Dy()
	}

	titleHeight := 0
	if opts.AlbumTitle != "" {
		titleHeight = titleBandHeight
	}

	canvasW := maxWidth + 2*opts.Border
	canvasH := sumHeight + opts.Margin*(len(images)-1) + 2*opts.Border + titleHeight

	canvas := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))
	bgColor := color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)

	if titleHeight > 0 {
		drawAlbumTitle(canvas, CleanTitle(opts.AlbumTitle), *bg, opts, fonts, canvasW, titleHeight)
	}

	y := opts.Border + titleHeight
	for _, img := range images {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		x := opts.Border + (maxWidth-w)/2
		dst := image.Rect(x, y, x+w, y+h)
		draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Src)
		y += h + opts.Margin
	}

	return canvas, nil
}

// drawAlbumTitle renders the album title centered in the title band, with
// the contrast pair computed against the chosen background color.
func drawAlbumTitle(canvas *image.RGBA, title string, bg spectral.RGB, opts CompositeOptions, fonts FontProvider, canvasW, titleHeight int) {
	if title == "" {
		return
	}

	size := float64(titleHeight) * 0.55
	face := fonts.Resolve(opts.FontName, size)
	if face == nil {
		return
	}

	fill, outline := contrastPair(brightness(float64(bg.R), float64(bg.G), float64(bg.B)))

	d := &font.Drawer{Dst: canvas, Face: face}
	textBounds, _ := d.BoundString(title)
	textW := (textBounds.Max.X - textBounds.Min.X).Ceil()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	x := (canvasW - textW) / 2
	y := opts.Border + (titleHeight-ascent-descent)/2 + ascent

	drawOutlinedText(canvas, face, title, x, y, fill, outline)
}
