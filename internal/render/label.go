package render

import (
	"image"
	"image/color"

	"github.com/golang/freetype"
	"golang.org/x/image/font"
)

// labelHeightFraction sizes the label relative to the strip height.
const labelHeightFraction = 0.14

// brightness returns perceived luminance in [0, 1] for mean channel values.
func brightness(r, g, b float64) float64 {
	return (0.299*r + 0.587*g + 0.114*b) / 255.0
}

// patchBrightness samples a corner patch at the bottom-left of the image,
// where the label will be drawn, and returns its perceived brightness.
func patchBrightness(img *image.RGBA) float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	patchW, patchH := 64, 64
	if patchW > w {
		patchW = w
	}
	if patchH > h {
		patchH = h
	}
	if patchW == 0 || patchH == 0 {
		return 0
	}

	var sumR, sumG, sumB float64
	for y := bounds.Max.Y - patchH; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Min.X+patchW; x++ {
			c := img.RGBAAt(x, y)
			sumR += float64(c.R)
			sumG += float64(c.G)
			sumB += float64(c.B)
		}
	}
	n := float64(patchW * patchH)
	return brightness(sumR/n, sumG/n, sumB/n)
}

// contrastPair picks a label fill color readable against the given
// brightness, plus the opposite color for the outline halo.
func contrastPair(bright float64) (fill, outline color.RGBA) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	if bright <= 0.5 {
		return white, black
	}
	return black, white
}

// drawOutlinedText draws text with a halo: the outline color stamped at
// every offset within the halo radius, then the fill on top.
func drawOutlinedText(img *image.RGBA, face font.Face, text string, x, y int, fill, outline color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(outline),
		Face: face,
	}

	const halo = 2
	for dy := -halo; dy <= halo; dy++ {
		for dx := -halo; dx <= halo; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = freetype.Pt(x+dx, y+dy)
			d.DrawString(text)
		}
	}

	d.Src = image.NewUniform(fill)
	d.Dot = freetype.Pt(x, y)
	d.DrawString(text)
}

// Label overlays the track title near the bottom-left corner of a gradient
// strip, choosing fill and outline colors for contrast against the sampled
// background. The image is annotated in place and returned; dimensions are
// unchanged. Empty titles and zero-size images are no-ops.
func Label(img *image.RGBA, title string, fonts FontProvider, fontName string) *image.RGBA {
	bounds := img.Bounds()
	if title == "" || bounds.Dx() == 0 || bounds.Dy() == 0 {
		return img
	}

	height := bounds.Dy()
	size := float64(height) * labelHeightFraction
	face := fonts.Resolve(fontName, size)
	if face == nil {
		return img
	}

	fill, outline := contrastPair(patchBrightness(img))

	inset := height / 20
	if inset < 4 {
		inset = 4
	}
	x := bounds.Min.X + inset
	y := bounds.Max.Y - inset

	drawOutlinedText(img, face, title, x, y, fill, outline)
	return img
}
