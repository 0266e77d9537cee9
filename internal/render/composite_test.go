package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/camnoval/audioVisualization/internal/spectral"
)

// TestCompose_Geometry checks the documented canvas arithmetic: two 100x50
// strips, margin 5, border 10, no title -> 120x125.
func TestCompose_Geometry(t *testing.T) {
	images := []*image.RGBA{
		uniformImage(100, 50, color.RGBA{200, 0, 0, 255}),
		uniformImage(100, 50, color.RGBA{0, 200, 0, 255}),
	}

	out, err := Compose(images, CompositeOptions{Margin: 5, Border: 10}, DefaultFonts())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if got := out.Bounds(); got.Dx() != 120 || got.Dy() != 125 {
		t.Errorf("canvas %dx%d, want 120x125", got.Dx(), got.Dy())
	}
}

func TestCompose_TitleBandAddsHeight(t *testing.T) {
	images := []*image.RGBA{uniformImage(100, 50, color.RGBA{200, 0, 0, 255})}

	plain, err := Compose(images, CompositeOptions{Border: 10}, DefaultFonts())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	titled, err := Compose(images, CompositeOptions{Border: 10, AlbumTitle: "Album"}, DefaultFonts())
	if err != nil {
		t.Fatalf("Compose with title: %v", err)
	}

	if got := titled.Bounds().Dy() - plain.Bounds().Dy(); got != titleBandHeight {
		t.Errorf("title band added %d px, want %d", got, titleBandHeight)
	}
}

func TestCompose_NoContent(t *testing.T) {
	if _, err := Compose(nil, CompositeOptions{}, DefaultFonts()); !errors.Is(err, ErrNoContent) {
		t.Errorf("got %v, want ErrNoContent", err)
	}
}

func TestCompose_InvalidGeometry(t *testing.T) {
	images := []*image.RGBA{uniformImage(10, 10, color.RGBA{1, 2, 3, 255})}
	if _, err := Compose(images, CompositeOptions{Margin: -1}, DefaultFonts()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative margin: got %v, want ErrInvalidConfig", err)
	}
}

// TestCompose_BackgroundOverride verifies an explicit background bypasses
// dominant-color detection entirely.
func TestCompose_BackgroundOverride(t *testing.T) {
	images := []*image.RGBA{uniformImage(50, 20, color.RGBA{200, 0, 0, 255})}
	override := spectral.RGB{R: 25, G: 25, B: 112}

	out, err := Compose(images, CompositeOptions{Background: &override, Border: 8}, DefaultFonts())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if corner := out.RGBAAt(0, 0); corner != (color.RGBA{25, 25, 112, 255}) {
		t.Errorf("border pixel %v, want midnight blue", corner)
	}
}

// TestCompose_OrderPreserved verifies strips land top-to-bottom in input
// order.
func TestCompose_OrderPreserved(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	images := []*image.RGBA{
		uniformImage(60, 20, red),
		uniformImage(60, 20, green),
		uniformImage(60, 20, blue),
	}

	bg := spectral.RGB{}
	out, err := Compose(images, CompositeOptions{Margin: 4, Border: 6, Background: &bg}, DefaultFonts())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// Sample the vertical center of each expected band.
	checks := []struct {
		y    int
		want color.RGBA
	}{
		{6 + 10, red},
		{6 + 20 + 4 + 10, green},
		{6 + 2*(20+4) + 10, blue},
	}
	for _, c := range checks {
		if got := out.RGBAAt(30, c.y); got != c.want {
			t.Errorf("row y=%d: got %v, want %v", c.y, got, c.want)
		}
	}
}

// TestCompose_NarrowStripCentered verifies a narrower strip is centered in
// the content width.
func TestCompose_NarrowStripCentered(t *testing.T) {
	wide := uniformImage(100, 10, color.RGBA{255, 0, 0, 255})
	narrow := uniformImage(50, 10, color.RGBA{0, 255, 0, 255})

	bg := spectral.RGB{}
	out, err := Compose([]*image.RGBA{wide, narrow}, CompositeOptions{Border: 0, Background: &bg}, DefaultFonts())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// Narrow strip occupies x in [25, 75) on its row.
	if got := out.RGBAAt(10, 15); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("left gap pixel %v, want background", got)
	}
	if got := out.RGBAAt(50, 15); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("center pixel %v, want green strip", got)
	}
}

// TestDominantColor_Majority verifies a 90/10 split resolves to the
// majority color.
func TestDominantColor_Majority(t *testing.T) {
	a := color.RGBA{10, 200, 30, 255}
	b := color.RGBA{250, 5, 5, 255}

	img := uniformImage(100, 100, a)
	// Overwrite the top 10 rows with the minority color.
	for y := 0; y < 10; y++ {
		for x := 0; x < 100; x++ {
			img.SetRGBA(x, y, b)
		}
	}

	got := DominantColor([]*image.RGBA{img})
	want := spectral.RGB{R: a.R, G: a.G, B: a.B}
	if got != want {
		t.Errorf("dominant color %+v, want %+v", got, want)
	}
}

func TestDominantColor_NoPixels(t *testing.T) {
	if got := DominantColor(nil); got != neutralBackground {
		t.Errorf("got %+v, want neutral fallback %+v", got, neutralBackground)
	}

	empty := image.NewRGBA(image.Rect(0, 0, 0, 40))
	if got := DominantColor([]*image.RGBA{empty}); got != neutralBackground {
		t.Errorf("zero-width input: got %+v, want neutral fallback", got)
	}
}

// TestDominantColor_Deterministic verifies repeated detection over the same
// inputs agrees, including on an exact tie.
func TestDominantColor_Deterministic(t *testing.T) {
	a := color.RGBA{1, 2, 3, 255}
	b := color.RGBA{4, 5, 6, 255}
	img := uniformImage(100, 100, a)
	for y := 50; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetRGBA(x, y, b)
		}
	}

	first := DominantColor([]*image.RGBA{img})
	for i := 0; i < 5; i++ {
		if got := DominantColor([]*image.RGBA{img}); got != first {
			t.Fatalf("run %d: %+v != %+v", i, got, first)
		}
	}
	// Scan order sees color a first; on an exact 50/50 tie the first to
	// reach the maximum count must win.
	if first != (spectral.RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("tie broke to %+v, want first-encountered color", first)
	}
}

func TestCleanTitle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Abbey Road", "Abbey Road"},
		{"Abbey Road [Full Album]", "Abbey Road"},
		{"Abbey Road {Remastered}", "Abbey Road"},
		{"Abbey Road [Full Album] {HD}", "Abbey Road"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanTitle(tc.in); got != tc.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
