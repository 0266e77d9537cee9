package spectral

import (
	"math"
	"testing"
)

// TestFrequencyToColor_ClampedBoundaries verifies that both ends of the
// audible range map to well-defined, non-black colors. 20 Hz lands at
// 400 nm (violet-blue) and 20 kHz at 700 nm (red); neither sits in the
// black out-of-range region.
func TestFrequencyToColor_ClampedBoundaries(t *testing.T) {
	low := FrequencyToColor(20)
	high := FrequencyToColor(20000)

	if low == (RGB{}) {
		t.Errorf("20 Hz mapped to black: %+v", low)
	}
	if high == (RGB{}) {
		t.Errorf("20 kHz mapped to black: %+v", high)
	}

	// 400 nm is in the violet band: blue-dominant, no green.
	if low.B == 0 || low.G != 0 {
		t.Errorf("20 Hz should be violet-blue, got %+v", low)
	}
	// 700 nm is in the red band: red only.
	if high.R == 0 || high.G != 0 || high.B != 0 {
		t.Errorf("20 kHz should be pure red, got %+v", high)
	}

	t.Logf("20 Hz -> %+v, 20 kHz -> %+v", low, high)
}

// TestFrequencyToColor_Clamping verifies out-of-range frequencies behave as
// their clamped equivalents.
func TestFrequencyToColor_Clamping(t *testing.T) {
	if got, want := FrequencyToColor(5), FrequencyToColor(20); got != want {
		t.Errorf("5 Hz: got %+v, want clamped %+v", got, want)
	}
	if got, want := FrequencyToColor(1e6), FrequencyToColor(20000); got != want {
		t.Errorf("1 MHz: got %+v, want clamped %+v", got, want)
	}
	if got, want := FrequencyToColor(0), FrequencyToColor(20); got != want {
		t.Errorf("0 Hz: got %+v, want clamped %+v", got, want)
	}
}

// TestFrequencyToColor_Deterministic verifies the mapper is a pure function.
func TestFrequencyToColor_Deterministic(t *testing.T) {
	for _, f := range []float64{20, 261.63, 440, 1000, 4186, 20000} {
		first := FrequencyToColor(f)
		for i := 0; i < 5; i++ {
			if got := FrequencyToColor(f); got != first {
				t.Errorf("%g Hz: call %d returned %+v, first call %+v", f, i, got, first)
			}
		}
	}
}

// TestWavelengthToRGB_BandContinuity checks that colors just below and just
// above each band boundary differ by no more than rounding. A discontinuity
// here would show up as a hard seam in otherwise smooth gradients.
func TestWavelengthToRGB_BandContinuity(t *testing.T) {
	boundaries := []float64{440, 490, 510, 580, 645}
	const eps = 1e-6

	for _, w := range boundaries {
		below := wavelengthToRGB(w - eps)
		above := wavelengthToRGB(w + eps)

		dr := math.Abs(float64(below.R) - float64(above.R))
		dg := math.Abs(float64(below.G) - float64(above.G))
		db := math.Abs(float64(below.B) - float64(above.B))

		if dr > 1 || dg > 1 || db > 1 {
			t.Errorf("discontinuity at %g nm: below=%+v above=%+v", w, below, above)
		}
		t.Logf("%g nm: below=%+v above=%+v", w, below, above)
	}
}

// TestWavelengthToRGB_MonotonicWithinBand verifies that within one linear
// band at least one channel changes monotonically with wavelength.
func TestWavelengthToRGB_MonotonicWithinBand(t *testing.T) {
	// Green ramps up across 440-490 nm.
	prev := -1
	for w := 441.0; w < 489.0; w += 2 {
		g := int(wavelengthToRGB(w).G)
		if g < prev {
			t.Errorf("green channel not monotonic at %g nm: %d < %d", w, g, prev)
		}
		prev = g
	}

	// Red ramps up across 510-580 nm.
	prev = -1
	for w := 511.0; w < 579.0; w += 2 {
		r := int(wavelengthToRGB(w).R)
		if r < prev {
			t.Errorf("red channel not monotonic at %g nm: %d < %d", w, r, prev)
		}
		prev = r
	}
}

// TestWavelengthToRGB_OutOfRange verifies wavelengths outside the visible
// spectrum yield black.
func TestWavelengthToRGB_OutOfRange(t *testing.T) {
	for _, w := range []float64{100, 379.9, 780.1, 1000} {
		if got := wavelengthToRGB(w); got != (RGB{}) {
			t.Errorf("%g nm: got %+v, want black", w, got)
		}
	}
}

// TestWavelengthToRGB_EdgeAttenuation verifies that intensity fades towards
// the visible boundaries in the two edge bands.
func TestWavelengthToRGB_EdgeAttenuation(t *testing.T) {
	// Violet band: 380 nm is dimmer than 439 nm in blue.
	if edge, inner := wavelengthToRGB(380), wavelengthToRGB(439); edge.B >= inner.B {
		t.Errorf("no attenuation at violet edge: 380nm B=%d, 439nm B=%d", edge.B, inner.B)
	}
	// Red band: 780 nm is dimmer than 646 nm in red.
	if edge, inner := wavelengthToRGB(780), wavelengthToRGB(646); edge.R >= inner.R {
		t.Errorf("no attenuation at red edge: 780nm R=%d, 646nm R=%d", edge.R, inner.R)
	}
}
