package spectral

import "math"

// Audible frequency range used for clamping before color mapping.
const (
	MinFrequency = 20.0
	MaxFrequency = 20000.0
)

// RGB is a single color sample with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Sequence is a time-ordered series of color samples, one per analyzed
// segment. Index order is the time axis.
type Sequence []RGB

// FrequencyToColor maps a frequency in Hz to a color on the visible
// spectrum. The frequency is clamped to the audible range, positioned on a
// log10 scale, rescaled to a pseudo-wavelength in 400-700 nm, and converted
// to RGB. Pure and deterministic: every finite input yields the same color.
func FrequencyToColor(f float64) RGB {
	f = math.Min(math.Max(f, MinFrequency), MaxFrequency)

	x := math.Log10(f)
	xMin := math.Log10(MinFrequency)
	xMax := math.Log10(MaxFrequency)

	// Rescale log position into [4.0, 7.0]; x100 gives 400-700 nm.
	mapped := 4.0 + (x-xMin)/(xMax-xMin)*3.0
	return wavelengthToRGB(mapped * 100)
}

// wavelengthToRGB converts a wavelength in nanometres to RGB using a
// piecewise-linear approximation of the visible spectrum with gamma
// correction. The two edge bands fade towards the visible boundaries.
// Wavelengths outside 380-780 nm are black.
func wavelengthToRGB(wavelength float64) RGB {
	const gamma = 0.8
	var r, g, b float64

	switch {
	case wavelength >= 380 && wavelength < 440:
		attenuation := 0.3 + 0.7*(wavelength-380)/(440-380)
		r = math.Pow(-(wavelength-440)/(440-380)*attenuation, gamma)
		g = 0.0
		b = math.Pow(1.0*attenuation, gamma)
	case wavelength >= 440 && wavelength < 490:
		r = 0.0
		g = math.Pow((wavelength-440)/(490-440), gamma)
		b = 1.0
	case wavelength >= 490 && wavelength < 510:
		r = 0.0
		g = 1.0
		b = math.Pow(-(wavelength-510)/(510-490), gamma)
	case wavelength >= 510 && wavelength < 580:
		r = math.Pow((wavelength-510)/(580-510), gamma)
		g = 1.0
		b = 0.0
	case wavelength >= 580 && wavelength < 645:
		r = 1.0
		g = math.Pow(-(wavelength-645)/(645-580), gamma)
		b = 0.0
	case wavelength >= 645 && wavelength <= 780:
		attenuation := 0.3 + 0.7*(780-wavelength)/(780-645)
		r = math.Pow(1.0*attenuation, gamma)
		g = 0.0
		b = 0.0
	default:
		return RGB{}
	}

	// Truncating conversion, matching the 0-255 channel contract.
	return RGB{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
	}
}
