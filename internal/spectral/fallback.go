package spectral

import "math"

// FallbackLength is the number of colors in a synthetic fallback sequence.
const FallbackLength = 1000

// Source tags where a color sequence came from.
type Source int

const (
	// SourceAnalyzed marks a sequence produced by real FFT analysis.
	SourceAnalyzed Source = iota
	// SourceFallback marks a synthetic substitute sequence used when the
	// track's audio could not be decoded or analyzed.
	SourceFallback
)

func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "analyzed"
}

// Result is a color sequence together with its provenance. Fallback results
// carry the reason the real analysis was not possible.
type Result struct {
	Colors Sequence
	Source Source
	Reason string
}

// Fallback returns a deterministic smooth color cycle of n samples. It
// stands in for real analysis when decoding fails, so the pipeline still
// produces a visually distinct strip instead of aborting the batch.
func Fallback(n int) Sequence {
	colors := make(Sequence, n)
	for i := range colors {
		colors[i] = RGB{
			R: uint8(127 + 127*math.Sin(float64(i)/20)),
			G: uint8(127 + 127*math.Sin(float64(i+100)/20)),
			B: uint8(127 + 127*math.Sin(float64(i+200)/20)),
		}
	}
	return colors
}
