package spectral

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrInvalidConfig is returned when analysis parameters cannot produce a
// valid segmentation (non-positive segment size). Callers must not retry
// with the same parameters.
var ErrInvalidConfig = errors.New("invalid analysis configuration")

// ApplyHann applies a Hann window to the input samples, suppressing
// spectral leakage at segment edges. The input is not modified.
func ApplyHann(data []float64) []float64 {
	windowed := make([]float64, len(data))
	n := len(data)
	if n == 1 {
		windowed[0] = data[0]
		return windowed
	}
	for i := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = data[i] * w
	}
	return windowed
}

// Analyzer extracts the dominant frequency of fixed-size segments using a
// real-valued FFT. The FFT plan is sized once and reused across segments.
type Analyzer struct {
	fft            *fourier.FFT
	segmentSamples int
	sampleRate     int
}

// NewAnalyzer creates an analyzer for the given sample rate and segment
// duration in seconds. Fails with ErrInvalidConfig when the resulting
// segment size is not positive.
func NewAnalyzer(sampleRate int, segmentDuration float64) (*Analyzer, error) {
	segmentSamples := int(segmentDuration * float64(sampleRate))
	if segmentSamples <= 0 {
		return nil, fmt.Errorf("%w: segment duration %gs at %d Hz yields %d samples",
			ErrInvalidConfig, segmentDuration, sampleRate, segmentSamples)
	}
	return &Analyzer{
		fft:            fourier.NewFFT(segmentSamples),
		segmentSamples: segmentSamples,
		sampleRate:     sampleRate,
	}, nil
}

// SegmentSamples returns the number of samples per segment.
func (a *Analyzer) SegmentSamples() int {
	return a.segmentSamples
}

// DominantFrequency returns the frequency in Hz of the maximum-magnitude
// FFT bin of one windowed segment. The DC bin participates; ties go to the
// lowest bin index. The segment must be exactly SegmentSamples long.
func (a *Analyzer) DominantFrequency(segment []float64) float64 {
	coeffs := a.fft.Coefficients(nil, ApplyHann(segment))

	maxIdx := 0
	maxMag := 0.0
	for i, c := range coeffs {
		mag := cmplx.Abs(c)
		if mag > maxMag {
			maxMag = mag
			maxIdx = i
		}
	}

	return float64(maxIdx) * float64(a.sampleRate) / float64(a.segmentSamples)
}

// Analyze splits a mono waveform into contiguous fixed-duration segments,
// extracts each segment's dominant frequency, and maps it to a color. The
// trailing partial segment is dropped. A waveform shorter than one segment
// yields an empty sequence, not an error. Multi-channel audio must be mixed
// down to mono by the caller first.
func Analyze(samples []float64, sampleRate int, segmentDuration float64, maxSegments int) (Sequence, error) {
	analyzer, err := NewAnalyzer(sampleRate, segmentDuration)
	if err != nil {
		return nil, err
	}

	segmentSamples := analyzer.segmentSamples
	numSegments := len(samples) / segmentSamples
	if maxSegments < numSegments {
		numSegments = maxSegments
	}
	if numSegments <= 0 {
		return Sequence{}, nil
	}

	colors := make(Sequence, 0, numSegments)
	for i := 0; i < numSegments; i++ {
		segment := samples[i*segmentSamples : (i+1)*segmentSamples]
		freq := analyzer.DominantFrequency(segment)
		colors = append(colors, FrequencyToColor(freq))
	}
	return colors, nil
}
