package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Waveform is a decoded mono audio signal: samples normalized to [-1, 1]
// plus the source sample rate.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the waveform length in seconds.
func (w *Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Open creates a decoder for the given audio file based on its extension.
// Supported formats: WAV, MP3, FLAC.
func Open(filename string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return NewWAVDecoder(filename)
	case ".mp3":
		return NewMP3Decoder(filename)
	case ".flac":
		return NewFLACDecoder(filename)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filename)
	}
}

// readChunkSize is the per-call decode size used when slurping whole files.
const readChunkSize = 65536

// LoadWaveform decodes an entire audio file into a mono waveform. The
// result satisfies the analyzer's precondition: one channel, normalized
// samples, positive sample rate.
func LoadWaveform(filename string) (*Waveform, error) {
	dec, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	if dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("non-positive sample rate in %s", filename)
	}

	var samples []float64
	for {
		chunk, err := dec.ReadChunk(readChunkSize)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("decoding %s: %w", filename, err)
		}
		samples = append(samples, chunk...)
	}

	return &Waveform{Samples: samples, SampleRate: dec.SampleRate()}, nil
}
