package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACDecoder implements Decoder for FLAC files.
type FLACDecoder struct {
	stream      *flac.Stream
	file        *os.File
	sampleRate  int
	numChannels int

	// Samples decoded from the current frame but not yet handed out.
	pending []float64
}

// NewFLACDecoder opens a FLAC file for chunked decoding. Stream parameters
// come from the StreamInfo metadata block.
func NewFLACDecoder(filename string) (*FLACDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating FLAC decoder: %w", err)
	}

	return &FLACDecoder{
		stream:      stream,
		file:        f,
		sampleRate:  int(stream.Info.SampleRate),
		numChannels: int(stream.Info.NChannels),
	}, nil
}

// ReadChunk reads up to numSamples mono samples, decoding FLAC frames as
// needed and averaging subframes (one per channel) down to mono.
func (d *FLACDecoder) ReadChunk(numSamples int) ([]float64, error) {
	samples := make([]float64, 0, numSamples)

	for len(samples) < numSamples {
		if len(d.pending) == 0 {
			frame, err := d.stream.ParseNext()
			if err != nil {
				if err == io.EOF {
					if len(samples) == 0 {
						return nil, io.EOF
					}
					return samples, nil
				}
				return nil, fmt.Errorf("parsing FLAC frame: %w", err)
			}

			// FLAC caps bit depth at 32; normalize against the frame's
			// actual sample width.
			maxVal := float64(int64(1) << (frame.BitsPerSample - 1))
			frameLen := len(frame.Subframes[0].Samples)
			d.pending = make([]float64, 0, frameLen)

			for i := 0; i < frameLen; i++ {
				var sum float64
				for _, sub := range frame.Subframes {
					sum += float64(sub.Samples[i])
				}
				d.pending = append(d.pending, sum/float64(len(frame.Subframes))/maxVal)
			}
		}

		take := numSamples - len(samples)
		if take > len(d.pending) {
			take = len(d.pending)
		}
		samples = append(samples, d.pending[:take]...)
		d.pending = d.pending[take:]
	}

	return samples, nil
}

// SampleRate returns the sample rate in Hz.
func (d *FLACDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the source channel count.
func (d *FLACDecoder) NumChannels() int {
	return d.numChannels
}

// Close closes the stream and the underlying file.
func (d *FLACDecoder) Close() error {
	if d.stream != nil {
		d.stream.Close()
	}
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
