package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder implements Decoder for MP3 files.
type MP3Decoder struct {
	decoder    *mp3.Decoder
	file       *os.File
	sampleRate int
}

// NewMP3Decoder opens an MP3 file for chunked decoding.
func NewMP3Decoder(filename string) (*MP3Decoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating MP3 decoder: %w", err)
	}

	return &MP3Decoder{
		decoder:    decoder,
		file:       f,
		sampleRate: decoder.SampleRate(),
	}, nil
}

// ReadChunk reads up to numSamples mono samples. go-mp3 always emits
// interleaved 16-bit stereo frames (L0 R0 L1 R1 ...), 4 bytes per time
// position, which are averaged down to mono here.
func (d *MP3Decoder) ReadChunk(numSamples int) ([]float64, error) {
	buf := make([]byte, numSamples*4)

	n, err := d.decoder.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading MP3 data: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	numFrames := n / 4
	samples := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		left := float64(int16(buf[i*4])|int16(buf[i*4+1])<<8) / 32768.0
		right := float64(int16(buf[i*4+2])|int16(buf[i*4+3])<<8) / 32768.0
		samples[i] = (left + right) / 2.0
	}
	return samples, nil
}

// SampleRate returns the sample rate in Hz.
func (d *MP3Decoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns 2; go-mp3 always decodes to stereo.
func (d *MP3Decoder) NumChannels() int {
	return 2
}

// Close closes the underlying file.
func (d *MP3Decoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
