package audio

// Decoder is the interface all audio format decoders implement. Decoders
// hand back mono float64 samples normalized to [-1, 1]; multi-channel
// sources are mixed down by averaging channels, so downstream spectral
// analysis only ever sees one channel.
type Decoder interface {
	// ReadChunk reads up to numSamples mono samples. Returns io.EOF once
	// the stream is exhausted.
	ReadChunk(numSamples int) ([]float64, error)

	// SampleRate returns the audio sample rate in Hz.
	SampleRate() int

	// NumChannels returns the channel count of the source before mixdown.
	NumChannels() int

	// Close releases the underlying file.
	Close() error
}
