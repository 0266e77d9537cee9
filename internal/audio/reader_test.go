package audio

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV writes a 16-bit PCM WAV with the given interleaved samples.
func writeTestWAV(t *testing.T, path string, sampleRate, channels int, data []int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("writing WAV data: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
}

// sineInt16 renders a sine tone as 16-bit integer samples.
func sineInt16(freq float64, sampleRate, frames int) []int {
	data := make([]int, frames)
	for i := range data {
		data[i] = int(16000 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return data
}

func TestLoadWaveform_Mono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	const (
		sampleRate = 8000
		frames     = 4000
	)
	writeTestWAV(t, path, sampleRate, 1, sineInt16(440, sampleRate, frames))

	wf, err := LoadWaveform(path)
	if err != nil {
		t.Fatalf("LoadWaveform: %v", err)
	}

	if wf.SampleRate != sampleRate {
		t.Errorf("sample rate %d, want %d", wf.SampleRate, sampleRate)
	}
	if len(wf.Samples) != frames {
		t.Errorf("got %d samples, want %d", len(wf.Samples), frames)
	}
	for i, s := range wf.Samples {
		if s < -1.0 || s > 1.0 {
			t.Fatalf("sample %d out of range: %f", i, s)
		}
	}
	if d := wf.Duration(); math.Abs(d-0.5) > 1e-9 {
		t.Errorf("duration %f, want 0.5", d)
	}
}

// TestLoadWaveform_StereoMixdown verifies stereo input comes back as mono
// with channels averaged: +v on the left and -v on the right cancel out.
func TestLoadWaveform_StereoMixdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	const (
		sampleRate = 8000
		frames     = 1000
	)

	data := make([]int, frames*2)
	for i := 0; i < frames; i++ {
		data[i*2] = 12000
		data[i*2+1] = -12000
	}
	writeTestWAV(t, path, sampleRate, 2, data)

	wf, err := LoadWaveform(path)
	if err != nil {
		t.Fatalf("LoadWaveform: %v", err)
	}

	if len(wf.Samples) != frames {
		t.Fatalf("got %d samples, want %d mono frames", len(wf.Samples), frames)
	}
	for i, s := range wf.Samples {
		if math.Abs(s) > 1e-9 {
			t.Fatalf("sample %d: %f, want 0 after mixdown", i, s)
		}
	}
}

func TestOpen_Dispatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTestWAV(t, path, 8000, 1, sineInt16(440, 8000, 800))

	dec, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer dec.Close()

	if _, ok := dec.(*WAVDecoder); !ok {
		t.Errorf("got %T, want *WAVDecoder", dec)
	}
	if dec.NumChannels() != 1 {
		t.Errorf("channels %d, want 1", dec.NumChannels())
	}

	chunk, err := dec.ReadChunk(256)
	if err != nil {
		t.Fatalf("ReadChunk: %v", err)
	}
	if len(chunk) != 256 {
		t.Errorf("chunk length %d, want 256", len(chunk))
	}
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	if _, err := Open("song.ogg"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWAVDecoder_ReadUntilEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	const frames = 1000
	writeTestWAV(t, path, 8000, 1, sineInt16(440, 8000, frames))

	dec, err := NewWAVDecoder(path)
	if err != nil {
		t.Fatalf("NewWAVDecoder: %v", err)
	}
	defer dec.Close()

	total := 0
	for {
		chunk, err := dec.ReadChunk(300)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadChunk: %v", err)
		}
		total += len(chunk)
	}
	if total != frames {
		t.Errorf("read %d samples, want %d", total, frames)
	}
}
