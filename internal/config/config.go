package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/camnoval/audioVisualization/internal/spectral"
)

//go:embed sample_config.toml
var sampleConfig string

// ErrInvalidConfig is returned when options cannot drive the pipeline.
var ErrInvalidConfig = errors.New("invalid configuration")

// Options carries every tunable the pipeline needs, passed by value into
// the entry point. There is no global or environment-variable coupling.
type Options struct {
	// SegmentDuration is the analysis window in seconds.
	SegmentDuration float64 `toml:"segment_duration"`
	// MaxSegments caps the number of analyzed segments per track, which
	// also caps strip width in pixels.
	MaxSegments int `toml:"max_segments"`
	// StripHeight is the gradient strip height in pixels.
	StripHeight int `toml:"strip_height"`
	// Margin is the vertical gap between strips in the composite.
	Margin int `toml:"margin"`
	// Border pads all four sides of the composite.
	Border int `toml:"border"`
	// Background, when exactly three values [R, G, B], overrides
	// dominant-color detection.
	Background []int `toml:"background"`
	// AlbumTitle is rendered in the composite's title band when set.
	AlbumTitle string `toml:"album_title"`
	// FontName is the preferred label font, resolved best-effort.
	FontName string `toml:"font"`
	// OutputDir receives per-track and composite PNGs.
	OutputDir string `toml:"output_dir"`
	// Workers bounds the per-track worker pool; 0 means NumCPU.
	Workers int `toml:"workers"`
}

// Default returns the options the original pipeline shipped with: 50 ms
// segments, at most 1000 of them, 200 px strips.
func Default() Options {
	return Options{
		SegmentDuration: 0.05,
		MaxSegments:     1000,
		StripHeight:     200,
		Margin:          5,
		Border:          10,
		OutputDir:       ".",
	}
}

// Load reads a TOML options file over the defaults.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return opts, nil
}

// SampleConfig returns an annotated example configuration file.
func SampleConfig() string {
	return sampleConfig
}

// Validate rejects option combinations the pipeline cannot run with.
func (o Options) Validate() error {
	if o.SegmentDuration <= 0 {
		return fmt.Errorf("%w: segment duration must be positive, got %g", ErrInvalidConfig, o.SegmentDuration)
	}
	if o.MaxSegments <= 0 {
		return fmt.Errorf("%w: max segments must be positive, got %d", ErrInvalidConfig, o.MaxSegments)
	}
	if o.StripHeight <= 0 {
		return fmt.Errorf("%w: strip height must be positive, got %d", ErrInvalidConfig, o.StripHeight)
	}
	if o.Margin < 0 || o.Border < 0 {
		return fmt.Errorf("%w: margin and border must be non-negative", ErrInvalidConfig)
	}
	if len(o.Background) != 0 && len(o.Background) != 3 {
		return fmt.Errorf("%w: background must be [R, G, B], got %d values", ErrInvalidConfig, len(o.Background))
	}
	for _, v := range o.Background {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: background channel %d out of range [0, 255]", ErrInvalidConfig, v)
		}
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, o.Workers)
	}
	return nil
}

// BackgroundRGB returns the background override, or nil when detection
// should run.
func (o Options) BackgroundRGB() *spectral.RGB {
	if len(o.Background) != 3 {
		return nil
	}
	return &spectral.RGB{
		R: uint8(o.Background[0]),
		G: uint8(o.Background[1]),
		B: uint8(o.Background[2]),
	}
}

// WorkerCount resolves the effective pool size.
func (o Options) WorkerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}
