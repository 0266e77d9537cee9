// Package pipeline turns a list of audio tracks into labeled gradient
// strips and one combined album image. Tracks are processed concurrently;
// output order always follows input order.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/camnoval/audioVisualization/internal/audio"
	"github.com/camnoval/audioVisualization/internal/config"
	"github.com/camnoval/audioVisualization/internal/render"
	"github.com/camnoval/audioVisualization/internal/spectral"
)

// Track is one unit of work: a human-readable title and an audio file path.
type Track struct {
	Title string
	Path  string
}

// Event reports per-track completion to an observer (the progress TUI).
type Event struct {
	Index    int
	Total    int
	Title    string
	Fallback bool
	Err      error
}

// TrackResult is the outcome for one track. Image is nil when the track
// produced no full segments or failed outright.
type TrackResult struct {
	Index  int
	Title  string
	Result spectral.Result
	Image  *image.RGBA
	Path   string
	Err    error
}

// Output collects everything a run produced. Composition failures are
// recorded here rather than aborting the run, so per-track images survive
// a failed composite.
type Output struct {
	Tracks        []TrackResult
	Composite     *image.RGBA
	CompositePath string
	CompositeErr  error
}

// Pipeline runs the analysis and rendering stages over a track list.
type Pipeline struct {
	opts  config.Options
	fonts render.FontProvider
	log   *zap.Logger

	// OnProgress, when set, is called once per finished track. It may be
	// called from multiple goroutines.
	OnProgress func(Event)
}

// New creates a pipeline. A nil logger disables logging; a nil font
// provider uses the default chain.
func New(opts config.Options, fonts render.FontProvider, log *zap.Logger) *Pipeline {
	if fonts == nil {
		fonts = render.DefaultFonts()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{opts: opts, fonts: fonts, log: log}
}

// Run processes all tracks with a bounded worker pool and composes the
// results. Per-track failures are isolated into their TrackResult. The
// context is honored between tracks only; a running segment analysis is
// never interrupted.
func (p *Pipeline) Run(ctx context.Context, tracks []Track) (*Output, error) {
	if err := p.opts.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	results := make([]TrackResult, len(tracks))

	workers := p.opts.WorkerCount()
	if workers > len(tracks) {
		workers = len(tracks)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.processTrack(i, tracks[i])
				if p.OnProgress != nil {
					p.OnProgress(Event{
						Index:    i,
						Total:    len(tracks),
						Title:    tracks[i].Title,
						Fallback: results[i].Result.Source == spectral.SourceFallback,
						Err:      results[i].Err,
					})
				}
			}
		}()
	}

	for i := range tracks {
		if err := ctx.Err(); err != nil {
			results[i] = TrackResult{Index: i, Title: tracks[i].Title, Err: err}
			continue
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := &Output{Tracks: results}
	p.compose(out)
	return out, nil
}

func (p *Pipeline) processTrack(index int, track Track) TrackResult {
	log := p.log.With(zap.Int("track", index+1), zap.String("title", track.Title))
	result := TrackResult{Index: index, Title: track.Title}

	wf, err := audio.LoadWaveform(track.Path)
	if err != nil {
		// Decode failure substitutes a synthetic sequence so the batch
		// still yields an artifact for this track. Never silent.
		log.Warn("audio decode failed, substituting fallback sequence", zap.Error(err))
		result.Result = spectral.Result{
			Colors: spectral.Fallback(spectral.FallbackLength),
			Source: spectral.SourceFallback,
			Reason: err.Error(),
		}
	} else {
		colors, err := spectral.Analyze(wf.Samples, wf.SampleRate, p.opts.SegmentDuration, p.opts.MaxSegments)
		if err != nil {
			result.Err = fmt.Errorf("analyzing %s: %w", track.Path, err)
			return result
		}
		log.Debug("analyzed track",
			zap.Int("segments", len(colors)),
			zap.Float64("duration_sec", wf.Duration()))
		result.Result = spectral.Result{Colors: colors, Source: spectral.SourceAnalyzed}
	}

	if len(result.Result.Colors) == 0 {
		log.Warn("no full segments, skipping strip")
		return result
	}

	strip, err := render.Rasterize(result.Result.Colors, p.opts.StripHeight)
	if err != nil {
		result.Err = fmt.Errorf("rasterizing %s: %w", track.Title, err)
		return result
	}
	render.Label(strip, track.Title, p.fonts, p.opts.FontName)
	result.Image = strip

	path := filepath.Join(p.opts.OutputDir,
		fmt.Sprintf("%02d_%s.png", index+1, SanitizeFilename(track.Title)))
	if err := savePNG(path, strip); err != nil {
		result.Err = err
		return result
	}
	result.Path = path
	return result
}

// compose stacks all successful strips, records the outcome on out, and
// writes the combined PNG.
func (p *Pipeline) compose(out *Output) {
	var images []*image.RGBA
	for _, r := range out.Tracks {
		if r.Image != nil {
			images = append(images, r.Image)
		}
	}

	composite, err := render.Compose(images, render.CompositeOptions{
		AlbumTitle: p.opts.AlbumTitle,
		Background: p.opts.BackgroundRGB(),
		Margin:     p.opts.Margin,
		Border:     p.opts.Border,
		FontName:   p.opts.FontName,
	}, p.fonts)
	if err != nil {
		p.log.Warn("composition skipped", zap.Error(err))
		out.CompositeErr = err
		return
	}
	out.Composite = composite

	name := "album_visualization.png"
	if p.opts.AlbumTitle != "" {
		name = SanitizeFilename(render.CleanTitle(p.opts.AlbumTitle)) + "_visualization.png"
	}
	path := filepath.Join(p.opts.OutputDir, name)
	if err := savePNG(path, composite); err != nil {
		out.CompositeErr = err
		return
	}
	out.CompositePath = path
}

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename removes characters that are not portable in filenames.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "")
}

func savePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
