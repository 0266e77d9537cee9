package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/camnoval/audioVisualization/internal/cli"
	"github.com/camnoval/audioVisualization/internal/config"
	"github.com/camnoval/audioVisualization/internal/pipeline"
	"github.com/camnoval/audioVisualization/internal/render"
	"github.com/camnoval/audioVisualization/internal/spectral"
	"github.com/camnoval/audioVisualization/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Tracks []string `arg:"" name:"tracks" help:"Audio files in album order (WAV, MP3 or FLAC)" optional:"" type:"existingfile"`

	Title        string  `help:"Album title drawn above the strips"`
	Output       string  `short:"o" help:"Directory for the generated PNGs" default:"."`
	Config       string  `help:"TOML configuration file" placeholder:"FILE"`
	Segment      float64 `help:"Analysis window in seconds" default:"0.05"`
	MaxSegments  int     `help:"Upper bound on analysed windows per track" default:"1000"`
	Height       int     `help:"Gradient strip height in pixels" default:"200"`
	Margin       int     `help:"Vertical gap between strips" default:"5"`
	Border       int     `help:"Padding around the combined image" default:"10"`
	Background   string  `help:"Fixed background colour as R,G,B (default: dominant strip colour)" placeholder:"R,G,B"`
	Font         string  `help:"Preferred label font, matched against installed TrueType files"`
	Workers      int     `help:"Parallel track workers (0 = CPU count)" default:"0"`
	SampleConfig bool    `help:"Print a sample configuration file and exit"`
	NoTUI        bool    `help:"Disable the progress UI, print plain output"`
	Verbose      bool    `help:"Verbose logging (implies --no-tui)"`
	Version      bool    `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("albumstrip"),
		kong.Description("Paint your music as strips of visible spectrum, one album per image."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}
	if CLI.SampleConfig {
		fmt.Print(config.SampleConfig())
		os.Exit(0)
	}

	if len(CLI.Tracks) == 0 {
		cli.PrintError("at least one track is required")
		os.Exit(1)
	}

	opts, err := buildOptions()
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	tracks := make([]pipeline.Track, len(CLI.Tracks))
	for i, path := range CLI.Tracks {
		base := filepath.Base(path)
		title := strings.TrimSuffix(base, filepath.Ext(base))
		tracks[i] = pipeline.Track{Title: render.CleanTitle(title), Path: path}
	}

	if CLI.NoTUI || CLI.Verbose {
		runPlain(opts, tracks)
		return
	}
	runTUI(opts, tracks)
}

// buildOptions layers command-line flags over the config file (when given)
// over the defaults. Flags left at their default value do not override a
// config file setting.
func buildOptions() (config.Options, error) {
	opts := config.Default()
	if CLI.Config != "" {
		loaded, err := config.Load(CLI.Config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	defaults := config.Default()
	if CLI.Segment != defaults.SegmentDuration {
		opts.SegmentDuration = CLI.Segment
	}
	if CLI.MaxSegments != defaults.MaxSegments {
		opts.MaxSegments = CLI.MaxSegments
	}
	if CLI.Height != defaults.StripHeight {
		opts.StripHeight = CLI.Height
	}
	if CLI.Margin != defaults.Margin {
		opts.Margin = CLI.Margin
	}
	if CLI.Border != defaults.Border {
		opts.Border = CLI.Border
	}
	if CLI.Output != defaults.OutputDir {
		opts.OutputDir = CLI.Output
	}
	if CLI.Title != "" {
		opts.AlbumTitle = CLI.Title
	}
	if CLI.Font != "" {
		opts.FontName = CLI.Font
	}
	if CLI.Workers != 0 {
		opts.Workers = CLI.Workers
	}
	if CLI.Background != "" {
		bg, err := parseBackground(CLI.Background)
		if err != nil {
			return opts, err
		}
		opts.Background = bg
	}

	return opts, opts.Validate()
}

// parseBackground parses "R,G,B" with each channel in 0-255.
func parseBackground(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("background must be R,G,B, got %q", s)
	}
	rgb := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("background channel %q must be an integer in 0-255", part)
		}
		rgb[i] = v
	}
	return rgb, nil
}

func runPlain(opts config.Options, tracks []pipeline.Track) {
	cli.PrintBanner()

	log := zap.NewNop()
	if CLI.Verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			cli.PrintError(fmt.Sprintf("creating logger: %v", err))
			os.Exit(1)
		}
		defer log.Sync()
	}

	p := pipeline.New(opts, nil, log)
	p.OnProgress = func(e pipeline.Event) {
		switch {
		case e.Err != nil:
			cli.PrintError(fmt.Sprintf("%s: %v", e.Title, e.Err))
		case e.Fallback:
			cli.PrintWarning(fmt.Sprintf("%s (fallback sequence)", e.Title))
		default:
			cli.PrintSuccess(e.Title)
		}
	}

	start := time.Now()
	out, err := p.Run(context.Background(), tracks)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	printSummary(out, time.Since(start))
	if hasFailure(out) {
		os.Exit(1)
	}
}

func runTUI(opts config.Options, tracks []pipeline.Track) {
	titles := make([]string, len(tracks))
	for i, tr := range tracks {
		titles[i] = tr.Title
	}

	model := ui.NewModel(titles)
	prog := tea.NewProgram(model)

	p := pipeline.New(opts, nil, zap.NewNop())
	p.OnProgress = func(e pipeline.Event) {
		prog.Send(e)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out *pipeline.Output
	var runErr error
	done := make(chan struct{})
	start := time.Now()

	go func() {
		defer close(done)
		out, runErr = p.Run(ctx, tracks)
		if runErr != nil {
			prog.Quit()
			return
		}
		prog.Send(ui.BatchComplete{Output: out, Elapsed: time.Since(start)})
	}()

	_, teaErr := prog.Run()

	// On an early quit (ctrl+c) the pipeline is still running: cancel so
	// unstarted tracks are skipped, then wait for the goroutine before
	// touching out/runErr.
	cancel()
	<-done

	if teaErr != nil {
		cli.PrintError(fmt.Sprintf("running UI: %v", teaErr))
		os.Exit(1)
	}

	if runErr != nil {
		cli.PrintError(runErr.Error())
		os.Exit(1)
	}
	if out != nil && hasFailure(out) {
		os.Exit(1)
	}
}

func printSummary(out *pipeline.Output, elapsed time.Duration) {
	fmt.Println()
	cli.PrintSection("Results")
	for _, r := range out.Tracks {
		if r.Path != "" {
			cli.PrintInfo(r.Title, r.Path)
		}
	}
	cli.PrintInfo("Time", cli.FormatDuration(elapsed))

	if out.CompositePath != "" {
		cli.PrintBox(cli.SuccessStyle.Render("✓ Album composite") + "\n" + out.CompositePath)
	} else if out.CompositeErr != nil {
		cli.PrintWarning(fmt.Sprintf("no composite: %v", out.CompositeErr))
	}

	// Fallback strips are tagged, never silent; surface them once more at
	// the end so they aren't lost in scrollback.
	if titles := fallbackTitles(out); len(titles) > 0 {
		cli.PrintWarning(fmt.Sprintf("fallback sequence used for: %s", strings.Join(titles, ", ")))
	}
}

func hasFailure(out *pipeline.Output) bool {
	for _, r := range out.Tracks {
		if r.Err != nil {
			return true
		}
	}
	return false
}

func fallbackTitles(out *pipeline.Output) []string {
	var titles []string
	for _, r := range out.Tracks {
		if r.Result.Source == spectral.SourceFallback {
			titles = append(titles, r.Title)
		}
	}
	return titles
}
