package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/camnoval/audioVisualization/internal/pipeline"
)

// Spectrum colour palette 🎨
var (
	spectrumViolet = lipgloss.Color("#7B2FBE") // Violet
	spectrumBlue   = lipgloss.Color("#2E64FE") // Blue
	spectrumGreen  = lipgloss.Color("#2ECC40") // Green
	spectrumAmber  = lipgloss.Color("#FFB000") // Amber
	spectrumRed    = lipgloss.Color("#E8262D") // Red

	// Accent colours
	coolGray = lipgloss.Color("#8A8A9E") // Muted slate for subtle text
)

// trackState tracks where each title sits in the batch.
type trackState int

const (
	trackPending trackState = iota
	trackDone
	trackFallback
	trackFailed
)

// BatchComplete signals that the whole run finished, carrying the final
// output for the completion screen.
type BatchComplete struct {
	Output  *pipeline.Output
	Elapsed time.Duration
}

// quitTimerMsg is sent when it's time to quit after showing completion
type quitTimerMsg struct{}

// Model implements the Bubbletea model for batch progress
type Model struct {
	progressBar progress.Model

	titles  []string
	states  []trackState
	reasons []string
	done    int

	complete *BatchComplete

	startTime       time.Time
	completionDelay time.Duration
	width           int
	quitting        bool
}

// NewModel creates a progress UI model for the given track titles.
func NewModel(titles []string) *Model {
	// Spectrum gradient: violet → red, matching the strip colours
	p := progress.New(
		progress.WithGradient(string(spectrumViolet), string(spectrumRed)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		titles:          titles,
		states:          make([]trackState, len(titles)),
		reasons:         make([]string, len(titles)),
		startTime:       time.Now(),
		completionDelay: 2 * time.Second,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = min(msg.Width-30, 50)
		return m, nil

	case pipeline.Event:
		if msg.Index < 0 || msg.Index >= len(m.states) {
			return m, nil
		}
		switch {
		case msg.Err != nil:
			m.states[msg.Index] = trackFailed
			m.reasons[msg.Index] = msg.Err.Error()
		case msg.Fallback:
			m.states[msg.Index] = trackFallback
		default:
			m.states[msg.Index] = trackDone
		}
		m.done++
		return m, nil

	case BatchComplete:
		m.complete = &msg
		m.quitting = true

		return m, tea.Tick(m.completionDelay, func(t time.Time) tea.Msg {
			return quitTimerMsg{}
		})

	case quitTimerMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.complete != nil {
		return m.renderComplete()
	}
	return m.renderProgress()
}

// CompletionSummary returns the final summary for printing after the alt
// screen exits. Returns empty string if the run is not complete.
func (m *Model) CompletionSummary() string {
	if m.complete == nil {
		return ""
	}
	return m.renderComplete()
}

func (m *Model) renderProgress() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(spectrumViolet).
		Render("Albumstrip 🎨")

	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(spectrumBlue).Render("Analysing Tracks"))
	s.WriteString("\n\n")

	percent := 0.0
	if len(m.titles) > 0 {
		percent = float64(m.done) / float64(len(m.titles))
	}
	s.WriteString("Progress: ")
	s.WriteString(m.progressBar.ViewAs(percent))
	s.WriteString(fmt.Sprintf("  %d/%d", m.done, len(m.titles)))
	s.WriteString("\n\n")

	elapsed := time.Since(m.startTime)
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("Elapsed: %s", formatDuration(elapsed))))
	s.WriteString("\n\n")

	m.renderTrackList(&s)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(spectrumViolet).
		Padding(1, 2).
		Render(s.String())
}

func (m *Model) renderTrackList(s *strings.Builder) {
	pendingStyle := lipgloss.NewStyle().Foreground(coolGray)
	doneStyle := lipgloss.NewStyle().Foreground(spectrumGreen)
	fallbackStyle := lipgloss.NewStyle().Foreground(spectrumAmber)
	failedStyle := lipgloss.NewStyle().Foreground(spectrumRed)

	for i, title := range m.titles {
		switch m.states[i] {
		case trackDone:
			s.WriteString(doneStyle.Render("✓ "))
			s.WriteString(title)
		case trackFallback:
			s.WriteString(fallbackStyle.Render("⚠ "))
			s.WriteString(title)
			s.WriteString(fallbackStyle.Render("  (fallback)"))
		case trackFailed:
			s.WriteString(failedStyle.Render("✗ "))
			s.WriteString(title)
		default:
			s.WriteString(pendingStyle.Render("· " + title))
		}
		s.WriteString("\n")
	}
}

func (m *Model) renderComplete() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(spectrumGreen).
		Render("✓ Album Complete!")

	s.WriteString(title)
	s.WriteString("\n\n")

	dimLabel := lipgloss.NewStyle().Faint(true)
	out := m.complete.Output

	analyzed, fallbacks, failed := 0, 0, 0
	for i := range m.states {
		switch m.states[i] {
		case trackFallback:
			fallbacks++
		case trackFailed:
			failed++
		default:
			analyzed++
		}
	}

	s.WriteString(fmt.Sprintf("%s%d analysed", dimLabel.Render("Tracks:    "), analyzed))
	if fallbacks > 0 {
		s.WriteString(fmt.Sprintf(", %d fallback", fallbacks))
	}
	if failed > 0 {
		s.WriteString(fmt.Sprintf(", %d failed", failed))
	}
	s.WriteString("\n")

	if out.CompositePath != "" {
		s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Composite: "), out.CompositePath))
	} else if out.CompositeErr != nil {
		s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Composite: "), out.CompositeErr.Error()))
	}
	s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Time:      "), formatDuration(m.complete.Elapsed)))

	// Per-track reasons for anything that needed the fallback sequence
	if fallbacks > 0 || failed > 0 {
		s.WriteString("\n")
		warnStyle := lipgloss.NewStyle().Foreground(spectrumAmber)
		failStyle := lipgloss.NewStyle().Foreground(spectrumRed)
		for i, title := range m.titles {
			switch m.states[i] {
			case trackFallback:
				s.WriteString(warnStyle.Render("⚠ " + title))
				s.WriteString("\n")
			case trackFailed:
				s.WriteString(failStyle.Render("✗ " + title + ": " + m.reasons[i]))
				s.WriteString("\n")
			}
		}
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(spectrumGreen).
		Padding(1, 1).
		Render(s.String()) + "\n"
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
