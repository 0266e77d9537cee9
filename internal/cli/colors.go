package cli

import "github.com/charmbracelet/lipgloss"

// Spectrum colour palette 🎨
// Shared visible-spectrum colours for consistent branding across CLI and TUI
var (
	// Core spectrum colours (short to long wavelength)
	SpectrumViolet = lipgloss.Color("#7B2FBE") // Violet
	SpectrumBlue   = lipgloss.Color("#2E64FE") // Blue
	SpectrumGreen  = lipgloss.Color("#2ECC40") // Green
	SpectrumAmber  = lipgloss.Color("#FFB000") // Amber
	SpectrumRed    = lipgloss.Color("#E8262D") // Red

	// Accent colours
	CoolGray = lipgloss.Color("#8A8A9E") // Muted slate for subtle text
)
