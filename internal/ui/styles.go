package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Severity styles
	High    lipgloss.Style
	Medium  lipgloss.Style
	Low     lipgloss.Style
	Success lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Label     lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconHigh    string
	IconMedium  string
	IconLow     string
	IconSuccess string
}

// NewStyles creates a new Styles instance.
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.High = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))     // Red
		s.Medium = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))  // Yellow
		s.Low = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))     // Cyan
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Label = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		s.IconHigh = "✗"
		s.IconMedium = "⚠"
		s.IconLow = "\U0001f4a1" // light bulb
		s.IconSuccess = "✓"
	} else {
		s.High = lipgloss.NewStyle()
		s.Medium = lipgloss.NewStyle()
		s.Low = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Label = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()

		s.IconHigh = "HIGH:"
		s.IconMedium = "MEDIUM:"
		s.IconLow = "LOW:"
		s.IconSuccess = "OK:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}
