package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Outcome styles
	OK      lipgloss.Style
	Failed  lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Code      lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconOK      string
	IconFailed  string
	IconWarning string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.OK = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))      // Green
		s.Failed = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))   // Red
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))    // Blue

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Code = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")) // Cyan bold
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		s.IconOK = "\u2713"      // ✓
		s.IconFailed = "\u2717"  // ✗
		s.IconWarning = "\u26a0" // ⚠
	} else {
		s.OK = lipgloss.NewStyle()
		s.Failed = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()
		s.Code = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()

		s.IconOK = "OK:"
		s.IconFailed = "FAIL:"
		s.IconWarning = "WARN:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Square renders one colored square. Without styling, or without a color,
// fallback is returned as is.
func (s *Styles) Square(hex, fallback string) string {
	if !s.enabled || hex == "" {
		return fallback
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
