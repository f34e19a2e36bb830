package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode determines how output should be formatted
type OutputMode int

const (
	// OutputModeInteractive enables colored squares, spinners and progress bars
	OutputModeInteractive OutputMode = iota
	// OutputModePlain prints glyphs instead of colored squares (for piped output)
	OutputModePlain
	// OutputModeJSON outputs raw JSON only
	OutputModeJSON
	// OutputModeMarkdown outputs Markdown tables
	OutputModeMarkdown
)

// UI provides a unified interface for terminal output with TTY detection
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles
}

// New creates a new UI instance with automatic TTY detection
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
	}
}

// detectMode determines the output mode based on TTY and format flags
func detectMode(w io.Writer, format string) OutputMode {
	switch format {
	case "json":
		return OutputModeJSON
	case "markdown", "md":
		return OutputModeMarkdown
	}

	if f, ok := w.(*os.File); ok {
		if term.IsTerminal(int(f.Fd())) {
			return OutputModeInteractive
		}
	}

	return OutputModePlain
}

// IsInteractive returns true if the output is interactive (TTY)
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// IsJSON returns true if JSON output mode is enabled
func (ui *UI) IsJSON() bool {
	return ui.Mode == OutputModeJSON
}

// IsMarkdown returns true if Markdown output mode is enabled
func (ui *UI) IsMarkdown() bool {
	return ui.Mode == OutputModeMarkdown
}

// CanShowProgress reports whether a progress display may be drawn on
// ErrWriter without corrupting the report on Writer.
func (ui *UI) CanShowProgress() bool {
	if f, ok := ui.ErrWriter.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
