package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	ui      *UI
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts the progress display if in interactive mode.
// Returns nil otherwise; every method is safe to call on a nil controller.
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive || !ui.CanShowProgress() {
		return nil
	}

	m := NewModel()
	p := tea.NewProgram(m, tea.WithOutput(ui.ErrWriter), tea.WithInput(nil))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
		done:    make(chan struct{}),
	}

	go func() {
		defer close(ctrl.done)
		// A failed progress display must not fail the run.
		_, _ = p.Run()
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetTotal sets the number of files to process
func (pc *ProgressController) SetTotal(total int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(TotalMsg(total))
	}
}

// FileDone records one processed file
func (pc *ProgressController) FileDone(path string, ok bool) {
	if pc != nil && pc.program != nil {
		pc.program.Send(FileMsg{Path: path, OK: ok})
	}
}

// Done signals that all work is complete and waits for the display to clear
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		<-pc.done
	}
}
