package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	ui      *UI
	program *tea.Program
}

// StartProgress starts the progress display if in interactive mode.
// Returns nil if not in interactive mode
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	m := NewModel()
	p := tea.NewProgram(m, tea.WithOutput(ui.ErrWriter))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
	}

	go func() {
		if _, err := p.Run(); err != nil {
			_ = err
		}
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetOperation updates the current operation description
func (pc *ProgressController) SetOperation(op string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(OperationMsg(op))
	}
}

// SetStepCount sets the total number of steps for the current stage
func (pc *ProgressController) SetStepCount(count int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StepCountMsg(count))
	}
}

// StepStart indicates a named step has started
func (pc *ProgressController) StepStart(name string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StepStartMsg(fmt.Sprintf("Running %s...", name)))
	}
}

// StepDone indicates a step has completed
func (pc *ProgressController) StepDone() {
	if pc != nil && pc.program != nil {
		pc.program.Send(StepDoneMsg{})
	}
}

// Done signals that all work is complete
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		pc.program.Wait()
	}
}
