package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// operationDoneMsg carries the result of the wrapped operation
type operationDoneMsg struct {
	err error
}

// spinnerModel shows a spinner next to a label until the operation finishes.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	op      func() error
	done    bool
	err     error
}

func newSpinnerModel(label string, op func() error) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return spinnerModel{
		spinner: s,
		label:   label,
		op:      op,
	}
}

// Init implements tea.Model
func (m spinnerModel) Init() tea.Cmd {
	op := m.op
	return tea.Batch(
		func() tea.Msg { return operationDoneMsg{err: op()} },
		m.spinner.Tick,
	)
}

// Update implements tea.Model
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case operationDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return "  " + m.spinner.View() + " " + SpinnerLabelStyle.Render(m.label+"...")
}

// RunWithSpinner runs op while animating a spinner on out. When out is not
// a terminal the label is printed once and op runs without animation.
func RunWithSpinner(out io.Writer, label string, op func() error) error {
	if !IsTerminal(out) {
		_, _ = fmt.Fprintln(out, "  "+label+"...")
		return op()
	}

	p := tea.NewProgram(newSpinnerModel(label, op), tea.WithOutput(out), tea.WithInput(nil))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("spinner failed: %w", err)
	}
	return final.(spinnerModel).err
}
