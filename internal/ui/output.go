package ui

import (
	"fmt"
	"strings"
)

// Output is a box displaying captured subprocess output.
type Output struct {
	Title    string // e.g., "arduino-cli stderr"
	Content  string // Raw captured output
	Width    int    // Terminal width
	MaxLines int    // Show only the last MaxLines lines (0 = unlimited)
}

// NewOutput creates a new output box
func NewOutput(title, content string) *Output {
	return &Output{
		Title:   title,
		Content: content,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (o *Output) SetWidth(width int) *Output {
	o.Width = width
	return o
}

// SetMaxLines limits the number of lines displayed to the last max lines
func (o *Output) SetMaxLines(max int) *Output {
	o.MaxLines = max
	return o
}

// Lines returns the displayed lines, after truncation
func (o *Output) Lines() []string {
	lines := strings.Split(strings.TrimRight(o.Content, "\n"), "\n")
	if o.MaxLines > 0 && len(lines) > o.MaxLines {
		omitted := len(lines) - o.MaxLines
		lines = append([]string{fmt.Sprintf("... %d earlier lines omitted", omitted)}, lines[omitted:]...)
	}
	return lines
}

// Render returns the styled output box as a string
func (o *Output) Render() string {
	width := o.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	content := OutputTitleStyle.Render(o.Title) + "\n" +
		OutputContentStyle.Render(strings.Join(o.Lines(), "\n"))
	return OutputBoxStyle(width).Render(content)
}

// String implements fmt.Stringer
func (o *Output) String() string {
	return o.Render()
}
