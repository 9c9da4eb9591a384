package ui

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/tyr-firmware/tyr/internal/runner"
)

// outputTailLines bounds captured output shown on failure
const outputTailLines = 40

// TaskConfig holds configuration for a long-running command
type TaskConfig struct {
	Title   string  // Command title (e.g., "Create Image")
	Command string  // Full command (e.g., "tyr manufacture create-image")
	Params  []Param // Parameters to display in header
	Verbose bool    // Whether to show subprocess output on success
	Output  io.Writer

	// Troubleshooting returns tips for a failure, may be nil
	Troubleshooting func(err error) []string
}

// Outcome is what a successful operation reports back
type Outcome struct {
	Details []Param
	// Output is captured subprocess output, shown in verbose mode
	Output string
}

// Task orchestrates the header, spinner and result flow of one command.
type Task struct {
	config  TaskConfig
	printer *Printer
}

// NewTask creates a new task UI
func NewTask(config TaskConfig) *Task {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Task{
		config:  config,
		printer: NewPrinter(config.Output),
	}
}

// Run prints the header, runs op behind a spinner labelled label, then
// prints the result. The operation's error is returned unchanged.
func (t *Task) Run(label string, op func() (*Outcome, error)) error {
	start := time.Now()

	t.printer.PrintHeader(t.config.Title, t.config.Command, t.config.Params...)

	var outcome *Outcome
	err := RunWithSpinner(t.config.Output, label, func() error {
		var err error
		outcome, err = op()
		return err
	})
	duration := time.Since(start).Round(time.Millisecond).String()

	t.printer.Newline()
	if err != nil {
		t.printFailure(err)
		return err
	}

	var details []Param
	var output string
	if outcome != nil {
		details = outcome.Details
		output = outcome.Output
	}
	details = append(details, Param{Key: "Duration", Value: duration})
	t.printer.PrintSuccess(t.config.Title+" complete", details...)

	if t.config.Verbose {
		t.printer.PrintOutput("Command output", output, 0)
	}
	return nil
}

// printFailure prints the failure box followed by any captured output of
// a failed subprocess
func (t *Task) printFailure(err error) {
	var tips []string
	if t.config.Troubleshooting != nil {
		tips = t.config.Troubleshooting(err)
	}
	t.printer.PrintFailure(t.config.Title+" failed", err, tips)
	PrintCommandOutput(t.printer, err, t.config.Verbose)
}

// PrintCommandOutput prints stderr and stdout of a failed subprocess when
// err wraps a *runner.CommandError. Output is truncated unless verbose.
func PrintCommandOutput(p *Printer, err error, verbose bool) {
	var cmdErr *runner.CommandError
	if !errors.As(err, &cmdErr) {
		return
	}

	maxLines := outputTailLines
	if verbose {
		maxLines = 0
	}

	name := "command"
	if len(cmdErr.Argv) > 0 {
		name = cmdErr.Argv[0]
	}
	p.PrintOutput(name+" stderr", cmdErr.Stderr, maxLines)
	p.PrintOutput(name+" stdout", cmdErr.Stdout, maxLines)
}
