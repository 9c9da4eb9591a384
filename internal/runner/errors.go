package runner

import (
	"fmt"
	"strings"
)

// CommandError reports a command that could not be started or exited with
// a non-zero status.
type CommandError struct {
	// Message is the caller-supplied failure message
	Message string
	// Argv is the command that was run
	Argv []string
	// ExitCode is the process exit code, -1 if it never ran
	ExitCode int
	// Stdout is the captured standard output
	Stdout string
	// Stderr is the captured standard error
	Stderr string
	// Underlying error if any
	Err error
}

func (e *CommandError) Error() string {
	if e.Err != nil && e.ExitCode < 0 {
		return fmt.Sprintf("%s: %s: %v", e.Message, strings.Join(e.Argv, " "), e.Err)
	}
	return fmt.Sprintf("%s: %s exited with code %d", e.Message, strings.Join(e.Argv, " "), e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// JSONError reports command output that was expected to be JSON but did
// not decode.
type JSONError struct {
	Argv   []string
	Stdout string
	Err    error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("failed to decode JSON output of %s: %v", strings.Join(e.Argv, " "), e.Err)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}
