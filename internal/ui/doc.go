// Package ui provides terminal UI components for the tyr CLI.
//
// This package uses Bubble Tea and Lipgloss to render polished terminal
// output. Components follow a "run once and exit" pattern: they render
// output but never wait for user input.
//
// # Components
//
//   - Header: Command banner showing operation name and parameters
//   - Result: Success/failure/warning boxes with ordered details
//   - Output: Captured subprocess output (compiler errors, board lists)
//   - Table: Device and image listings
//   - Spinner: Activity indicator for long-running toolchain calls
//
// Task orchestrates header → spinner → result for a single command:
//
//	task := ui.NewTask(ui.TaskConfig{
//	    Title:   "Create Image",
//	    Command: "tyr manufacture create-image",
//	    Params:  []ui.Param{{Key: "Device", Value: id}},
//	})
//	err := task.Run("Compiling image", func() (*ui.Outcome, error) {
//	    ...
//	})
//
// The spinner only animates when stdout is a terminal; piped output gets a
// single progress line instead.
//
// # Logging Integration
//
// Log lines go to stderr (see TYR_LOG_LEVEL), so the curated UI output on
// stdout stays clean when logs are enabled.
package ui
