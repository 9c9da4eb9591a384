// Package arduinotest provides a scripted arduino.Commander for tests.
package arduinotest

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tyr-firmware/tyr/internal/runner"
)

// Response is what the fake returns for a matching command.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Commander records every command line and answers from Responses, keyed
// by the argv subcommand (argv[1:] joined by spaces, prefix match).
// Unmatched commands succeed with empty output.
type Commander struct {
	Responses map[string]Response
	Calls     [][]string
}

// Run implements arduino.Commander.
func (c *Commander) Run(ctx context.Context, argv []string, failureMessage string) (*runner.Result, error) {
	c.Calls = append(c.Calls, append([]string(nil), argv...))

	resp := c.lookup(argv)
	if resp.ExitCode != 0 {
		return nil, &runner.CommandError{
			Message:  failureMessage,
			Argv:     argv,
			ExitCode: resp.ExitCode,
			Stdout:   resp.Stdout,
			Stderr:   resp.Stderr,
		}
	}

	return &runner.Result{
		Argv:   argv,
		Stdout: resp.Stdout,
		Stderr: resp.Stderr,
	}, nil
}

// RunJSON implements arduino.Commander.
func (c *Commander) RunJSON(ctx context.Context, argv []string, failureMessage string, v any) (*runner.Result, error) {
	result, err := c.Run(ctx, argv, failureMessage)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(result.Stdout), v); err != nil {
		return result, &runner.JSONError{Argv: argv, Stdout: result.Stdout, Err: err}
	}
	return result, nil
}

// Last returns the most recent command line, or nil.
func (c *Commander) Last() []string {
	if len(c.Calls) == 0 {
		return nil
	}
	return c.Calls[len(c.Calls)-1]
}

func (c *Commander) lookup(argv []string) Response {
	if len(argv) < 2 {
		return Response{}
	}
	sub := strings.Join(argv[1:], " ")
	for key, resp := range c.Responses {
		if strings.HasPrefix(sub, key) {
			return resp
		}
	}
	return Response{}
}

// VersionJSON is a plausible `arduino-cli version --format json` output.
const VersionJSON = `{"Application":"arduino-cli","VersionString":"1.1.1","Commit":"fa6eafcb","Status":"","Date":"2024-11-29T09:47:36Z"}`
