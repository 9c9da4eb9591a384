package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tyr-firmware/tyr/internal/logging"
)

// Result is the outcome of a command that exited successfully.
type Result struct {
	// Argv is the command as requested by the caller
	Argv []string
	// ExitCode is the process exit code
	ExitCode int
	// Stdout is the captured standard output
	Stdout string
	// Stderr is the captured standard error
	Stderr string
	// Duration is the wall time of the command
	Duration time.Duration
}

// Runner executes external commands and captures their output.
type Runner struct {
	// Shell runs commands through the platform command interpreter
	// (sh -c on POSIX, cmd /C on Windows) instead of executing argv directly.
	Shell bool

	logger *zap.Logger
	goos   string
}

// New creates a Runner. When shell is false argv is handed to the OS
// unchanged and no shell interpretation takes place.
func New(shell bool, logger *zap.Logger) *Runner {
	logger = logging.OrNop(logger)
	return &Runner{
		Shell:  shell,
		logger: logger,
		goos:   runtime.GOOS,
	}
}

// Run executes argv and blocks until it exits. A non-zero exit status or a
// failure to start returns a *CommandError carrying failureMessage and the
// captured output.
func (r *Runner) Run(ctx context.Context, argv []string, failureMessage string) (*Result, error) {
	if len(argv) == 0 {
		return nil, &CommandError{Message: failureMessage, ExitCode: -1, Err: errors.New("empty command")}
	}

	name, args := r.command(argv)

	r.logger.Info("running command",
		zap.Strings("argv", argv),
		zap.Bool("shell", r.Shell),
	)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	stdout := stdoutBuf.String()
	stderr := stderrBuf.String()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	r.logger.Debug("command finished",
		zap.Strings("argv", argv),
		zap.Int("exit_code", exitCode),
		zap.Duration("duration", duration),
		zap.String("stdout", stdout),
		zap.String("stderr", stderr),
	)

	if err != nil {
		cmdErr := &CommandError{
			Message:  failureMessage,
			Argv:     argv,
			ExitCode: exitCode,
			Stdout:   stdout,
			Stderr:   stderr,
			Err:      err,
		}
		r.logger.Error("command failed",
			zap.String("message", failureMessage),
			zap.Strings("argv", argv),
			zap.Int("exit_code", exitCode),
			zap.String("stdout", stdout),
			zap.String("stderr", stderr),
		)
		return nil, cmdErr
	}

	return &Result{
		Argv:     argv,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
		Duration: duration,
	}, nil
}

// RunJSON runs argv and decodes its stdout as JSON into v.
func (r *Runner) RunJSON(ctx context.Context, argv []string, failureMessage string, v any) (*Result, error) {
	result, err := r.Run(ctx, argv, failureMessage)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(result.Stdout), v); err != nil {
		return result, &JSONError{Argv: argv, Stdout: result.Stdout, Err: err}
	}
	return result, nil
}

// command maps argv to the program and arguments handed to exec.
func (r *Runner) command(argv []string) (string, []string) {
	if !r.Shell {
		return argv[0], argv[1:]
	}
	if r.goos == "windows" {
		return "cmd", append([]string{"/C"}, argv...)
	}
	return "sh", []string{"-c", ShellJoin(argv)}
}

// ShellJoin joins argv with spaces for sh -c. Arguments containing
// whitespace are wrapped in double quotes; nothing inside them is escaped,
// so embedded quotes or $ still reach the shell.
func ShellJoin(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t\n") {
			parts[i] = `"` + arg + `"`
		} else {
			parts[i] = arg
		}
	}
	return strings.Join(parts, " ")
}
