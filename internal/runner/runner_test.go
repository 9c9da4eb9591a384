package runner

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRun_CapturesOutput(t *testing.T) {
	skipOnWindows(t)

	r := New(false, zap.NewNop())
	result, err := r.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"}, "should not fail")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
	if result.Stdout != "out\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "out\n")
	}
	if result.Stderr != "err\n" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "err\n")
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	skipOnWindows(t)

	r := New(false, zap.NewNop())
	_, err := r.Run(context.Background(), []string{"sh", "-c", "echo partial; echo broken >&2; exit 3"}, "Failed to compile image")

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Run() error = %v, want *CommandError", err)
	}
	if cmdErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", cmdErr.ExitCode)
	}
	if cmdErr.Message != "Failed to compile image" {
		t.Errorf("Message = %q", cmdErr.Message)
	}
	if cmdErr.Stdout != "partial\n" || cmdErr.Stderr != "broken\n" {
		t.Errorf("captured output = %q / %q", cmdErr.Stdout, cmdErr.Stderr)
	}
	if !strings.Contains(cmdErr.Error(), "Failed to compile image") {
		t.Errorf("Error() = %q, should contain the failure message", cmdErr.Error())
	}
}

func TestRun_MissingBinary(t *testing.T) {
	r := New(false, zap.NewNop())
	_, err := r.Run(context.Background(), []string{"tyr-test-no-such-binary-7f3a"}, "not installed")

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Run() error = %v, want *CommandError", err)
	}
	if cmdErr.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", cmdErr.ExitCode)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error should wrap exec.ErrNotFound, got %v", err)
	}
}

func TestRun_EmptyArgv(t *testing.T) {
	r := New(false, nil)
	if _, err := r.Run(context.Background(), nil, "empty"); err == nil {
		t.Error("Run(nil) should fail")
	}
}

func TestRun_ArgvIsNotShellInterpreted(t *testing.T) {
	skipOnWindows(t)

	r := New(false, zap.NewNop())
	result, err := r.Run(context.Background(), []string{"echo", "$HOME;", "a b"}, "echo failed")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stdout != "$HOME; a b\n" {
		t.Errorf("Stdout = %q, want literal arguments", result.Stdout)
	}
}

func TestRun_ShellMode(t *testing.T) {
	skipOnWindows(t)

	r := New(true, zap.NewNop())
	result, err := r.Run(context.Background(), []string{"echo", "--build-property", "P -DA=1 -DB=2 "}, "echo failed")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stdout != "--build-property P -DA=1 -DB=2 \n" {
		t.Errorf("Stdout = %q", result.Stdout)
	}
}

func TestRunJSON(t *testing.T) {
	skipOnWindows(t)

	r := New(false, zap.NewNop())

	var v struct {
		VersionString string `json:"VersionString"`
	}
	_, err := r.RunJSON(context.Background(), []string{"sh", "-c", `echo '{"VersionString":"0.34.2"}'`}, "version failed", &v)
	if err != nil {
		t.Fatalf("RunJSON() error = %v", err)
	}
	if v.VersionString != "0.34.2" {
		t.Errorf("VersionString = %q", v.VersionString)
	}

	_, err = r.RunJSON(context.Background(), []string{"sh", "-c", "echo not-json"}, "version failed", &v)
	var jsonErr *JSONError
	if !errors.As(err, &jsonErr) {
		t.Fatalf("RunJSON() error = %v, want *JSONError", err)
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name     string
		shell    bool
		goos     string
		argv     []string
		wantName string
		wantArgs []string
	}{
		{
			name:     "direct",
			argv:     []string{"arduino-cli", "board", "list"},
			goos:     "linux",
			wantName: "arduino-cli",
			wantArgs: []string{"board", "list"},
		},
		{
			name:     "posix shell",
			shell:    true,
			goos:     "linux",
			argv:     []string{"arduino-cli", "board", "list"},
			wantName: "sh",
			wantArgs: []string{"-c", "arduino-cli board list"},
		},
		{
			name:     "windows shell",
			shell:    true,
			goos:     "windows",
			argv:     []string{"arduino-cli", "board", "list"},
			wantName: "cmd",
			wantArgs: []string{"/C", "arduino-cli", "board", "list"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.shell, nil)
			r.goos = tt.goos

			name, args := r.command(tt.argv)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if strings.Join(args, "|") != strings.Join(tt.wantArgs, "|") {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestShellJoin(t *testing.T) {
	got := ShellJoin([]string{"arduino-cli", "compile", "--build-property", `p -DN="x" `, ""})
	want := `arduino-cli compile --build-property "p -DN="x" " ""`
	if got != want {
		t.Errorf("ShellJoin() = %q, want %q", got, want)
	}
}
