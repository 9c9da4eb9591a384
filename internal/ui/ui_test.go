package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tyr-firmware/tyr/internal/runner"
)

func TestOutput_Lines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		maxLines int
		want     []string
	}{
		{
			name:    "unlimited",
			content: "a\nb\nc\n",
			want:    []string{"a", "b", "c"},
		},
		{
			name:     "under limit",
			content:  "a\nb",
			maxLines: 5,
			want:     []string{"a", "b"},
		},
		{
			name:     "tail kept",
			content:  "a\nb\nc\nd\n",
			maxLines: 2,
			want:     []string{"... 2 earlier lines omitted", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewOutput("out", tt.content).SetMaxLines(tt.maxLines).Lines()
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Lines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeader_ParamsInOrder(t *testing.T) {
	out := NewHeader("Create Image", "tyr manufacture create-image",
		Param{Key: "Device", Value: "dev1"},
		Param{Key: "Board", Value: "uno"},
	).SetWidth(80).Render()

	for _, want := range []string{"CREATE IMAGE", "tyr manufacture create-image", "dev1", "uno"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "dev1") > strings.Index(out, "uno") {
		t.Error("header params should render in the given order")
	}
}

func TestTask_RunSuccess(t *testing.T) {
	var buf bytes.Buffer
	task := NewTask(TaskConfig{
		Title:   "Create Image",
		Command: "tyr manufacture create-image",
		Verbose: true,
		Output:  &buf,
	})

	err := task.Run("Compiling image", func() (*Outcome, error) {
		return &Outcome{
			Details: []Param{{Key: "Output", Value: "/tmp/devs/dev1"}},
			Output:  "Sketch uses 1234 bytes",
		}, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Compiling image...", "SUCCESS", "/tmp/devs/dev1", "Duration", "Sketch uses 1234 bytes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTask_RunFailureShowsCommandOutput(t *testing.T) {
	var buf bytes.Buffer
	cmdErr := &runner.CommandError{
		Message:  "Failed to compile image",
		Argv:     []string{"arduino-cli", "compile"},
		ExitCode: 1,
		Stderr:   "sketch.ino:3: error: expected ';'",
	}

	task := NewTask(TaskConfig{
		Title:   "Create Image",
		Command: "tyr manufacture create-image",
		Output:  &buf,
		Troubleshooting: func(err error) []string {
			return []string{"Check the sketch compiles"}
		},
	})

	err := task.Run("Compiling image", func() (*Outcome, error) {
		return nil, cmdErr
	})
	if !errors.Is(err, cmdErr) {
		t.Fatalf("Run() error = %v, want the operation error", err)
	}

	out := buf.String()
	for _, want := range []string{"FAILED", "Check the sketch compiles", "arduino-cli stderr", "expected ';'"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "arduino-cli stdout") {
		t.Error("empty stdout should not render a box")
	}
}

func TestRunWithSpinner_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	called := false

	err := RunWithSpinner(&buf, "Scanning", func() error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Fatalf("RunWithSpinner() err = %v, called = %v", err, called)
	}
	if !strings.Contains(buf.String(), "Scanning...") {
		t.Errorf("expected a progress line, got %q", buf.String())
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"ID", "NETWORK"}, [][]string{{"dev1", "home"}, {"dev2", "office"}})

	for _, want := range []string{"ID", "NETWORK", "dev1", "office"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_PrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTable([]string{"ID"}, nil, "No devices found")

	if !strings.Contains(buf.String(), "No devices found") {
		t.Errorf("expected empty message, got %q", buf.String())
	}
}

func TestPrinter_PrintWarning(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).SetWidth(120).PrintWarning("Some descriptors could not be loaded",
		Param{Key: "dev2", Value: "device id mismatch"},
	)

	out := buf.String()
	for _, want := range []string{"WARNING", "Some descriptors could not be loaded", "dev2:", "device id mismatch"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintWarning() output missing %q:\n%s", want, out)
		}
	}
}
