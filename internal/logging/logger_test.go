package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in          string
		wantLevel   zapcore.Level
		wantEnabled bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"DEBUG", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"warning", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"off", zapcore.InfoLevel, false},
		{"bogus", zapcore.InfoLevel, true},
		{" info ", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, enabled := ParseLevel(tt.in)
			if level != tt.wantLevel {
				t.Errorf("ParseLevel(%q) level = %v, want %v", tt.in, level, tt.wantLevel)
			}
			if enabled != tt.wantEnabled {
				t.Errorf("ParseLevel(%q) enabled = %v, want %v", tt.in, enabled, tt.wantEnabled)
			}
		})
	}
}

func TestInitializeUsesEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	l := GetLogger()
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestInitializeFlagOverridesEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "error")

	if err := Initialize("debug"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !GetLogger().Core().Enabled(zapcore.DebugLevel) {
		t.Error("an explicit level should win over " + LogLevelEnvVar)
	}
}

func TestInitializeDefaultsToInfo(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	l := GetLogger()
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled by default")
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled by default")
	}
}

func TestInitializeOff(t *testing.T) {
	if err := Initialize("off"); err != nil {
		t.Fatalf("Initialize(off) error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("off should disable all levels")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	l := zap.NewExample()
	if OrNop(l) != l {
		t.Error("OrNop() should return a non-nil logger unchanged")
	}
}
