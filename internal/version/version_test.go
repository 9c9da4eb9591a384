package version

import (
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	full := Full()
	if !strings.Contains(full, Version) {
		t.Errorf("Full() = %q, want it to contain version %q", full, Version)
	}
	if !strings.Contains(full, "commit: "+Commit) {
		t.Errorf("Full() = %q, want it to contain commit %q", full, Commit)
	}
}
