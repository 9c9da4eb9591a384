package arduino

import (
	"fmt"

	"github.com/tyr-firmware/tyr/internal/urls"
)

// InstallURL is where arduino-cli installation instructions live.
const InstallURL = urls.ArduinoCLIInstall

// PrerequisiteError reports a missing or unusable toolchain binary.
type PrerequisiteError struct {
	// Prerequisite is the binary that was checked
	Prerequisite string
	// Details provides additional context
	Details string
	// Underlying error
	Err error
}

func (e *PrerequisiteError) Error() string {
	msg := fmt.Sprintf("missing prerequisite: %s", e.Prerequisite)
	if e.Details != "" {
		msg += "\n" + e.Details
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\nError: %v", e.Err)
	}
	return msg
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}
