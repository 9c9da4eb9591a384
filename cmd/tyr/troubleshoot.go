package main

import (
	"errors"
	"strings"

	"github.com/tyr-firmware/tyr/internal/arduino"
	"github.com/tyr-firmware/tyr/internal/config"
	"github.com/tyr-firmware/tyr/internal/descriptor"
	"github.com/tyr-firmware/tyr/internal/lorawan"
	"github.com/tyr-firmware/tyr/internal/manufacture"
	"github.com/tyr-firmware/tyr/internal/runner"
	"github.com/tyr-firmware/tyr/internal/urls"
)

// troubleshoot returns tips for the failures a user can act on.
func troubleshoot(err error) []string {
	var (
		prereq   *arduino.PrerequisiteError
		notFound *descriptor.NotFoundError
		parseErr *descriptor.ParseError
		mismatch *descriptor.DeviceIDMismatchError
		pathErr  *manufacture.PathError
		family   *manufacture.UnsupportedFamilyError
		length   *lorawan.InvalidLengthError
		cfgErr   *config.ParseError
		cmdErr   *runner.CommandError
	)

	switch {
	case errors.As(err, &prereq):
		return []string{
			"Install arduino-cli: " + arduino.InstallURL,
			"Or point tyr at it: tyr set-config --arduino-cli-path <path>",
		}
	case errors.As(err, &notFound):
		return []string{
			"Create the descriptor at " + notFound.Path,
			"List known devices: tyr bootstrap list-devices",
		}
	case errors.As(err, &parseErr):
		return []string{"Fix the descriptor field named above in " + parseErr.Path}
	case errors.As(err, &mismatch):
		return []string{"Device.id in the descriptor must equal the device directory name"}
	case errors.As(err, &pathErr):
		return []string{"Create the directory or change it: tyr set-config --arduino-" + strings.ReplaceAll(pathErr.Key, "_", "-") + " <path>"}
	case errors.As(err, &family):
		return []string{"Select a supported family: tyr set-config --family " + config.FamilyNames()}
	case errors.As(err, &length):
		return []string{"LoRaWAN keys are hex strings: DevEUI and AppEUI are 16 characters, AppKey is 32"}
	case errors.As(err, &cfgErr):
		return []string{"Fix or remove " + cfgErr.Path + "; it is recreated with defaults when missing"}
	case errors.As(err, &cmdErr):
		return []string{
			"Check the toolchain output below",
			"Make sure the core for the configured board is installed: " + urls.ArduinoCLIGettingStarted,
			"Build flags are passed as --build-property: " + urls.ArduinoCLICompile,
			"Run with --verbose for the full output",
		}
	}
	return nil
}
