// Tyr manages the firmware lifecycle of a fleet of IoT devices.
//
// It keeps a small per-user configuration (~/.tyr/config.toml) naming the
// active device family and its build settings, and drives the family's
// toolchain (arduino-cli) to build per-device firmware images whose
// compile-time definitions come from each device's descriptor.
//
// Usage:
//
//	tyr [command] [flags]
//
// See 'tyr --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tyr-firmware/tyr/internal/logging"
	"github.com/tyr-firmware/tyr/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
	shellMode  bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tyr",
	Short: "IoT device firmware lifecycle tool",
	Long: `Bootstrap, provision and manufacture firmware for IoT devices.

Tyr reads its settings from ~/.tyr/config.toml (created with defaults on
first use) and keeps one directory per device under the configured
devices path. Each device directory holds a config.yaml descriptor whose
compile-time definitions are passed to the toolchain when an image is
built for that device.

Supported device families:
  - Arduino (via arduino-cli)

Set TYR_LOG_LEVEL or --log-level to debug, info, warn, error or off.`,
	Version:       version.Version,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
	Example: `  # Show the active configuration
  tyr get-config

  # Point tyr at a sketch and a board
  tyr set-config --arduino-sketch-path ~/Arduino/sensor --arduino-board-type arduino:samd:mkrwan1300

  # Build an image for one device
  tyr manufacture create-image 216fa23d-8fda-4a17-8efa-93d45796dcf3`,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.tyr/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error, off); overrides "+logging.LogLevelEnvVar)
	rootCmd.PersistentFlags().BoolVar(&shellMode, "shell", false, "Run toolchain commands through the platform shell")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show full toolchain output")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tyr %s\n", version.Full())
	},
}
