package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tyr-firmware/tyr/internal/config"
	"github.com/tyr-firmware/tyr/internal/ui"
)

// Configuration command flags
var (
	configFormat string

	setFamily      string
	setBoardType   string
	setSketchPath  string
	setDevicesPath string
	setCLIPath     string
)

func init() {
	rootCmd.AddCommand(getConfigCmd)
	rootCmd.AddCommand(setConfigCmd)

	getConfigCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format (toml, json)")

	setConfigCmd.Flags().StringVar(&setFamily, "family", "", "Device family ("+config.FamilyNames()+")")
	setConfigCmd.Flags().StringVar(&setBoardType, "arduino-board-type", "", "Fully qualified board name, e.g. arduino:samd:mkrwan1300")
	setConfigCmd.Flags().StringVar(&setSketchPath, "arduino-sketch-path", "", "Sketch directory compiled for every device")
	setConfigCmd.Flags().StringVar(&setDevicesPath, "arduino-devices-path", "", "Directory holding one sub-directory per device")
	setConfigCmd.Flags().StringVar(&setCLIPath, "arduino-cli-path", "", "arduino-cli binary name or path")
}

var getConfigCmd = &cobra.Command{
	Use:   "get-config",
	Short: "Show the active configuration",
	Long: `Print the active configuration.

The configuration file is created with defaults if it does not exist yet.`,
	Example: `  tyr get-config
  tyr get-config --format json`,
	Args: cobra.NoArgs,
	RunE: runGetConfig,
}

func runGetConfig(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	e, err := loadEnv()
	if err != nil {
		return err
	}

	return writeConfig(cmd.OutOrStdout(), e.config, configFormat)
}

// writeConfig renders cfg in the given format.
func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "toml", "":
		return toml.NewEncoder(w).Encode(cfg)
	default:
		return fmt.Errorf("unknown format %q (want toml or json)", format)
	}
}

var setConfigCmd = &cobra.Command{
	Use:   "set-config",
	Short: "Change configuration values",
	Long: `Update the configuration file.

Only the flags that are given are changed; every other value keeps its
current setting. Values cannot be cleared: an empty value is rejected.`,
	Example: `  # Select a different board
  tyr set-config --arduino-board-type arduino:samd:mkrwan1300

  # Use a specific arduino-cli build
  tyr set-config --family arduino --arduino-cli-path /opt/arduino/bin/arduino-cli`,
	Args: cobra.NoArgs,
	RunE: runSetConfig,
}

func runSetConfig(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	e, err := loadEnv()
	if err != nil {
		return err
	}

	u, err := buildUpdate(cmd, e.config)
	if err != nil {
		return err
	}

	cfg, err := e.store.Set(u)
	if err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration saved",
		ui.Param{Key: "File", Value: e.store.Path()},
		ui.Param{Key: "Family", Value: cfg.Family.String()},
		ui.Param{Key: "CLI", Value: cfg.Arduino.CLIPath},
		ui.Param{Key: "Sketch", Value: cfg.Arduino.SketchPath},
		ui.Param{Key: "Board", Value: cfg.Arduino.BoardType},
		ui.Param{Key: "Devices", Value: cfg.Arduino.DevicesPath},
	)
	return nil
}

// buildUpdate turns the flags that were set into a config.Update. The
// family defaults to the current one. A flag given an empty value is an
// error, since a partial update never clears a field.
func buildUpdate(cmd *cobra.Command, current *config.Config) (config.Update, error) {
	u := config.Update{Family: current.Family}

	flags := cmd.Flags()
	if flags.Changed("family") {
		family, err := config.ParseFamily(setFamily)
		if err != nil {
			return u, err
		}
		u.Family = family
	}

	optional := []struct {
		flag  string
		value string
		dst   **string
	}{
		{"arduino-board-type", setBoardType, &u.BoardType},
		{"arduino-sketch-path", setSketchPath, &u.SketchPath},
		{"arduino-devices-path", setDevicesPath, &u.DevicesPath},
		{"arduino-cli-path", setCLIPath, &u.CLIPath},
	}
	for _, o := range optional {
		if !flags.Changed(o.flag) {
			continue
		}
		if o.value == "" {
			return u, fmt.Errorf("--%s must not be empty", o.flag)
		}
		v := o.value
		*o.dst = &v
	}

	return u, nil
}
