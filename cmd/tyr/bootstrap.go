package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyr-firmware/tyr/internal/inventory"
	"github.com/tyr-firmware/tyr/internal/ui"
)

func init() {
	rootCmd.AddCommand(bootstrapCmd)
	bootstrapCmd.AddCommand(bootstrapListDevicesCmd)
	bootstrapCmd.AddCommand(bootstrapCreateDeviceCmd)
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Register devices",
	Long: `Register new devices and inspect the devices directory.

Every device is a directory named after its id under the configured
devices path. The device descriptor (config.yaml) inside it is written by
hand or by provisioning tooling.`,
}

var bootstrapListDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List registered devices",
	Args:  cobra.NoArgs,
	RunE:  runBootstrapListDevices,
}

func runBootstrapListDevices(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	e, err := loadEnv()
	if err != nil {
		return err
	}

	devices, err := inventory.List(e.config.Arduino.DevicesPath, e.logger)
	if err != nil {
		return err
	}

	counts, err := inventory.ImageCounts(e.config.Arduino.DevicesPath)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintTable(
		[]string{"DEVICE", "DESCRIPTOR", "IMAGES"},
		deviceRows(devices, counts),
		"No devices in "+e.config.Arduino.DevicesPath,
	)

	if invalid := invalidDescriptors(devices); len(invalid) > 0 {
		p.Newline()
		p.PrintWarning("Some descriptors could not be loaded", invalid...)
	}
	return nil
}

// deviceRows builds the list-devices table rows.
func deviceRows(devices []inventory.Device, counts map[string]int) [][]string {
	rows := make([][]string, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, []string{d.ID, descriptorStatus(d), strconv.Itoa(counts[d.ID])})
	}
	return rows
}

// descriptorStatus summarises the descriptor state of d for listings.
func descriptorStatus(d inventory.Device) string {
	switch {
	case d.Err != nil:
		return "invalid"
	case !d.HasDescriptor:
		return "missing"
	default:
		return "ok"
	}
}

func invalidDescriptors(devices []inventory.Device) []ui.Param {
	var params []ui.Param
	for _, d := range devices {
		if d.Err != nil {
			params = append(params, ui.Param{Key: d.ID, Value: d.Err.Error()})
		}
	}
	return params
}

var bootstrapCreateDeviceCmd = &cobra.Command{
	Use:   "create-device",
	Short: "Allocate a new device id",
	Long: `Allocate a new device id and create its directory.

The id is a random UUID. The descriptor is not written; add a config.yaml
to the new directory before building an image.`,
	Args: cobra.NoArgs,
	RunE: runBootstrapCreateDevice,
}

func runBootstrapCreateDevice(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	e, err := loadEnv()
	if err != nil {
		return err
	}

	id, err := inventory.Create(e.config.Arduino.DevicesPath)
	if err != nil {
		return err
	}
	e.logger.Info("created device", zap.String("device_id", id))

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Device created",
		ui.Param{Key: "Device", Value: id},
		ui.Param{Key: "Directory", Value: inventory.DeviceDir(e.config.Arduino.DevicesPath, id)},
		ui.Param{Key: "Descriptor", Value: inventory.DescriptorPath(e.config.Arduino.DevicesPath, id)},
	)
	return nil
}
