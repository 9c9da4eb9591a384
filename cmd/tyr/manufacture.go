package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tyr-firmware/tyr/internal/discovery"
	"github.com/tyr-firmware/tyr/internal/inventory"
	"github.com/tyr-firmware/tyr/internal/lorawan"
	"github.com/tyr-firmware/tyr/internal/manufacture"
	"github.com/tyr-firmware/tyr/internal/ui"
	"github.com/tyr-firmware/tyr/internal/urls"
)

// Manufacture command flags
var (
	networkScan  bool
	scanTimeout  int
	scanInstance string
)

func init() {
	rootCmd.AddCommand(manufactureCmd)
	manufactureCmd.AddCommand(listImagesCmd)
	manufactureCmd.AddCommand(createImageCmd)
	manufactureCmd.AddCommand(manufactureListDevicesCmd)
	manufactureCmd.AddCommand(flashDeviceCmd)
	manufactureCmd.AddCommand(uploadImageCmd)

	addCredentialFlags(createImageCmd)

	manufactureListDevicesCmd.Flags().BoolVar(&networkScan, "network", false, "Also discover network (OTA) boards over mDNS")
	manufactureListDevicesCmd.Flags().StringVar(&scanInstance, "instance", "", "Wait for one network board by mDNS instance name (implies --network)")
	manufactureListDevicesCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Network scan timeout in seconds")
}

var manufactureCmd = &cobra.Command{
	Use:   "manufacture",
	Short: "Build and flash firmware images",
}

var listImagesCmd = &cobra.Command{
	Use:   "list-images",
	Short: "List built firmware images",
	Args:  cobra.NoArgs,
	RunE:  runListImages,
}

func runListImages(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	e, err := loadEnv()
	if err != nil {
		return err
	}

	images, err := inventory.Images(e.config.Arduino.DevicesPath)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(images))
	for _, img := range images {
		rows = append(rows, []string{
			img.DeviceID,
			filepath.Base(img.Path),
			strconv.FormatInt(img.Size, 10),
			img.ModTime.Format(time.DateTime),
		})
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintTable(
		[]string{"DEVICE", "IMAGE", "BYTES", "BUILT"},
		rows,
		"No images in "+e.config.Arduino.DevicesPath,
	)
	return nil
}

var createImageCmd = &cobra.Command{
	Use:   "create-image <device_id>",
	Short: "Compile a firmware image for a device",
	Long: `Compile the configured sketch for one device.

The build flags are assembled from the device descriptor at
<devices_path>/<device_id>/config.yaml: CompileTimeConfigPrefix, then every
DeviceConfig definition, then every definition of the first network. The
image is written to the device directory.

LoRaWAN credentials given with --deveui, --appeui and --appkey are
validated before anything runs and are appended after the network
definitions.`,
	Example: `  tyr manufacture create-image 216fa23d-8fda-4a17-8efa-93d45796dcf3

  # Inject OTAA credentials into the build
  tyr manufacture create-image 216fa23d-8fda-4a17-8efa-93d45796dcf3 \
    --deveui 0011223344556677 --appeui 70B3D57ED0000000 \
    --appkey 00112233445566778899AABBCCDDEEFF`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateImage,
}

func runCreateImage(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	deviceID := args[0]

	var creds *lorawan.Credentials
	if c := credentialsFromFlags(); !c.IsZero() {
		creds = &c
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}

	svc := manufacture.NewService(e.config, e.toolchain(), e.logger)

	task := ui.NewTask(ui.TaskConfig{
		Title:   "Create Image",
		Command: "tyr manufacture create-image",
		Params: []ui.Param{
			{Key: "Device", Value: deviceID},
			{Key: "Board", Value: e.config.Arduino.BoardType},
			{Key: "Sketch", Value: e.config.Arduino.SketchPath},
		},
		Verbose:         verbose,
		Output:          cmd.OutOrStdout(),
		Troubleshooting: troubleshoot,
	})

	return task.Run("Compiling image", func() (*ui.Outcome, error) {
		res, err := svc.CreateImage(cmd.Context(), deviceID, creds)
		if err != nil {
			return nil, err
		}
		return &ui.Outcome{
			Details: []ui.Param{
				{Key: "Device", Value: res.DeviceID},
				{Key: "Output", Value: res.OutputDir},
				{Key: "Flags", Value: res.Flags},
			},
			Output: res.Result.Stdout,
		}, nil
	})
}

var manufactureListDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List connected boards",
	Long: `List the boards the toolchain can see (arduino-cli board list).

With --network, boards advertising Arduino OTA over mDNS on the local
network are listed as well. With --instance, the scan stops as soon as the
named board is seen and fails if it does not appear before the timeout.

See ` + urls.ArduinoCLIBoardList,
	Example: `  tyr manufacture list-devices
  tyr manufacture list-devices --network --timeout 10
  tyr manufacture list-devices --instance feather-garage`,
	Args: cobra.NoArgs,
	RunE: runManufactureListDevices,
}

func runManufactureListDevices(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	e, err := loadEnv()
	if err != nil {
		return err
	}
	p := ui.NewPrinter(cmd.OutOrStdout())

	svc := manufacture.NewService(e.config, e.toolchain(), e.logger)
	res, err := svc.ListDevices(cmd.Context())
	if err != nil {
		p.PrintFailure("Board list failed", err, troubleshoot(err))
		ui.PrintCommandOutput(p, err, verbose)
		return err
	}
	p.Println(res.Stdout)

	if !networkScan && scanInstance == "" {
		return nil
	}

	timeout := time.Duration(scanTimeout) * time.Second
	var boards []*discovery.Board
	err = ui.RunWithSpinner(p.Writer(), scanLabel(scanInstance, scanTimeout), func() error {
		if scanInstance == "" {
			var err error
			boards, err = discovery.DiscoverBoards(cmd.Context(), timeout)
			return err
		}
		board, err := discovery.FindBoard(cmd.Context(), timeout, scanInstance)
		if err != nil {
			return err
		}
		boards = []*discovery.Board{board}
		return nil
	})
	if err != nil {
		return fmt.Errorf("network scan failed: %w", err)
	}

	p.Newline()
	p.PrintTable([]string{"INSTANCE", "BOARD", "ADDRESS", "HOSTNAME", "AUTH"}, boardRows(boards), "No network boards found")
	return nil
}

func scanLabel(instance string, seconds int) string {
	if instance == "" {
		return fmt.Sprintf("Scanning for network boards (%ds)", seconds)
	}
	return fmt.Sprintf("Waiting for %s (%ds)", instance, seconds)
}

// boardRows builds the network board table rows. AUTH shows whether the
// board asks for an OTA upload password.
func boardRows(boards []*discovery.Board) [][]string {
	rows := make([][]string, 0, len(boards))
	for _, b := range boards {
		auth := "no"
		if b.GetMetadata(discovery.AuthKey) == "yes" {
			auth = "yes"
		}
		rows = append(rows, []string{b.Instance, b.BoardID, b.Address(), b.Hostname, auth})
	}
	return rows
}

var flashDeviceCmd = &cobra.Command{
	Use:   "flash-device <tag> <version>",
	Short: "Flash an image onto a device (not implemented)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Flashing device %s with version %s\n", args[0], args[1])
	},
}

var uploadImageCmd = &cobra.Command{
	Use:   "upload-image <tag> <version>",
	Short: "Upload an image to the image store (not implemented)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Uploading image %s with version %s\n", args[0], args[1])
	},
}
