package main

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tyr-firmware/tyr/internal/descriptor"
	"github.com/tyr-firmware/tyr/internal/inventory"
	"github.com/tyr-firmware/tyr/internal/lorawan"
	"github.com/tyr-firmware/tyr/internal/ui"
)

// Credential flags, shared by provision add-network and manufacture create-image
var (
	devEUI string
	appEUI string
	appKey string
)

func init() {
	rootCmd.AddCommand(provisionCmd)
	provisionCmd.AddCommand(provisionListDevicesCmd)
	provisionCmd.AddCommand(provisionAddNetworkCmd)

	addCredentialFlags(provisionAddNetworkCmd)
}

// addCredentialFlags registers the LoRaWAN OTAA credential flags on cmd.
func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&devEUI, "deveui", "", fmt.Sprintf("LoRaWAN DevEUI (%d hex characters)", lorawan.DevEUILength))
	cmd.Flags().StringVar(&appEUI, "appeui", "", fmt.Sprintf("LoRaWAN AppEUI/JoinEUI (%d hex characters)", lorawan.AppEUILength))
	cmd.Flags().StringVar(&appKey, "appkey", "", fmt.Sprintf("LoRaWAN AppKey (%d hex characters)", lorawan.AppKeyLength))
}

// credentialsFromFlags returns the credentials given on the command line.
func credentialsFromFlags() lorawan.Credentials {
	return lorawan.Credentials{
		DevEUI: devEUI,
		AppEUI: appEUI,
		AppKey: appKey,
	}
}

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Manage device network credentials",
}

var provisionListDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List devices with their network settings",
	Long: `List every device with a valid descriptor together with the network
its images are built for (the first entry of Networks).`,
	Args: cobra.NoArgs,
	RunE: runProvisionListDevices,
}

func runProvisionListDevices(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	e, err := loadEnv()
	if err != nil {
		return err
	}

	devices, err := inventory.List(e.config.Arduino.DevicesPath, e.logger)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, d := range devices {
		if d.Descriptor == nil {
			continue
		}
		name := d.Descriptor.NetworkName
		if name == "" {
			name = "(unnamed)"
		}
		rows = append(rows, []string{
			d.ID,
			name,
			strconv.Itoa(len(d.Descriptor.NetworkConfig)),
			strconv.Itoa(d.Descriptor.NetworkCount),
		})
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintTable(
		[]string{"DEVICE", "NETWORK", "DEFINES", "NETWORKS"},
		rows,
		"No provisioned devices in "+e.config.Arduino.DevicesPath,
	)
	return nil
}

var provisionAddNetworkCmd = &cobra.Command{
	Use:   "add-network <tag> <name>",
	Short: "Render a LoRaWAN network block for a device descriptor",
	Long: `Validate LoRaWAN OTAA credentials and print the descriptor network
block that carries them.

The block is printed, not written: paste it at the top of the Networks
sequence in the device's config.yaml to make it the network images are
built for.`,
	Example: `  tyr provision add-network 216fa23d-8fda-4a17-8efa-93d45796dcf3 ttn \
    --deveui 0011223344556677 --appeui 70B3D57ED0000000 \
    --appkey 00112233445566778899AABBCCDDEEFF`,
	Args: cobra.ExactArgs(2),
	RunE: runProvisionAddNetwork,
}

func runProvisionAddNetwork(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	tag, name := args[0], args[1]

	creds := credentialsFromFlags()
	if err := creds.Validate(); err != nil {
		return err
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}

	block, err := renderNetworks(creds.Network(name))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "# Add under Networks: in %s\n", inventory.DescriptorPath(e.config.Arduino.DevicesPath, tag))
	_, _ = fmt.Fprint(out, block)
	return nil
}

// renderNetworks encodes networks as a YAML sequence with two-space
// indentation, matching hand-written descriptors.
func renderNetworks(networks ...descriptor.Network) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(networks); err != nil {
		return "", fmt.Errorf("failed to encode network block: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode network block: %w", err)
	}
	return buf.String(), nil
}
