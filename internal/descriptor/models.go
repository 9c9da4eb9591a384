package descriptor

// Filename is the descriptor file name inside a device directory.
const Filename = "config.yaml"

// ConfigEntry is one compile-time definition: the rendered flag is
// CompileTimePrefix immediately followed by Value.
type ConfigEntry struct {
	CompileTimePrefix string `yaml:"compile_time_prefix"`
	Value             string `yaml:"value"`
}

// Flag renders the entry as a single compiler flag.
func (e ConfigEntry) Flag() string {
	return e.CompileTimePrefix + e.Value
}

// Network is one entry of the descriptor's Networks sequence.
type Network struct {
	Name   string        `yaml:"name,omitempty"`
	Config []ConfigEntry `yaml:"config"`
}

// Descriptor is a validated device descriptor.
type Descriptor struct {
	// Path is the file the descriptor was read from
	Path string
	// DeviceID is Device.id
	DeviceID string
	// CompileTimeConfigPrefix is emitted before all derived flags
	CompileTimeConfigPrefix string
	// DeviceConfig holds the device-level definitions, in file order
	DeviceConfig []ConfigEntry
	// NetworkName is Networks[0].name, empty when absent
	NetworkName string
	// NetworkConfig holds Networks[0].config, in file order
	NetworkConfig []ConfigEntry
	// NetworkCount is the length of the Networks sequence
	NetworkCount int
}
