package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Family identifies the device ecosystem a configuration targets.
type Family string

const (
	// FamilyArduino selects the Arduino toolchain (arduino-cli).
	FamilyArduino Family = "Arduino"
)

// Families lists every supported family.
var Families = []Family{FamilyArduino}

// ParseFamily parses a family name case-insensitively.
func ParseFamily(s string) (Family, error) {
	for _, f := range Families {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown family %q (supported: %s)", s, FamilyNames())
}

// FamilyNames returns the supported family names, comma separated.
func FamilyNames() string {
	names := make([]string, len(Families))
	for i, f := range Families {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// String implements fmt.Stringer
func (f Family) String() string {
	return string(f)
}

// MarshalText implements encoding.TextMarshaler
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Family) UnmarshalText(text []byte) error {
	parsed, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Config is the whole configuration file.
type Config struct {
	Family  Family        `toml:"family" json:"family"`
	Arduino ArduinoConfig `toml:"arduino" json:"arduino"`
}

// ArduinoConfig holds the settings used when Family is FamilyArduino.
type ArduinoConfig struct {
	CLIPath     string `toml:"cli_path" json:"cli_path"`         // arduino-cli binary name or path
	SketchPath  string `toml:"sketch_path" json:"sketch_path"`   // Sketch compiled for every device
	BoardType   string `toml:"board_type" json:"board_type"`     // Fully qualified board name (FQBN)
	DevicesPath string `toml:"devices_path" json:"devices_path"` // Root of per-device descriptors and images
}

// Default values for a fresh configuration.
const (
	DefaultCLIPath   = "arduino-cli"
	DefaultBoardType = "adafruit:samd:adafruit_feather_m0"
)

// Default returns the configuration written on first run. home is the
// user's home directory and anchors the default sketch and devices paths.
func Default(home string) *Config {
	return &Config{
		Family: FamilyArduino,
		Arduino: ArduinoConfig{
			CLIPath:     DefaultCLIPath,
			SketchPath:  filepath.Join(home, "Arduino", "tyr"),
			BoardType:   DefaultBoardType,
			DevicesPath: filepath.Join(home, dirName, "devices"),
		},
	}
}

// Update is a partial change applied by Store.Set. Family is always
// applied; nil or empty values leave the existing value in place, so a
// partial update can never clear a field.
type Update struct {
	Family      Family
	BoardType   *string
	SketchPath  *string
	DevicesPath *string
	CLIPath     *string
}

// Apply copies the set fields of u onto c and returns the names of the
// fields it changed, in file order.
func (u Update) Apply(c *Config) []string {
	changed := []string{"family"}
	c.Family = u.Family

	fields := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"arduino.cli_path", u.CLIPath, &c.Arduino.CLIPath},
		{"arduino.sketch_path", u.SketchPath, &c.Arduino.SketchPath},
		{"arduino.board_type", u.BoardType, &c.Arduino.BoardType},
		{"arduino.devices_path", u.DevicesPath, &c.Arduino.DevicesPath},
	}
	for _, f := range fields {
		if f.src == nil || *f.src == "" {
			continue
		}
		*f.dst = *f.src
		changed = append(changed, f.name)
	}

	return changed
}
