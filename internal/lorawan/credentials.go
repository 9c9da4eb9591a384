// Package lorawan validates LoRaWAN OTAA credentials and renders them as
// compile-time definitions.
package lorawan

import (
	"fmt"

	"github.com/tyr-firmware/tyr/internal/descriptor"
)

// Required credential lengths, in hex characters.
const (
	DevEUILength = 16
	AppEUILength = 16
	AppKeyLength = 32
)

// Compile-time prefixes used when credentials are injected into a build.
const (
	DevEUIPrefix = "-DTYR_LORAWAN_DEVEUI="
	AppEUIPrefix = "-DTYR_LORAWAN_APPEUI="
	AppKeyPrefix = "-DTYR_LORAWAN_APPKEY="
)

// Credentials are the OTAA join parameters of one device.
type Credentials struct {
	DevEUI string
	AppEUI string
	AppKey string
}

// InvalidLengthError reports a credential field with the wrong length.
type InvalidLengthError struct {
	Field string
	Want  int
	Got   int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("%s must be %d characters long, got %d", e.Field, e.Want, e.Got)
}

// IsZero reports whether no credential field is set.
func (c Credentials) IsZero() bool {
	return c.DevEUI == "" && c.AppEUI == "" && c.AppKey == ""
}

// Validate checks deveui, appeui and appkey in that order and returns the
// first violation.
func (c Credentials) Validate() error {
	checks := []struct {
		field string
		value string
		want  int
	}{
		{"deveui", c.DevEUI, DevEUILength},
		{"appeui", c.AppEUI, AppEUILength},
		{"appkey", c.AppKey, AppKeyLength},
	}

	for _, check := range checks {
		if len(check.value) != check.want {
			return &InvalidLengthError{Field: check.field, Want: check.want, Got: len(check.value)}
		}
	}
	return nil
}

// Entries renders the credentials as network-level config entries.
func (c Credentials) Entries() []descriptor.ConfigEntry {
	return []descriptor.ConfigEntry{
		{CompileTimePrefix: DevEUIPrefix, Value: c.DevEUI},
		{CompileTimePrefix: AppEUIPrefix, Value: c.AppEUI},
		{CompileTimePrefix: AppKeyPrefix, Value: c.AppKey},
	}
}

// Network renders a descriptor Networks entry named name.
func (c Credentials) Network(name string) descriptor.Network {
	return descriptor.Network{
		Name:   name,
		Config: c.Entries(),
	}
}
