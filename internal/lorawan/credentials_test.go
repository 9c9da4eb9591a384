package lorawan

import (
	"errors"
	"strings"
	"testing"
)

func validCredentials() Credentials {
	return Credentials{
		DevEUI: "70B3D57ED0050A1B",
		AppEUI: "0000000000000001",
		AppKey: "2B7E151628AED2A6ABF7158809CF4F3C",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Credentials)
		wantField string
	}{
		{name: "valid", mutate: func(c *Credentials) {}},
		{name: "short deveui", mutate: func(c *Credentials) { c.DevEUI = "70B3" }, wantField: "deveui"},
		{name: "long appeui", mutate: func(c *Credentials) { c.AppEUI += "00" }, wantField: "appeui"},
		{name: "appkey 31", mutate: func(c *Credentials) { c.AppKey = c.AppKey[:31] }, wantField: "appkey"},
		{
			name: "first violation wins",
			mutate: func(c *Credentials) {
				c.AppEUI = ""
				c.AppKey = ""
			},
			wantField: "appeui",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCredentials()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			var lenErr *InvalidLengthError
			if !errors.As(err, &lenErr) {
				t.Fatalf("Validate() error = %v, want *InvalidLengthError", err)
			}
			if lenErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", lenErr.Field, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Error() = %q should name %q", err.Error(), tt.wantField)
			}
		})
	}
}

func TestEntries(t *testing.T) {
	c := validCredentials()
	entries := c.Entries()

	want := []string{
		"-DTYR_LORAWAN_DEVEUI=70B3D57ED0050A1B",
		"-DTYR_LORAWAN_APPEUI=0000000000000001",
		"-DTYR_LORAWAN_APPKEY=2B7E151628AED2A6ABF7158809CF4F3C",
	}
	if len(entries) != len(want) {
		t.Fatalf("len(Entries()) = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i].Flag() != want[i] {
			t.Errorf("Entries()[%d].Flag() = %q, want %q", i, entries[i].Flag(), want[i])
		}
	}

	network := c.Network("chirpstack")
	if network.Name != "chirpstack" || len(network.Config) != 3 {
		t.Errorf("Network() = %+v", network)
	}
}

func TestIsZero(t *testing.T) {
	if !(Credentials{}).IsZero() {
		t.Error("empty credentials should be zero")
	}
	if (Credentials{AppKey: "x"}).IsZero() {
		t.Error("credentials with appkey should not be zero")
	}
}
