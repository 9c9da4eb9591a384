package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDeviceID = "216fa23d-8fda-4a17-8efa-93d45796dcf3"

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), Filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")

	d, err := Load(testDeviceID, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if d.DeviceID != testDeviceID {
		t.Errorf("DeviceID = %q, want %q", d.DeviceID, testDeviceID)
	}
	if d.CompileTimeConfigPrefix != "compiler.cpp.extra_flags=" {
		t.Errorf("CompileTimeConfigPrefix = %q", d.CompileTimeConfigPrefix)
	}
	if len(d.DeviceConfig) != 2 {
		t.Fatalf("len(DeviceConfig) = %d, want 2", len(d.DeviceConfig))
	}
	if d.DeviceConfig[1].Flag() != "-DTYR_SEND_INTERVAL_S=300" {
		t.Errorf("DeviceConfig[1].Flag() = %q", d.DeviceConfig[1].Flag())
	}
	if d.NetworkName != "chirpstack-us915" {
		t.Errorf("NetworkName = %q", d.NetworkName)
	}
	if len(d.NetworkConfig) != 2 {
		t.Fatalf("len(NetworkConfig) = %d, want 2", len(d.NetworkConfig))
	}
	if d.NetworkCount != 2 {
		t.Errorf("NetworkCount = %d, want 2", d.NetworkCount)
	}
	if d.Path != path {
		t.Errorf("Path = %q, want %q", d.Path, path)
	}
}

func TestLoadDeviceIDMismatch(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")

	_, err := Load("216fa23d-8fda-4a17-8efa-93d45796dcf4", path)

	var mismatch *DeviceIDMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Load() error = %v, want *DeviceIDMismatchError", err)
	}
	if mismatch.Actual != testDeviceID {
		t.Errorf("Actual = %q, want %q", mismatch.Actual, testDeviceID)
	}
}

func TestLoadMatchAndMismatch(t *testing.T) {
	path := writeDescriptor(t, `
Device: {id: abc}
CompileTimeConfigPrefix: ""
DeviceConfig: []
Networks:
  - config: []
`)

	if _, err := Load("abc", path); err != nil {
		t.Errorf("Load(abc) error = %v", err)
	}

	_, err := Load("xyz", path)
	var mismatch *DeviceIDMismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("Load(xyz) error = %v, want *DeviceIDMismatchError", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", Filename)

	_, err := Load("abc", path)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Load() error = %v, want *NotFoundError", err)
	}
	if notFound.Path != path {
		t.Errorf("NotFoundError.Path = %q, want %q", notFound.Path, path)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{
			name:      "malformed yaml",
			content:   "Device: [unclosed",
			wantField: "",
		},
		{
			name:      "empty document",
			content:   "",
			wantField: "",
		},
		{
			name:      "top level sequence",
			content:   "- a\n- b\n",
			wantField: "",
		},
		{
			name:      "missing Device",
			content:   "CompileTimeConfigPrefix: p\nDeviceConfig: []\nNetworks: [{config: []}]\n",
			wantField: "Device",
		},
		{
			name:      "missing Device.id",
			content:   "Device: {name: x}\nCompileTimeConfigPrefix: p\nDeviceConfig: []\nNetworks: [{config: []}]\n",
			wantField: "Device.id",
		},
		{
			name:      "numeric Device.id",
			content:   "Device: {id: 42}\nCompileTimeConfigPrefix: p\nDeviceConfig: []\nNetworks: [{config: []}]\n",
			wantField: "Device.id",
		},
		{
			name:      "missing prefix",
			content:   "Device: {id: abc}\nDeviceConfig: []\nNetworks: [{config: []}]\n",
			wantField: "CompileTimeConfigPrefix",
		},
		{
			name:      "DeviceConfig not a sequence",
			content:   "Device: {id: abc}\nCompileTimeConfigPrefix: p\nDeviceConfig: {a: b}\nNetworks: [{config: []}]\n",
			wantField: "DeviceConfig",
		},
		{
			name:      "DeviceConfig entry missing value",
			content:   "Device: {id: abc}\nCompileTimeConfigPrefix: p\nDeviceConfig: [{compile_time_prefix: -DA=}]\nNetworks: [{config: []}]\n",
			wantField: "DeviceConfig[0].value",
		},
		{
			name:      "DeviceConfig entry scalar",
			content:   "Device: {id: abc}\nCompileTimeConfigPrefix: p\nDeviceConfig: [oops]\nNetworks: [{config: []}]\n",
			wantField: "DeviceConfig[0]",
		},
		{
			name:      "missing Networks",
			content:   "Device: {id: abc}\nCompileTimeConfigPrefix: p\nDeviceConfig: []\n",
			wantField: "Networks",
		},
		{
			name:      "empty Networks",
			content:   "Device: {id: abc}\nCompileTimeConfigPrefix: p\nDeviceConfig: []\nNetworks: []\n",
			wantField: "Networks",
		},
		{
			name:      "Networks[0] missing config",
			content:   "Device: {id: abc}\nCompileTimeConfigPrefix: p\nDeviceConfig: []\nNetworks: [{name: n}]\n",
			wantField: "Networks[0].config",
		},
		{
			name:      "network value is a number",
			content:   "Device: {id: abc}\nCompileTimeConfigPrefix: p\nDeviceConfig: []\nNetworks: [{config: [{compile_time_prefix: -DB=, value: 2}, {compile_time_prefix: -DC=, value: x}]}]\n",
			wantField: "Networks[0].config[0].value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("config.yaml", []byte(tt.content))

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Parse() error = %v, want *ParseError", err)
			}
			if parseErr.Field != tt.wantField {
				t.Errorf("ParseError.Field = %q, want %q (%v)", parseErr.Field, tt.wantField, err)
			}
			if tt.wantField != "" && !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q should name field %q", err.Error(), tt.wantField)
			}
		})
	}
}

func TestParseOnlyFirstNetworkIsValidated(t *testing.T) {
	content := "Device: {id: abc}\nCompileTimeConfigPrefix: p\nDeviceConfig: []\nNetworks: [{config: []}, {bogus: true}]\n"

	d, err := Parse("config.yaml", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.NetworkCount != 2 {
		t.Errorf("NetworkCount = %d, want 2", d.NetworkCount)
	}
}

func TestParseAliases(t *testing.T) {
	content := `
common: &common
  - compile_time_prefix: "-DA="
    value: "1"
Device: {id: abc}
CompileTimeConfigPrefix: p
DeviceConfig: *common
Networks: [{config: *common}]
`
	d, err := Parse("config.yaml", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := Assemble(d); got != "p-DA=1 -DA=1 " {
		t.Errorf("Assemble() = %q", got)
	}
}
