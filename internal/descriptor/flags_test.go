package descriptor

import (
	"path/filepath"
	"testing"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name string
		d    *Descriptor
		want string
	}{
		{
			name: "prefix then device then network",
			d: &Descriptor{
				CompileTimeConfigPrefix: "P ",
				DeviceConfig:            []ConfigEntry{{CompileTimePrefix: "-DA=", Value: "1"}},
				NetworkConfig:           []ConfigEntry{{CompileTimePrefix: "-DB=", Value: "2"}},
			},
			want: "P -DA=1 -DB=2 ",
		},
		{
			name: "prefix only",
			d:    &Descriptor{CompileTimeConfigPrefix: "compiler.cpp.extra_flags="},
			want: "compiler.cpp.extra_flags=",
		},
		{
			name: "order preserved within groups",
			d: &Descriptor{
				DeviceConfig: []ConfigEntry{
					{CompileTimePrefix: "-DX=", Value: "1"},
					{CompileTimePrefix: "-DY=", Value: "2"},
				},
				NetworkConfig: []ConfigEntry{
					{CompileTimePrefix: "-DX=", Value: "3"},
					{CompileTimePrefix: "-DZ=", Value: "4"},
				},
			},
			want: "-DX=1 -DY=2 -DX=3 -DZ=4 ",
		},
		{
			name: "no escaping",
			d: &Descriptor{
				DeviceConfig: []ConfigEntry{{CompileTimePrefix: "-DNAME=", Value: `"my dev"`}},
			},
			want: `-DNAME="my dev" `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assemble(tt.d); got != tt.want {
				t.Errorf("Assemble() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssembleFromFile(t *testing.T) {
	d, err := Load(testDeviceID, filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := "compiler.cpp.extra_flags=" +
		"-DTYR_DEVICE_ID=216fa23d -DTYR_SEND_INTERVAL_S=300 " +
		"-DTYR_LORAWAN_DEVEUI=70B3D57ED0050A1B -DTYR_SEND_INTERVAL_S=60 "

	if got := Assemble(d); got != want {
		t.Errorf("Assemble() = %q, want %q", got, want)
	}
}
