package descriptor

import "strings"

// Assemble renders the build flags for d: CompileTimeConfigPrefix, then
// every DeviceConfig flag followed by a space, then every NetworkConfig
// flag followed by a space.
func Assemble(d *Descriptor) string {
	var sb strings.Builder

	sb.WriteString(d.CompileTimeConfigPrefix)
	for _, e := range d.DeviceConfig {
		sb.WriteString(e.Flag())
		sb.WriteByte(' ')
	}
	for _, e := range d.NetworkConfig {
		sb.WriteString(e.Flag())
		sb.WriteByte(' ')
	}

	return sb.String()
}
