// Package descriptor loads per-device YAML descriptors and renders them into
// compiler build flags.
//
// Each device has a descriptor at <devices_path>/<device_id>/config.yaml.
// Descriptors are written by hand (or by provisioning tooling) and are only
// ever read here:
//
//	Device:
//	  id: 216fa23d-8fda-4a17-8efa-93d45796dcf3
//	CompileTimeConfigPrefix: "compiler.cpp.extra_flags="
//	DeviceConfig:
//	  - compile_time_prefix: "-DTYR_DEVICE_ID="
//	    value: "216fa23d"
//	Networks:
//	  - name: chirpstack
//	    config:
//	      - compile_time_prefix: "-DTYR_LORAWAN_REGION="
//	        value: "US915"
//
// Load validates the document field by field and reports the first missing
// or wrong-typed field as a *ParseError carrying its path (for example
// "Networks[0].config[1].value"). Only the first entry of Networks is used.
//
// Assemble concatenates the prefix, the device entries and then the network
// entries. Order matters: when the same macro is defined twice the compiler
// keeps the last definition, so network entries override device entries.
// Values are not quoted or escaped.
package descriptor
