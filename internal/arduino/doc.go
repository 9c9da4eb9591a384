// Package arduino drives the arduino-cli toolchain.
//
// The toolchain is an opaque external binary. This package only builds its
// command lines and interprets exit status; the actual compile, board
// discovery and install checks happen in the subprocess:
//
//	<cli> version --format json
//	<cli> board list
//	<cli> compile -e -b <board> --build-property <flags> --output-dir <dir> <sketch>
//
// The binary is the configured cli_path (default "arduino-cli") for every
// invocation.
package arduino
