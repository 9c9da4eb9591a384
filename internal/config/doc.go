// Package config manages the tyr configuration file.
//
// The configuration is a single TOML document describing the active device
// family and the per-family build settings. It lives at a fixed per-user
// location:
//
//	<home>/.tyr/config.toml
//
// The file is created lazily: the first Load on a path with no file writes
// the defaults there and returns them. After that the file is only changed
// by Set, which applies partial overrides and rewrites the whole document.
// Empty override values are ignored, so Set never clears a field.
//
// # File Format
//
//	family = "Arduino"
//
//	[arduino]
//	  cli_path = "arduino-cli"
//	  sketch_path = "/home/op/Arduino/tyr"
//	  board_type = "adafruit:samd:adafruit_feather_m0"
//	  devices_path = "/home/op/.tyr/devices"
//
// # Usage Example
//
//	store := config.NewStore(path, logger)
//	cfg, err := store.Load()
//	if err != nil {
//	    return err
//	}
//
//	board := "arduino:avr:uno"
//	_, err = store.Set(config.Update{Family: config.FamilyArduino, BoardType: &board})
//
// # Concurrency
//
// There is no locking. Concurrent tyr processes doing read-modify-write on
// the same file lose updates; the last writer wins.
package config
