// Package urls provides centralized constants for the documentation URLs
// shown in error messages and troubleshooting tips.
//
// Usage:
//
//	import "github.com/tyr-firmware/tyr/internal/urls"
//
//	fmt.Printf("Install arduino-cli: %s\n", urls.ArduinoCLIInstall)
package urls
