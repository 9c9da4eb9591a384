// Package logging provides structured logging for the tyr CLI.
//
// This package wraps a global zap logger. The level is chosen once per
// process, from the --log-level flag or the TYR_LOG_LEVEL environment
// variable, and defaults to "info".
//
// # Configuration
//
//	if err := logging.Initialize(levelFlag); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Library packages take a *zap.Logger in their constructors rather than
// reaching for the global; pass logging.GetLogger() from the command layer.
//
// # Output Format
//
// Logs are written to stderr in console format so that stdout carries only
// command output (config dumps, toolchain output, YAML snippets):
//
//	2026-10-19T10:30:45.123+0200  INFO  runner/runner.go:88  running command  {"argv": ["arduino-cli", "board", "list"]}
package logging
