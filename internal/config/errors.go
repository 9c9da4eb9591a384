package config

import "fmt"

// ParseError reports a configuration file that exists but cannot be decoded.
type ParseError struct {
	// Path is the configuration file
	Path string
	// Underlying decode error
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError reports a failure to create, read or write the configuration file.
type IOError struct {
	// Op is what was being attempted ("read", "write", "create directory")
	Op string
	// Path is the file or directory involved
	Path string
	// Underlying error
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("config %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
