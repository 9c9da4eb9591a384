package descriptor

import "fmt"

// NotFoundError reports a descriptor path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("device descriptor %s does not exist", e.Path)
}

// ParseError reports malformed YAML or a missing/wrong-typed field.
type ParseError struct {
	// Path is the descriptor file
	Path string
	// Field is the dotted field path, empty for document-level errors
	Field string
	// Reason describes what is wrong with Field
	Reason string
	// Underlying YAML error if any
	Err error
}

func (e *ParseError) Error() string {
	switch {
	case e.Field == "" && e.Err != nil:
		return fmt.Sprintf("malformed device descriptor %s: %v", e.Path, e.Err)
	case e.Field == "":
		return fmt.Sprintf("malformed device descriptor %s: %s", e.Path, e.Reason)
	default:
		return fmt.Sprintf("malformed device descriptor %s: field %s: %s", e.Path, e.Field, e.Reason)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeviceIDMismatchError reports a descriptor whose Device.id differs from
// the device id it was loaded for.
type DeviceIDMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *DeviceIDMismatchError) Error() string {
	return fmt.Sprintf("Device.id %q in %s does not match device id %q", e.Actual, e.Path, e.Expected)
}
