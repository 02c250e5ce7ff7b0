package model

import (
	"errors"
	"fmt"
)

// ErrUnsupportedInput means an input to presentation assembly was of an
// unrecognized type, or a locator payload was accessed inconsistently with
// its kind (e.g. the path of a plain web URL).
var ErrUnsupportedInput = errors.New("unsupported input")

// NotFoundError is returned when a path-backed locator points at a file that
// does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Severity classifies how a viewer automation failure should be handled
type Severity string

const (
	// SeverityIgnore means the failure is suppressed
	SeverityIgnore Severity = "ignore"

	// SeverityWarning means the failure is logged and processing continues
	SeverityWarning Severity = "warning"

	// SeverityError means the failure is fatal
	SeverityError Severity = "error"
)

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// AutomationError is reported by a viewer backend when the platform
// automation call failed.
type AutomationError struct {
	Command string
	Output  string
}

func (e *AutomationError) Error() string {
	return fmt.Sprintf("could not invoke <%s>: %s", e.Command, e.Output)
}
