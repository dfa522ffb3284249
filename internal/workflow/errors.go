package workflow

import (
	"fmt"
	"strings"
)

// ReadError reports that a workflow file could not be read
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ParseError reports that a workflow file is not valid JSON. The message is
// the parser's own.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a required top-level key that is absent
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required key: %s", e.Field)
}

// ShapeError reports a required field holding the wrong kind of value
type ShapeError struct {
	Field    string
	Expected string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s must be %s", e.Field, e.Expected)
}

// SchemaError reports violations of a user-supplied JSON Schema.
// Violations are "<location>: <reason>" strings, first one reported.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	if len(e.Violations) == 0 {
		return "schema violation"
	}
	msg := "schema violation: " + oneLine(e.Violations[0])
	if n := len(e.Violations) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// ConnectionError reports a connection that refers to an unknown node
type ConnectionError struct {
	Message string
}

func (e *ConnectionError) Error() string {
	return e.Message
}

// oneLine collapses multi-line messages so every result stays on one line
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
