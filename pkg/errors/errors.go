package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a filter script or settings parsing failure with
// optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	source := e.Path
	if source == "" {
		source = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", source, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", source, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures script or settings validation issues. Messages
// holds every failure when more than one was collected.
type ValidationError struct {
	Field    string
	Message  string
	Messages []string
	Err      error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// NewValidationFailures constructs a ValidationError listing every message.
func NewValidationFailures(field string, messages []string) error {
	return &ValidationError{
		Field:    field,
		Message:  strings.Join(messages, "; "),
		Messages: append([]string(nil), messages...),
	}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PersistenceError represents a failure to read or write a script file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

// NewPersistenceError constructs a PersistenceError for the given operation.
func NewPersistenceError(op, path string, err error) error {
	return &PersistenceError{Op: op, Path: path, Err: err}
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("persistence error: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the root error.
func (e *PersistenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
