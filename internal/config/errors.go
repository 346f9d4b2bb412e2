package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig is matched by every ValidationError.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnsupportedFormat indicates a file extension other than .toml,
	// .yaml or .yml.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ProblemCode categorizes validation problems.
type ProblemCode uint8

const (
	// CodeInvalidEnum indicates the value is not one of the allowed names.
	CodeInvalidEnum ProblemCode = iota
	// CodeOutOfRange indicates a numeric value is out of range.
	CodeOutOfRange
	// CodeRequiredMissing indicates a required setting is missing.
	CodeRequiredMissing
	// CodeInvalidValue indicates a value that could not be interpreted.
	CodeInvalidValue
)

// String returns a human-readable name for the code.
func (c ProblemCode) String() string {
	switch c {
	case CodeInvalidEnum:
		return "invalid_enum"
	case CodeOutOfRange:
		return "out_of_range"
	case CodeRequiredMissing:
		return "required_missing"
	case CodeInvalidValue:
		return "invalid_value"
	default:
		return "unknown"
	}
}

// Problem is one validation failure.
type Problem struct {
	// Path is the setting path, e.g. "shortcuts[2].inline".
	Path    string
	Message string
	Code    ProblemCode
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []Problem
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Unwrap returns ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}
