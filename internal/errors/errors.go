// Package errors defines the stable error codes the CLI surfaces. The
// diagram core itself never fails; these codes cover the boundary layer
// around it: parsing, traversal, configuration, caching, and output.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParserUnavailable indicates the build has no tree-sitter support
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// ParseFailed indicates a source file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// NoSources indicates no Python files were found under the input path
	NoSources ErrorCode = "NO_SOURCES"
	// ConfigInvalid indicates a malformed configuration file or flag value
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// CacheUnavailable indicates the render cache could not be opened
	CacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	// OutputFailed indicates rendered output could not be written
	OutputFailed ErrorCode = "OUTPUT_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Safe        bool   `json:"safe,omitempty"`
	Description string `json:"description,omitempty"`
}

// Error carries a stable code, a human message, and an optional cause.
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates a coded error wrapping an optional cause.
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// errorActions maps error codes to suggested fix actions
var errorActions = map[ErrorCode][]FixAction{
	CacheUnavailable: {
		{
			Command:     "classmap cache clear",
			Safe:        true,
			Description: "Reset the render cache",
		},
	},
	NoSources: {
		{
			Command:     "classmap --extend-exclude ''",
			Safe:        true,
			Description: "Check whether exclude patterns filtered everything out",
		},
	},
	ConfigInvalid: {
		{
			Command:     "classmap --help",
			Safe:        true,
			Description: "Review flag and configuration file syntax",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	return errorActions[code]
}
