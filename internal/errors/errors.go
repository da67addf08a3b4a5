package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNoCommands  ErrorCode = "CONFIG-001"
	ErrCodeConfigFileInvalid ErrorCode = "CONFIG-002"
	ErrCodeConfigBadBool     ErrorCode = "CONFIG-003"

	// Command execution errors (CMD-001 to CMD-099)
	ErrCodeCommandExit  ErrorCode = "CMD-001"
	ErrCodeCommandSpawn ErrorCode = "CMD-002"

	// Git inspector errors (GIT-001 to GIT-099)
	ErrCodeGitStatus ErrorCode = "GIT-001"
	ErrCodeGitDiff   ErrorCode = "GIT-002"

	// Gate errors (GATE-001 to GATE-099)
	ErrCodeGateCommands ErrorCode = "GATE-001"
	ErrCodeGateDiff     ErrorCode = "GATE-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeOutputWrite   ErrorCode = "IO-001"
	ErrCodeSummaryWrite  ErrorCode = "IO-002"
	ErrCodeManifestWrite ErrorCode = "IO-003"
)

// TidygateError represents an enhanced error with code and suggestions
type TidygateError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *TidygateError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// OneLine returns the "CODE: message" form used for CI failure signals,
// without suggestions or cause chains.
func (e *TidygateError) OneLine() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *TidygateError) Unwrap() error {
	return e.Cause
}

// New creates a new TidygateError
func New(code ErrorCode, message string) *TidygateError {
	return &TidygateError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new TidygateError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *TidygateError {
	return &TidygateError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *TidygateError) WithSuggestion(suggestion string) *TidygateError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *TidygateError) WithSuggestions(suggestions ...string) *TidygateError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors

// NewNoCommandsError creates an error for an empty command list
func NewNoCommandsError() *TidygateError {
	return New(ErrCodeConfigNoCommands, "no commands configured").
		WithSuggestion("Pass commands with --run or the TIDYGATE_RUN environment variable").
		WithSuggestion("Commands are one per line; blank lines are ignored")
}

// NewCommandGateError creates the fatal error for the command-failure gate.
// Details carries one line per failed command.
func NewCommandGateError(count int, details string) *TidygateError {
	return New(ErrCodeGateCommands, fmt.Sprintf("%d command(s) failed:\n%s", count, details)).
		WithSuggestion("Run the failing commands locally to reproduce").
		WithSuggestion("Set --fail-on-command-error=false to report failures without aborting")
}

// NewDiffGateError creates the fatal error for the diff gate
func NewDiffGateError(failMessage string) *TidygateError {
	return New(ErrCodeGateDiff, failMessage).
		WithSuggestion("Run the configured commands locally and commit the resulting changes")
}
