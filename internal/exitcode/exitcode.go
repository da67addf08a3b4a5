package exitcode

import (
	stderrors "errors"
	"os"

	"github.com/felixgeelhaar/tidygate/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution, including the clean-tree early exit
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// CommandFailed indicates the command-failure gate aborted the run
	CommandFailed = 3

	// DiffDetected indicates the diff gate found uncommitted changes
	DiffDetected = 4

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var tgErr *errors.TidygateError
	if stderrors.As(err, &tgErr) {
		switch tgErr.Code {
		case errors.ErrCodeGateCommands:
			return CommandFailed
		case errors.ErrCodeGateDiff:
			return DiffDetected
		case errors.ErrCodeConfigNoCommands, errors.ErrCodeConfigFileInvalid, errors.ErrCodeConfigBadBool:
			return UsageError
		}
	}

	return GeneralError
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case CommandFailed:
		return "One or more commands failed"
	case DiffDetected:
		return "Uncommitted changes detected"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
