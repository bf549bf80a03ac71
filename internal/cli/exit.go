package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitValid      = 0
	ExitValidation = 1
	ExitUsage      = 2
)

// ExitError carries the process exit code for main.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ExitCode maps an error returned by the root command to a process exit code.
// Errors raised by cobra itself (unknown flags, wrong argument count) are
// usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitValid
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}
