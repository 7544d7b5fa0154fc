package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUsage           = errors.New("usage")
	ErrConfig          = errors.New("invalid configuration")
	ErrMalformedHeader = errors.New("malformed input header")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDocumentLoad    = errors.New("document load failed")
	ErrOutput          = errors.New("writing output")
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// AppError ties a sentinel to an exit code. Cause, when set, is the
// underlying error and stays reachable through errors.Is and errors.As.
type AppError struct {
	Err      error
	Message  string
	ExitCode int
	Cause    error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Err.Error(), e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// Wrapf is Newf with an underlying cause.
func Wrapf(sentinel error, exitCode int, cause error, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
		Cause:    cause,
	}
}

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}
