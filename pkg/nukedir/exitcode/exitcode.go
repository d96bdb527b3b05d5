// Package exitcode defines the process exit-code contract for nukedir.
// The codes form the operational contract with scripts and operators
// wrapping the tool.
package exitcode

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes.
const (
	// Success indicates all requested targets were processed.
	Success = 0

	// Fatal indicates a whole-run failure: missing privilege, a root or
	// mount-point target, a missing external tool, or an rsync failure.
	Fatal = 1

	// MissingArgument indicates an option that requires an argument was
	// given without one.
	MissingArgument = 2

	// InvalidOption indicates an unrecognized option, matching EINVAL.
	InvalidOption = 22
)

// Error pairs an error with the exit code the process should terminate with.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches an exit code to err. A nil err returns nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// Errorf formats an error carrying the given exit code.
func Errorf(code int, format string, args ...any) error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// FromError maps an error to an exit code. Flag-parsing errors surfaced by
// pflag are recognized by message since pflag does not export error types.
func FromError(err error) int {
	if err == nil {
		return Success
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "unknown flag"),
		strings.Contains(msg, "unknown shorthand flag"),
		strings.Contains(msg, "bad flag syntax"):
		return InvalidOption
	case strings.Contains(msg, "needs an argument"),
		// A value token that itself starts with "-" means the real
		// argument was omitted, not malformed.
		strings.Contains(msg, `invalid argument "-`):
		return MissingArgument
	}

	return Fatal
}
