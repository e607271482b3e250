// Package errors defines the structured error type shared by the URL
// builder core and dialects.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies error types for targeted handling.
type Kind string

const (
	// KindConfig covers missing or invalid signing configuration.
	KindConfig Kind = "config"
	// KindConflict covers mutually exclusive operations requested together.
	KindConflict Kind = "conflict"
	// KindInvalidArgument covers out-of-range or malformed arguments.
	KindInvalidArgument Kind = "invalid_argument"
	// KindUnsupported covers capabilities a dialect does not implement.
	KindUnsupported Kind = "unsupported"
)

// BuildError is the structured error type used throughout the module.
type BuildError struct {
	Kind Kind
	Op   string // operation or filter name
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// New creates a BuildError.
func New(kind Kind, op string, err error) *BuildError {
	return &BuildError{Kind: kind, Op: op, Err: err}
}

// Config creates a configuration BuildError.
func Config(op string, err error) *BuildError { return New(KindConfig, op, err) }

// Conflict creates a conflicting-operation BuildError.
func Conflict(op string, err error) *BuildError { return New(KindConflict, op, err) }

// InvalidArgument creates an invalid-argument BuildError.
func InvalidArgument(op string, err error) *BuildError {
	return New(KindInvalidArgument, op, err)
}

// Unsupported creates an unsupported-capability BuildError.
func Unsupported(op string, err error) *BuildError { return New(KindUnsupported, op, err) }

// Invalidf creates an invalid-argument BuildError from a format string.
func Invalidf(op, format string, args ...interface{}) *BuildError {
	return InvalidArgument(op, fmt.Errorf(format, args...))
}

// IsKind reports whether err belongs to the given kind.
func IsKind(err error, kind Kind) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// Sentinel errors for common failure modes.
var (
	ErrMissingKey           = errors.New("signing key is required")
	ErrUnsupportedAlgorithm = errors.New("unsupported signer algorithm")
	ErrFitStretchConflict   = errors.New("use either fit-in or stretch, not both")
	ErrUnknownCapability    = errors.New("unknown capability")
)
