// Package domainerrors provides coded errors shared by every analysis
// component. Codes classify failures for the run summary and for callers
// that need to distinguish fatal configuration errors from per-entity ones;
// the underlying cockroachdb/errors wrapping preserves stacks and chains.
package domainerrors

import (
	"github.com/cockroachdb/errors"
)

// Code identifies the failure class of a domain error.
type Code string

const (
	// CodeGeometry covers invalid rotations and overlapping tray layouts.
	// Fatal: aborts the whole analysis run.
	CodeGeometry Code = "geometry"

	// CodeAlignment covers inconsistent or unsorted raw temperature
	// readings. Fatal: aborts the whole analysis run.
	CodeAlignment Code = "alignment"

	// CodeDetection covers structural reference errors in a well's
	// observation stream. Fatal for that well only.
	CodeDetection Code = "detection"

	// CodeAggregation covers regions that resolve to zero wells. The
	// region is skipped; siblings continue.
	CodeAggregation Code = "aggregation"

	// CodeConcentration covers structurally inconsistent concentration
	// input (zero-droplet regions). Same isolation as aggregation.
	CodeConcentration Code = "concentration"

	// CodeInvalidInput covers malformed values at construction boundaries.
	CodeInvalidInput Code = "invalid_input"

	// CodeNotFound covers missing entity references.
	CodeNotFound Code = "not_found"

	// CodeConflict covers duplicate identifiers and sequence collisions.
	CodeConflict Code = "conflict"

	// CodeInternal covers unexpected failures with no better class.
	CodeInternal Code = "internal"
)

// codedError attaches a Code to an error chain. It wraps rather than
// replaces so errors.Is/As keep working through it.
type codedError struct {
	code  Code
	cause error
}

func (e *codedError) Error() string { return string(e.code) + ": " + e.cause.Error() }
func (e *codedError) Unwrap() error { return e.cause }

// New creates a coded error with the given message.
func New(code Code, msg string) error {
	return &codedError{code: code, cause: errors.NewWithDepth(1, msg)}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &codedError{code: code, cause: errors.NewWithDepthf(1, format, args...)}
}

// Wrap annotates err with a code and message. Returns nil if err is nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, cause: errors.WrapWithDepth(1, err, msg)}
}

// Wrapf annotates err with a code and formatted message. Returns nil if
// err is nil.
func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, cause: errors.WrapWithDepthf(1, err, format, args...)}
}

// Is reports whether any error in err's chain carries the given code.
func Is(err error, code Code) bool {
	for err != nil {
		if ce := (*codedError)(nil); errors.As(err, &ce) {
			if ce.code == code {
				return true
			}
			err = ce.cause
			continue
		}
		return false
	}
	return false
}

// CodeOf returns the outermost code in err's chain, or CodeInternal when
// the chain carries none.
func CodeOf(err error) Code {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return CodeInternal
}
