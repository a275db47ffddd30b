// Package errors provides error handling for sdlppx.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//   - Marker sentinels that survive wrapping
//
// Usage:
//
//	// Wrap with context
//	if err := a.Close(); err != nil {
//	    return errors.Wrap(err, "failed to commit archive")
//	}
//
//	// Classify a failure without losing its message
//	return errors.Mark(errors.Newf("store %s does not exist", path), errors.ErrMissingInput)
//
//	// Check classification
//	if errors.IsMissingInput(err) {
//	    // report and exit with the step's status
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	FlattenHints  = crdb.FlattenHints
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Error inspection and classification
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	Mark          = crdb.Mark
	CombineErrors = crdb.CombineErrors
)

// GetStack returns the stack trace attached to err, if any.
var GetStack = crdb.GetReportableStackTrace

// Sentinel errors for the failure taxonomy of a conversion run.
// Attach them with Mark so the original message is kept.
var (
	// ErrMissingInput indicates an archive, descriptor, store or directory is absent
	ErrMissingInput = New("missing input")

	// ErrMalformedRecord indicates one record's embedded document could not be parsed
	ErrMalformedRecord = New("malformed record")

	// ErrPersistence indicates a temporary write, entry swap or archive commit failed
	ErrPersistence = New("persistence failure")

	// ErrUnsupported indicates a value outside the supported set (package type, format, layout)
	ErrUnsupported = New("unsupported")
)

// IsMissingInput checks if an error is marked with ErrMissingInput
func IsMissingInput(err error) bool {
	return err != nil && Is(err, ErrMissingInput)
}

// IsMalformedRecord checks if an error is marked with ErrMalformedRecord
func IsMalformedRecord(err error) bool {
	return err != nil && Is(err, ErrMalformedRecord)
}

// IsPersistence checks if an error is marked with ErrPersistence
func IsPersistence(err error) bool {
	return err != nil && Is(err, ErrPersistence)
}

// IsUnsupported checks if an error is marked with ErrUnsupported
func IsUnsupported(err error) bool {
	return err != nil && Is(err, ErrUnsupported)
}

// NewMissingInputf creates a missing-input error with a formatted message
func NewMissingInputf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrMissingInput)
}

// NewMalformedRecordf creates a malformed-record error with a formatted message
func NewMalformedRecordf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrMalformedRecord)
}

// NewUnsupportedf creates an unsupported-value error with a formatted message
func NewUnsupportedf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnsupported)
}

// WrapPersistence wraps err with context and marks it as a persistence failure
func WrapPersistence(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrPersistence)
}
