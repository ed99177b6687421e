// Package errors is the one import infra code uses for errors: stdlib matching
// plus pkg/errors stack traces, and a helper for failures that need cleanup.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error that formats as the given text.
// Sentinels built with New carry no stack; wrap them at the call site.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Wrap annotates err with a stack trace and message. A nil err stays nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack annotates err with a stack trace at the call site.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// WithMessage annotates err with a message, without a new stack.
func WithMessage(err error, message string) error {
	return pkgerrors.WithMessage(err, message)
}

// Errorf formats a new error carrying a stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// Cause returns the innermost error of a pkg/errors chain.
//
//nolint:wrapcheck // Compatibility passthrough to preserve pkg/errors semantics.
func Cause(err error) error {
	return pkgerrors.Cause(err)
}

// WrapCleanup wraps err like Wrap and runs cleanup, joining its failure so a
// half-written temp file or open handle is reported instead of dropped.
func WrapCleanup(err error, message string, cleanup func() error) error {
	wrapped := pkgerrors.Wrap(err, message)
	if cleanupErr := cleanup(); cleanupErr != nil {
		return stderrors.Join(wrapped, pkgerrors.Wrap(cleanupErr, "cleanup failed"))
	}

	return wrapped
}
