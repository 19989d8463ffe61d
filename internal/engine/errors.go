package engine

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeStoreUnavailable indicates the record store could not be
	// opened or queried. Nothing is retried.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	// ErrCodeScratchCreateFailed indicates no scratch directory could be
	// created. The tool is never run without one.
	ErrCodeScratchCreateFailed ErrorCode = "SCRATCH_CREATE_FAILED"

	// ErrCodeDatabaseNotFound indicates the named database or permutation
	// does not exist in the archive.
	ErrCodeDatabaseNotFound ErrorCode = "DATABASE_NOT_FOUND"

	// ErrCodeInvalidArgument indicates a malformed request.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeExtractionFailed indicates an extraction tool failed or did
	// not produce its output.
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"

	// ErrCodeCertificateInvalid indicates the inequality certificate
	// written by the tool could not be decoded.
	ErrCodeCertificateInvalid ErrorCode = "CERTIFICATE_INVALID"
)

// Error is an engine failure with a stable code.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Token identifies the request.
	Token string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Token != "" {
		msg += fmt.Sprintf(" (request=%s)", e.Token)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, token string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Token:   token,
		Err:     err,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
// Uses errors.As to handle wrapped errors.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsStoreUnavailable reports whether err is a store failure.
func IsStoreUnavailable(err error) bool {
	return IsCode(err, ErrCodeStoreUnavailable)
}

// IsNotFound reports whether err is a missing database or permutation.
func IsNotFound(err error) bool {
	return IsCode(err, ErrCodeDatabaseNotFound)
}
