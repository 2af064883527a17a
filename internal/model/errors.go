package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an analysis did not produce a result.
type ErrorKind int

const (
	// KindInvalidInput means the URL was empty or could not be normalized.
	// Callers should report it as a client error.
	KindInvalidInput ErrorKind = iota

	// KindInternalFailure means an unexpected fault occurred while
	// aggregating. The cause is logged but never shown to the client.
	KindInternalFailure
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindInternalFailure:
		return "internal_failure"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidInput matches any AnalysisError of kind KindInvalidInput.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternalFailure matches any AnalysisError of kind KindInternalFailure.
	ErrInternalFailure = errors.New("internal failure")
)

// AnalysisError is returned by the analyzer instead of a result.
type AnalysisError struct {
	Kind ErrorKind
	Err  error
}

// NewInvalidInputError wraps err as an invalid-input failure.
func NewInvalidInputError(err error) *AnalysisError {
	return &AnalysisError{Kind: KindInvalidInput, Err: err}
}

// NewInternalFailureError wraps err as an internal failure.
func NewInternalFailureError(err error) *AnalysisError {
	return &AnalysisError{Kind: KindInternalFailure, Err: err}
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
}

// Unwrap returns the underlying cause.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels.
func (e *AnalysisError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *AnalysisError) sentinel() error {
	if e.Kind == KindInvalidInput {
		return ErrInvalidInput
	}
	return ErrInternalFailure
}

// IsInvalidInput reports whether err is an invalid-input analysis error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
