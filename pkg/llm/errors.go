package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for mapping into the public error taxonomy.
type ErrorKind string

const (
	// ErrorKindNotConfigured means the required provider API key is absent.
	ErrorKindNotConfigured ErrorKind = "not_configured"
	// ErrorKindProvider means the provider call itself failed (network,
	// non-success status, provider-reported error).
	ErrorKindProvider ErrorKind = "provider"
)

// Error is a structured provider error.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewProviderError wraps a provider call failure.
func NewProviderError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindProvider, Message: message, Cause: cause}
}

// NewNotConfiguredError reports a missing provider credential.
func NewNotConfiguredError(message string) *Error {
	return &Error{Kind: ErrorKindNotConfigured, Message: message}
}

// IsNotConfigured reports whether err is a missing-credential error.
func IsNotConfigured(err error) bool {
	var llmErr *Error
	return errors.As(err, &llmErr) && llmErr.Kind == ErrorKindNotConfigured
}
