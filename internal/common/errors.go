// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Classification errors.
	ErrNoTextContent           = errors.New("no text content in completion response")
	ErrInvalidClassification   = errors.New("invalid classification")
	ErrClassificationFailed    = errors.New("classification failed")
	ErrUnsupportedProvider     = errors.New("unsupported LLM provider")
	ErrCompletionProviderError = errors.New("completion provider error")

	// Routing errors.
	ErrProjectNameMissing = errors.New("append_to_project action requires a project name")
	ErrProjectNotFound    = errors.New("project not found in registry or has no doc id")
	ErrDocumentNotCreated = errors.New("document creation returned no id")

	// Store errors.
	ErrNotFound     = errors.New("not found")
	ErrInvalidRange = errors.New("invalid range")
)

// MissingConfig reports a required identifier that is not configured.
// The returned error matches ErrMissingConfig.
func MissingConfig(key string) error {
	return fmt.Errorf("%w: %s is not set", ErrMissingConfig, key)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrMissingConfig) || errors.Is(err, ErrInvalidRange) {
		return false
	}

	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
