// Package derrors defines the normalized failure taxonomy shared by the
// lifecycle engine and the geocoding path.
package derrors

import (
	"errors"
	"fmt"
)

// Category classifies a failure for retry and reporting decisions.
type Category string

const (
	// CategoryTransient indicates network or service unavailability. Work is
	// retried on the next scheduled run, never within the same run.
	CategoryTransient Category = "transient"

	// CategoryNotFound indicates the record or postcode does not exist.
	CategoryNotFound Category = "not_found"

	// CategoryConcurrency indicates state changed between read and write.
	// Terminal for this run; the record is revisited next run.
	CategoryConcurrency Category = "concurrency"

	// CategoryValidation indicates malformed input data. Terminal; the record
	// is logged and skipped.
	CategoryValidation Category = "validation"

	// CategoryInternal indicates an unexpected internal error.
	CategoryInternal Category = "internal"
)

// DomainError wraps failures with normalized categorization.
type DomainError struct {
	Category   Category
	Op         string
	Message    string
	Underlying error
	Retryable  bool
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Op, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Op, e.Category, e.Message)
}

// Unwrap supports error unwrapping.
func (e *DomainError) Unwrap() error {
	return e.Underlying
}

// New creates a normalized domain error. Only transient failures are marked
// retryable.
func New(category Category, op, message string, underlying error) *DomainError {
	return &DomainError{
		Category:   category,
		Op:         op,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == CategoryTransient,
	}
}

// IsRetryable checks if an error is worth retrying on a later run.
func IsRetryable(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Retryable
	}
	return false
}

// CategoryOf extracts the category from an error.
func CategoryOf(err error) Category {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Category
	}
	return CategoryInternal
}
