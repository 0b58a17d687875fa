package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeStore represents sentence store errors (Neo4j or SQLite)
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeAnalysis represents sentence analysis errors
	ErrorTypeAnalysis ErrorType = "analysis"
	// ErrorTypeEmbedding represents embedding provider errors
	ErrorTypeEmbedding ErrorType = "embedding"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeContext represents context cancellation/timeout errors
	ErrorTypeContext ErrorType = "context"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

func (e *BaseError) base() *BaseError {
	return e
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Analysis Errors

// ErrEmptySentence is returned when there is no text to analyze
var ErrEmptySentence = NewBaseError(ErrorTypeAnalysis, "sentence is empty", nil)

// Store Errors

// ErrStoreConnectionFailed is returned when the backing store cannot be reached
type ErrStoreConnectionFailed struct {
	*BaseError
	Backend string
	Target  string
}

func NewStoreConnectionFailed(backend, target string, err error) *ErrStoreConnectionFailed {
	return &ErrStoreConnectionFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("failed to connect to %s: %s", backend, target), err),
		Backend:   backend,
		Target:    target,
	}
}

// ErrStoreQueryFailed is returned when a store operation fails
type ErrStoreQueryFailed struct {
	*BaseError
	Operation string
}

func NewStoreQueryFailed(operation string, err error) *ErrStoreQueryFailed {
	return &ErrStoreQueryFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// ErrSentenceNotFound is returned when a sentence id does not exist
type ErrSentenceNotFound struct {
	*BaseError
	ID int64
}

func NewSentenceNotFound(id int64) *ErrSentenceNotFound {
	return &ErrSentenceNotFound{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("sentence not found: %d", id), nil),
		ID:        id,
	}
}

// Embedding Errors

// ErrEmbeddingFailed is returned when the embedding provider fails
type ErrEmbeddingFailed struct {
	*BaseError
	Model     string
	Attempts  int
	Retryable bool
}

func NewEmbeddingFailed(model string, attempts int, retryable bool, err error) *ErrEmbeddingFailed {
	return &ErrEmbeddingFailed{
		BaseError: NewBaseError(ErrorTypeEmbedding, fmt.Sprintf("embedding request failed after %d attempts", attempts), err),
		Model:     model,
		Attempts:  attempts,
		Retryable: retryable,
	}
}

// ErrEmbeddingEmpty is returned when the provider answers without vectors
var ErrEmbeddingEmpty = NewBaseError(ErrorTypeEmbedding, "no embedding in response", nil)

// Context Errors

// ErrContextCancelled is returned when context is cancelled
type ErrContextCancelled struct {
	*BaseError
	Operation string
}

func NewContextCancelled(operation string, err error) *ErrContextCancelled {
	return &ErrContextCancelled{
		BaseError: NewBaseError(ErrorTypeContext, fmt.Sprintf("context cancelled: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if b, ok := err.(interface{ base() *BaseError }); ok && b.base().Type == errType {
			return true
		}
		// errors.Join and fmt.Errorf with several %w
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				if IsErrorType(e, errType) {
					return true
				}
			}
			return false
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	// Context errors are not retryable
	if IsErrorType(err, ErrorTypeContext) {
		return false
	}
	var embedErr *ErrEmbeddingFailed
	if errors.As(err, &embedErr) {
		return embedErr.Retryable
	}
	var connErr *ErrStoreConnectionFailed
	return errors.As(err, &connErr)
}
