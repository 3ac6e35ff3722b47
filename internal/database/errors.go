package database

import (
	"errors"
	"fmt"

	"github.com/nfrund/askboard/internal/domain"
)

// Common database errors that can be checked using errors.Is()
var (
	// ErrNotFound is returned when a record is not found in the database.
	// It is the domain sentinel so callers outside this package can match it.
	ErrNotFound = domain.ErrNotFound

	// ErrInvalidInput is returned when invalid input is provided to a method.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrQueryFailed is returned when a query execution fails.
	ErrQueryFailed = errors.New("query execution failed")

	// ErrNotConnected is returned when no healthy connection is available.
	ErrNotConnected = errors.New("database not connected")
)

// DBError represents a database error with additional context.
type DBError struct {
	// The underlying error that was returned by the database driver.
	err error

	// Additional context about where the error occurred.
	context string

	// The query that was being executed when the error occurred.
	query string

	// Optional parameters that were used with the query.
	params map[string]any
}

// NewDBError creates a new DBError with the given error and context.
// The context should describe what operation was being performed when the error occurred.
func NewDBError(err error, context string) *DBError {
	return &DBError{
		err:     err,
		context: context,
	}
}

// WithQuery adds query information to the error.
func (e *DBError) WithQuery(query string) *DBError {
	e.query = query
	return e
}

// WithParams adds query parameters to the error.
func (e *DBError) WithParams(params map[string]any) *DBError {
	e.params = params
	return e
}

// Query returns the query that failed, if one was recorded.
func (e *DBError) Query() string {
	return e.query
}

// Error returns the error message. The query and params are kept out of the
// message because it may be shown to end users; use Query() when logging.
func (e *DBError) Error() string {
	if e.err == nil {
		return e.context
	}
	if e.context == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %v", e.context, e.err)
}

// StoreMessage returns the message of the innermost error in the chain,
// which is what the database reported, without the wrapping context.
func (e *DBError) StoreMessage() string {
	var cause error = e
	for next := errors.Unwrap(cause); next != nil; next = errors.Unwrap(cause) {
		cause = next
	}
	return cause.Error()
}

// Unwrap returns the underlying error.
func (e *DBError) Unwrap() error {
	return e.err
}

// WrapError wraps an error with additional context.
// If the error is already a DBError, it adds the context to the existing error.
// Otherwise, it creates a new DBError with the given context.
func WrapError(err error, context string) *DBError {
	if err == nil {
		return nil
	}

	var dbErr *DBError
	if errors.As(err, &dbErr) {
		wrapped := *dbErr
		if wrapped.context != "" {
			wrapped.context = fmt.Sprintf("%s: %s", context, wrapped.context)
		} else {
			wrapped.context = context
		}
		return &wrapped
	}

	return NewDBError(err, context)
}
