package database

import (
	"context"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// DBConnection is the part of a managed connection that clients need. It lets
// repositories run driver-specific operations without holding a raw handle.
type DBConnection interface {
	DB() (*surrealdb.DB, error)
	WithConnection(ctx context.Context, fn func(*surrealdb.DB) error) error
}

// Client defines the main database client interface with type-safe methods.
// It provides a generic interface for database operations on a specific type T.
type Client[T any] interface {
	// Create inserts a new record into the specified table with the given data.
	// Returns the created record with all fields populated, including any server-generated fields.
	Create(ctx context.Context, table string, data any) (*T, error)

	// Select retrieves a record by its ID.
	// Returns ErrNotFound if no record exists with the given ID.
	Select(ctx context.Context, id surrealmodels.RecordID) (*T, error)

	// Update merges data into an existing record and returns the record after the update.
	// Only the keys present in data are written.
	// Returns ErrNotFound if no record exists with the given ID.
	Update(ctx context.Context, id surrealmodels.RecordID, data map[string]any) (*T, error)

	// Delete removes a record with the given ID.
	Delete(ctx context.Context, id surrealmodels.RecordID) error

	// Query executes a raw query and returns multiple results.
	// The query can include parameters using the $param syntax.
	Query(ctx context.Context, query string, params map[string]any) ([]T, error)

	// QueryOne executes a raw query and returns a single result.
	// Returns (nil, nil) if no results are found.
	QueryOne(ctx context.Context, query string, params map[string]any) (*T, error)

	// Execute runs a query that doesn't return any rows.
	Execute(ctx context.Context, query string, params map[string]any) error

	// DB returns the raw underlying database connection.
	// Use this method sparingly, only when you need to perform operations
	// not supported by the generic client interface.
	DB() (*surrealdb.DB, error)
}

// QueryExecutor handles the execution of database queries.
// This interface is used internally by the Client implementation.
type QueryExecutor[T any] interface {
	Query(ctx context.Context, query string, params map[string]any) ([]T, error)
	QueryOne(ctx context.Context, query string, params map[string]any) (*T, error)
	Execute(ctx context.Context, query string, params map[string]any) error
}

// ClientOption defines a function that configures a Client.
type ClientOption[T any] func(*client[T])

// WithExecutor configures the client to use a custom QueryExecutor.
// This is useful for testing or for adding middleware to the executor.
func WithExecutor[T any](executor QueryExecutor[T]) ClientOption[T] {
	return func(c *client[T]) {
		c.executor = executor
	}
}
