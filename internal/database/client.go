package database

import (
	"context"
	"time"

	"github.com/nfrund/askboard/internal/config"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

type client[T any] struct {
	conn           DBConnection
	executor       QueryExecutor[T]
	queryTimeout   time.Duration
	executeTimeout time.Duration
}

// NewClient creates a new type-safe database client
func NewClient[T any](conn DBConnection, cfg config.Provider, opts ...ClientOption[T]) (Client[T], error) {
	if conn == nil {
		return nil, NewDBError(ErrInvalidInput, "connection cannot be nil")
	}
	if cfg == nil {
		return nil, NewDBError(ErrInvalidInput, "config provider cannot be nil")
	}
	if cfg.GetDBQueryTimeout() <= 0 {
		return nil, NewDBError(ErrInvalidInput, "DB_QUERY_TIMEOUT must be a positive duration")
	}
	if cfg.GetDBExecuteTimeout() <= 0 {
		return nil, NewDBError(ErrInvalidInput, "DB_EXECUTE_TIMEOUT must be a positive duration")
	}

	c := &client[T]{
		conn:           conn,
		executor:       NewSurrealExecutor[T](conn),
		queryTimeout:   cfg.GetDBQueryTimeout(),
		executeTimeout: cfg.GetDBExecuteTimeout(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Query implements the Client interface
func (c *client[T]) Query(ctx context.Context, query string, params map[string]any) ([]T, error) {
	ctx, cancel := withTimeout(ctx, c.queryTimeout, ContextKeyQueryTimeout)
	defer cancel()
	return c.executor.Query(ctx, query, params)
}

// QueryOne implements the Client interface
func (c *client[T]) QueryOne(ctx context.Context, query string, params map[string]any) (*T, error) {
	ctx, cancel := withTimeout(ctx, c.queryTimeout, ContextKeyQueryTimeout)
	defer cancel()
	return c.executor.QueryOne(ctx, query, params)
}

// Execute implements the Client interface
func (c *client[T]) Execute(ctx context.Context, query string, params map[string]any) error {
	ctx, cancel := withTimeout(ctx, c.executeTimeout, ContextKeyExecuteTimeout)
	defer cancel()
	return c.executor.Execute(ctx, query, params)
}

// DB implements the Client interface
func (c *client[T]) DB() (*surrealdb.DB, error) {
	return c.conn.DB()
}

// Create implements the Client interface
func (c *client[T]) Create(ctx context.Context, table string, data any) (*T, error) {
	if table == "" {
		return nil, NewDBError(ErrInvalidInput, "table cannot be empty")
	}
	if data == nil {
		return nil, NewDBError(ErrInvalidInput, "data cannot be nil")
	}

	ctx, cancel := withTimeout(ctx, c.executeTimeout, ContextKeyExecuteTimeout)
	defer cancel()

	query := "CREATE type::table($table) CONTENT $data"
	result, err := c.executor.QueryOne(ctx, query, map[string]any{"table": table, "data": data})
	if err != nil {
		return nil, WrapError(err, "create operation failed")
	}
	return result, nil
}

// Select implements the Client interface
func (c *client[T]) Select(ctx context.Context, id surrealmodels.RecordID) (*T, error) {
	if err := validateRecordID(id); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, c.queryTimeout, ContextKeyQueryTimeout)
	defer cancel()

	result, err := c.executor.QueryOne(ctx, "SELECT * FROM $id", map[string]any{"id": id})
	if err != nil {
		return nil, WrapError(err, "select operation failed")
	}
	if result == nil {
		return nil, NewDBError(ErrNotFound, "record not found")
	}
	return result, nil
}

// Update implements the Client interface
func (c *client[T]) Update(ctx context.Context, id surrealmodels.RecordID, data map[string]any) (*T, error) {
	if err := validateRecordID(id); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, NewDBError(ErrInvalidInput, "data cannot be nil")
	}

	ctx, cancel := withTimeout(ctx, c.executeTimeout, ContextKeyExecuteTimeout)
	defer cancel()

	// UPDATE on a record id never creates the record; an empty result means
	// there was nothing to update.
	query := "UPDATE $id MERGE $data RETURN AFTER"
	result, err := c.executor.QueryOne(ctx, query, map[string]any{"id": id, "data": data})
	if err != nil {
		return nil, WrapError(err, "update operation failed")
	}
	if result == nil {
		return nil, NewDBError(ErrNotFound, "record not found")
	}
	return result, nil
}

// Delete implements the Client interface
func (c *client[T]) Delete(ctx context.Context, id surrealmodels.RecordID) error {
	if err := validateRecordID(id); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, c.executeTimeout, ContextKeyExecuteTimeout)
	defer cancel()

	return c.executor.Execute(ctx, "DELETE $id", map[string]any{"id": id})
}

func validateRecordID(id surrealmodels.RecordID) error {
	if id.Table == "" || id.ID == nil || id.ID == "" {
		return NewDBError(ErrInvalidInput, "id cannot be empty")
	}
	return nil
}
