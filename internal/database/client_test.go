package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nfrund/askboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

type call struct {
	query    string
	params   map[string]any
	deadline bool
}

// fakeExecutor records queries and returns canned rows.
type fakeExecutor[T any] struct {
	calls []call
	rows  []T
	one   *T
	err   error
}

func (f *fakeExecutor[T]) record(ctx context.Context, query string, params map[string]any) {
	_, ok := ctx.Deadline()
	f.calls = append(f.calls, call{query: query, params: params, deadline: ok})
}

func (f *fakeExecutor[T]) Query(ctx context.Context, query string, params map[string]any) ([]T, error) {
	f.record(ctx, query, params)
	return f.rows, f.err
}

func (f *fakeExecutor[T]) QueryOne(ctx context.Context, query string, params map[string]any) (*T, error) {
	f.record(ctx, query, params)
	return f.one, f.err
}

func (f *fakeExecutor[T]) Execute(ctx context.Context, query string, params map[string]any) error {
	f.record(ctx, query, params)
	return f.err
}

// fakeConn is a DBConnection without a server.
type fakeConn struct{}

func (fakeConn) DB() (*surrealdb.DB, error) {
	return nil, NewDBError(ErrNotConnected, "fake connection")
}

func (fakeConn) WithConnection(ctx context.Context, fn func(*surrealdb.DB) error) error {
	return NewDBError(ErrNotConnected, "fake connection")
}

type row struct {
	Name string `json:"name"`
}

func testConfig() *config.Config {
	return &config.Config{
		DBQueryTimeout:   time.Second,
		DBExecuteTimeout: 2 * time.Second,
		PageCacheTTL:     time.Minute,
		ProfileStore:     config.StoreSurreal,
	}
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient[row](nil, testConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewClient[row](fakeConn{}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	cfg := testConfig()
	cfg.DBQueryTimeout = 0
	_, err = NewClient[row](fakeConn{}, cfg)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClient_Update(t *testing.T) {
	ctx := context.Background()
	id := surrealmodels.NewRecordID("profiles", "u1")

	t.Run("merges data and returns the record", func(t *testing.T) {
		exec := &fakeExecutor[row]{one: &row{Name: "after"}}
		c, err := NewClient[row](fakeConn{}, testConfig(), WithExecutor[row](exec))
		require.NoError(t, err)

		got, err := c.Update(ctx, id, map[string]any{"name": "after"})
		require.NoError(t, err)
		assert.Equal(t, "after", got.Name)

		require.Len(t, exec.calls, 1)
		assert.Equal(t, "UPDATE $id MERGE $data RETURN AFTER", exec.calls[0].query)
		assert.Equal(t, id, exec.calls[0].params["id"])
		assert.Equal(t, map[string]any{"name": "after"}, exec.calls[0].params["data"])
		assert.True(t, exec.calls[0].deadline, "update should run with a timeout")
	})

	t.Run("missing record is ErrNotFound", func(t *testing.T) {
		exec := &fakeExecutor[row]{}
		c, err := NewClient[row](fakeConn{}, testConfig(), WithExecutor[row](exec))
		require.NoError(t, err)

		_, err = c.Update(ctx, id, map[string]any{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("executor error is wrapped", func(t *testing.T) {
		exec := &fakeExecutor[row]{err: errors.New("boom")}
		c, err := NewClient[row](fakeConn{}, testConfig(), WithExecutor[row](exec))
		require.NoError(t, err)

		_, err = c.Update(ctx, id, map[string]any{"name": "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("rejects empty id and nil data", func(t *testing.T) {
		exec := &fakeExecutor[row]{}
		c, err := NewClient[row](fakeConn{}, testConfig(), WithExecutor[row](exec))
		require.NoError(t, err)

		_, err = c.Update(ctx, surrealmodels.RecordID{Table: "profiles"}, map[string]any{})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = c.Update(ctx, id, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, exec.calls)
	})
}

func TestClient_SelectCreateDelete(t *testing.T) {
	ctx := context.Background()
	id := surrealmodels.NewRecordID("profiles", "u1")

	exec := &fakeExecutor[row]{}
	c, err := NewClient[row](fakeConn{}, testConfig(), WithExecutor[row](exec))
	require.NoError(t, err)

	_, err = c.Select(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	exec.one = &row{Name: "created"}
	got, err := c.Create(ctx, "profiles", map[string]any{"name": "created"})
	require.NoError(t, err)
	assert.Equal(t, "created", got.Name)

	_, err = c.Create(ctx, "", map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, c.Delete(ctx, id))

	queries := make([]string, 0, len(exec.calls))
	for _, call := range exec.calls {
		queries = append(queries, call.query)
	}
	assert.Equal(t, []string{
		"SELECT * FROM $id",
		"CREATE type::table($table) CONTENT $data",
		"DELETE $id",
	}, queries)
}

func TestClient_ContextTimeoutOverride(t *testing.T) {
	exec := &fakeExecutor[row]{}
	c, err := NewClient[row](fakeConn{}, testConfig(), WithExecutor[row](exec))
	require.NoError(t, err)

	ctx := WithQueryTimeout(context.Background(), 50*time.Millisecond)
	_, err = c.Query(ctx, "SELECT * FROM profiles", nil)
	require.NoError(t, err)
	require.Len(t, exec.calls, 1)
	assert.True(t, exec.calls[0].deadline)
}

func TestLimitOne(t *testing.T) {
	assert.Equal(t, "SELECT * FROM profiles LIMIT 1", limitOne("SELECT * FROM profiles"))
	assert.Equal(t, "SELECT * FROM profiles LIMIT 5", limitOne("SELECT * FROM profiles LIMIT 5"))
	assert.Equal(t, "UPDATE $id MERGE $data RETURN AFTER", limitOne("UPDATE $id MERGE $data RETURN AFTER"))
}

func TestSurrealExecutor_NotConnected(t *testing.T) {
	exec := NewSurrealExecutor[row](fakeConn{})

	_, err := exec.Query(context.Background(), "SELECT * FROM profiles", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConnected)

	var dbErr *DBError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "SELECT * FROM profiles", dbErr.Query())
}
