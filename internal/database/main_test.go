package database

import (
	"context"
	"testing"

	"github.com/nfrund/askboard/internal/testutils"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the database named in .env.test. Tests calling it
// are skipped in -short mode or when .env.test is missing.
func setupTestDB(t *testing.T) *Connection {
	t.Helper()

	cfg := testutils.ConfigForTests(t)

	conn := NewConnection(cfg)
	require.NoError(t, conn.Connect(context.Background()), "failed to connect to test database")
	t.Cleanup(func() {
		_ = conn.Close(context.Background())
	})
	return conn
}
