package database

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/askboard/internal/domain"
	"github.com/nfrund/askboard/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityStore_RejectsEmptyInput(t *testing.T) {
	// The dialer is never reached for empty input.
	store := NewIdentityStore(nil, "ns", "db")

	_, err := store.SignIn(context.Background(), "", "secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = store.ResolveSession(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestIdentityStore_Integration(t *testing.T) {
	conn := setupTestDB(t)
	cfg := testutils.ConfigForTests(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := NewIdentityStore(conn, cfg.GetDBNs(), cfg.GetDBDb())

	_, err := store.SignIn(ctx, "nobody@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = store.ResolveSession(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// The root connection keeps its own auth after identity calls.
	assert.True(t, conn.IsHealthy())
	_, err = conn.DB()
	require.NoError(t, err)
}
