package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nfrund/askboard/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

// accessMethod is the record access method defined on the database for
// application users.
const accessMethod = "account"

// Dialer opens a connection scoped to the application namespace and database.
// *Connection satisfies it.
type Dialer interface {
	Dial(ctx context.Context) (*surrealdb.DB, error)
}

var _ domain.IdentityService = (*IdentityStore)(nil)

// IdentityStore signs users in and resolves session tokens through SurrealDB
// record access. Every call runs on its own short-lived connection.
type IdentityStore struct {
	dialer Dialer
	ns     string
	dbName string
}

// NewIdentityStore creates a new IdentityStore.
func NewIdentityStore(dialer Dialer, ns, dbName string) *IdentityStore {
	return &IdentityStore{dialer: dialer, ns: ns, dbName: dbName}
}

// SignIn exchanges email and password for a session token.
func (s *IdentityStore) SignIn(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	db, err := s.dialer.Dial(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close(ctx)

	token, err := db.SignIn(ctx, map[string]any{
		"ns":       s.ns,
		"db":       s.dbName,
		"ac":       accessMethod,
		"email":    email,
		"password": password,
	})
	if err != nil {
		slog.DebugContext(ctx, "Sign in rejected", "event", "signin_rejected", "email", email, "error", err)
		return "", domain.ErrInvalidCredentials
	}
	if token == "" {
		return "", domain.ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "User signed in", "event", "signin_success", "email", email)
	return token, nil
}

// ResolveSession validates token and returns the session of its user.
// An invalid or expired token is domain.ErrUnauthenticated.
func (s *IdentityStore) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	db, err := s.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close(ctx)

	if err := db.Authenticate(ctx, token); err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := QueryOne[domain.User](ctx, db, "SELECT * FROM $auth", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load authenticated user: %w", err)
	}
	if user == nil || user.ID == nil {
		return nil, errors.Join(domain.ErrUnauthenticated, errors.New("token has no user record"))
	}

	return &domain.Session{UserID: user.Key(), Email: user.Email}, nil
}
