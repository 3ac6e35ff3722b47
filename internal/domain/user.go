package domain

import (
	"context"
	"fmt"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// User represents the identity record managed by the hosted identity service.
type User struct {
	ID    *surrealmodels.RecordID `json:"id,omitempty"`
	Email string                  `json:"email"`
}

// Key returns the identifier used to key the user's profile record.
func (u *User) Key() string {
	if u == nil || u.ID == nil || u.ID.ID == nil {
		return ""
	}
	return fmt.Sprint(u.ID.ID)
}

// IdentityService is the contract of the external identity provider. The
// application only consumes it: it never stores credentials itself.
type IdentityService interface {
	// SignIn exchanges credentials for a session token.
	SignIn(ctx context.Context, email, password string) (string, error)
	// ResolveSession returns the session behind token. It returns
	// ErrUnauthenticated when the token is not (or no longer) valid.
	ResolveSession(ctx context.Context, token string) (*Session, error)
}
