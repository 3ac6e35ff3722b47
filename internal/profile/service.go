// Package profile updates a signed-in user's profile record and tells the
// page cache that the profile page is stale.
package profile

import (
	"context"
	"log/slog"

	"github.com/nfrund/askboard/internal/domain"
)

// Route is the page that renders the profile and is invalidated after a write.
const Route = "/dashboard/profile"

// Invalidator marks the cached render of a route as stale.
type Invalidator interface {
	InvalidateRoute(ctx context.Context, route string) error
}

// Service applies profile patches on behalf of an authenticated session.
type Service struct {
	repo        domain.ProfileRepository
	invalidator Invalidator
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for events that do not change the result.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new Service.
func NewService(repo domain.ProfileRepository, invalidator Invalidator, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the stored profile of the session's user.
func (s *Service) Get(ctx context.Context, session *domain.Session) (*domain.Profile, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.GetProfile(ctx, session.UserID)
}

// Update writes the fields present in patch to the profile of the session's
// user. Absent fields are left unchanged. A nil or anonymous session never
// reaches the store.
//
// The write is attempted once. On success the cached render of Route is
// invalidated; a failed invalidation is logged and does not change the result
// because the write has already been committed.
func (s *Service) Update(ctx context.Context, session *domain.Session, patch domain.ProfilePatch) Result {
	if !session.Valid() {
		return unauthenticated()
	}

	stored, err := s.repo.UpdateProfile(ctx, session.UserID, patch)
	if err != nil {
		s.logger.WarnContext(ctx, "Profile update rejected by store",
			"event", "profile_update_failed", "user_id", session.UserID, "error", err)
		return failed(err)
	}

	if s.invalidator != nil {
		if err := s.invalidator.InvalidateRoute(ctx, Route); err != nil {
			s.logger.ErrorContext(ctx, "Failed to invalidate profile page",
				"event", "page_invalidation_failed", "route", Route, "user_id", session.UserID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "Profile updated",
		"event", "profile_updated", "user_id", session.UserID,
		"display_name_set", patch.DisplayName != nil, "bio_set", patch.Bio != nil)
	return Result{Kind: KindOK, Profile: stored}
}
