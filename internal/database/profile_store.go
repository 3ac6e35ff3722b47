package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nfrund/askboard/internal/config"
	"github.com/nfrund/askboard/internal/domain"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// profileRecord is the row shape of the profiles table.
type profileRecord struct {
	ID          *surrealmodels.RecordID       `json:"id,omitempty"`
	DisplayName *string                       `json:"display_name,omitempty"`
	Bio         *string                       `json:"bio,omitempty"`
	UpdatedAt   *surrealmodels.CustomDateTime `json:"updated_at,omitempty"`
}

func (r *profileRecord) toDomain(userID string) *domain.Profile {
	p := &domain.Profile{
		ID:          userID,
		DisplayName: r.DisplayName,
		Bio:         r.Bio,
	}
	if r.ID != nil {
		p.ID = fmt.Sprint(r.ID.ID)
	}
	if r.UpdatedAt != nil {
		t := r.UpdatedAt.Time
		p.UpdatedAt = &t
	}
	return p
}

var _ domain.ProfileRepository = (*ProfileStore)(nil)

// ProfileStore persists profiles in SurrealDB. Each profile is the record
// profiles:<user id>.
type ProfileStore struct {
	client Client[profileRecord]
	now    func() time.Time
}

// NewProfileStore creates a ProfileStore on top of a managed connection.
func NewProfileStore(conn DBConnection, cfg config.Provider, opts ...ClientOption[profileRecord]) (*ProfileStore, error) {
	c, err := NewClient[profileRecord](conn, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile client: %w", err)
	}
	return &ProfileStore{client: c, now: time.Now}, nil
}

// GetProfile implements domain.ProfileRepository.
func (s *ProfileStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, NewDBError(ErrInvalidInput, "user id cannot be empty")
	}
	rec, err := s.client.Select(ctx, surrealmodels.NewRecordID(domain.ProfileTable, userID))
	if err != nil {
		return nil, err
	}
	return rec.toDomain(userID), nil
}

// UpdateProfile implements domain.ProfileRepository. Only the fields present
// in the patch are merged into the record; a missing record is ErrNotFound.
func (s *ProfileStore) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	if userID == "" {
		return nil, NewDBError(ErrInvalidInput, "user id cannot be empty")
	}

	data := patch.Fields()
	data["updated_at"] = surrealmodels.CustomDateTime{Time: s.now().UTC()}

	rec, err := s.client.Update(ctx, surrealmodels.NewRecordID(domain.ProfileTable, userID), data)
	if err != nil {
		return nil, err
	}
	return rec.toDomain(userID), nil
}
