package domain

import (
	"context"
	"time"
)

// ProfileTable is the table holding one profile record per user.
const ProfileTable = "profiles"

// Profile holds per-user attributes shown on the profile page.
type Profile struct {
	ID          string     `json:"id"`
	DisplayName *string    `json:"display_name,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ProfilePatch is a partial update. A nil field is absent and must be left
// unchanged by the store; a non-nil field is written as is, empty string included.
type ProfilePatch struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// Fields returns the present fields keyed by their column name.
func (p ProfilePatch) Fields() map[string]any {
	fields := make(map[string]any, 2)
	if p.DisplayName != nil {
		fields["display_name"] = *p.DisplayName
	}
	if p.Bio != nil {
		fields["bio"] = *p.Bio
	}
	return fields
}

// IsEmpty reports whether the patch carries no fields.
func (p ProfilePatch) IsEmpty() bool {
	return p.DisplayName == nil && p.Bio == nil
}

// Apply copies the present fields onto profile.
func (p ProfilePatch) Apply(profile *Profile) {
	if p.DisplayName != nil {
		v := *p.DisplayName
		profile.DisplayName = &v
	}
	if p.Bio != nil {
		v := *p.Bio
		profile.Bio = &v
	}
}

// ProfileRepository defines the contract for profile storage.
type ProfileRepository interface {
	// GetProfile returns the profile for userID, or ErrNotFound.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	// UpdateProfile writes the present patch fields to the existing record for
	// userID and returns the stored result.
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*Profile, error)
}
