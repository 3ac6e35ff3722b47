package handlers

import (
	"time"

	"github.com/nfrund/askboard/internal/domain"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProfileResponse is the DTO for a stored profile.
type ProfileResponse struct {
	ID          string     `json:"id"`
	DisplayName *string    `json:"display_name"`
	Bio         *string    `json:"bio"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// UpdateProfileResponse is returned by a successful JSON profile update.
type UpdateProfileResponse struct {
	Status  string           `json:"status"`
	Profile *ProfileResponse `json:"profile,omitempty"`
}

// NewProfileResponse creates a ProfileResponse from a domain.Profile. It
// returns nil for a nil profile.
func NewProfileResponse(p *domain.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		UpdatedAt:   p.UpdatedAt,
	}
}
