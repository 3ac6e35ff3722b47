package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/nfrund/askboard/internal/domain"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// LoginRequest defines the DTO for the login form.
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// UpdateProfileRequest is the JSON body of a profile update. A field that is
// missing or null is left unchanged; no length or content rules are applied.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
}

// Patch converts the request into a domain patch.
func (r UpdateProfileRequest) Patch() domain.ProfilePatch {
	return domain.ProfilePatch{DisplayName: r.DisplayName, Bio: r.Bio}
}
