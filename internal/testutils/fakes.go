package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/nfrund/askboard/internal/domain"
)

// ProfileRepo is an in-memory domain.ProfileRepository that records calls.
// Set UpdateErr to make every update fail.
type ProfileRepo struct {
	mu        sync.Mutex
	profiles  map[string]domain.Profile
	Updates   []ProfileUpdate
	UpdateErr error
}

// ProfileUpdate is one recorded UpdateProfile call.
type ProfileUpdate struct {
	UserID string
	Patch  domain.ProfilePatch
}

// NewProfileRepo returns a repository holding copies of profiles.
func NewProfileRepo(profiles ...domain.Profile) *ProfileRepo {
	r := &ProfileRepo{profiles: make(map[string]domain.Profile)}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

// GetProfile implements domain.ProfileRepository.
func (r *ProfileRepo) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// UpdateProfile implements domain.ProfileRepository.
func (r *ProfileRepo) UpdateProfile(_ context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updates = append(r.Updates, ProfileUpdate{UserID: userID, Patch: patch})
	if r.UpdateErr != nil {
		return nil, r.UpdateErr
	}
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&p)
	r.profiles[userID] = p
	return &p, nil
}

// Stored returns a copy of the stored profile for userID.
func (r *ProfileRepo) Stored(userID string) (domain.Profile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	return p, ok
}

// UpdateCount returns how many times UpdateProfile was called.
func (r *ProfileRepo) UpdateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Updates)
}

// Invalidator records invalidated routes.
type Invalidator struct {
	mu     sync.Mutex
	Routes []string
	Err    error
}

// InvalidateRoute records route and returns Err.
func (i *Invalidator) InvalidateRoute(_ context.Context, route string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Routes = append(i.Routes, route)
	return i.Err
}

// Invalidated returns a copy of the recorded routes.
func (i *Invalidator) Invalidated() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.Routes...)
}

// Identity is a domain.IdentityService backed by fixed token and credential maps.
type Identity struct {
	// Tokens maps session tokens to sessions.
	Tokens map[string]*domain.Session
	// Passwords maps email to password; a successful sign in returns Issued[email].
	Passwords map[string]string
	Issued    map[string]string
	Err       error
}

// SignIn implements domain.IdentityService.
func (f *Identity) SignIn(_ context.Context, email, password string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	if pw, ok := f.Passwords[email]; !ok || pw != password {
		return "", domain.ErrInvalidCredentials
	}
	return f.Issued[email], nil
}

// ResolveSession implements domain.IdentityService.
func (f *Identity) ResolveSession(_ context.Context, token string) (*domain.Session, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	s, ok := f.Tokens[token]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}

// ErrStore is a store failure with a message, for persistence error tests.
var ErrStore = errors.New("constraint violation")
