package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnauthenticated    = errors.New("no authenticated session")
)

// DefaultPersistenceMessage is reported when the store fails without saying why.
const DefaultPersistenceMessage = "Failed to update profile"

// PersistenceError is returned when a profile write is rejected by the store.
// Message is the store's own text, or DefaultPersistenceMessage.
type PersistenceError struct {
	Message string
	Err     error
}

// StoreMessager is implemented by errors that wrap a store failure in
// their own context. StoreMessage returns what the store itself reported.
type StoreMessager interface {
	StoreMessage() string
}

// NewPersistenceError wraps a store error. The message is what the store
// reported, without context added by the layers above it.
func NewPersistenceError(err error) *PersistenceError {
	msg := ""
	var sm StoreMessager
	switch {
	case errors.As(err, &sm):
		msg = sm.StoreMessage()
	case err != nil:
		msg = err.Error()
	}
	if msg == "" {
		msg = DefaultPersistenceMessage
	}
	return &PersistenceError{Message: msg, Err: err}
}

func (e *PersistenceError) Error() string { return e.Message }

func (e *PersistenceError) Unwrap() error { return e.Err }
