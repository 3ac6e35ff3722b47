package domain

// Session is server-recognized proof of an authenticated identity for the
// current request. It is resolved once per request and passed explicitly to
// the operations that need it.
type Session struct {
	UserID string
	Email  string
}

// Valid reports whether the session identifies a user.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != ""
}
