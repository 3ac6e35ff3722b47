package profile

import "github.com/nfrund/askboard/internal/domain"

// Kind discriminates the outcome of an update.
type Kind int

const (
	// KindOK means the patch was stored and the page cache was signalled.
	KindOK Kind = iota
	// KindUnauthenticated means no valid session was supplied. Nothing was written.
	KindUnauthenticated
	// KindError means the store rejected the write. Message says why.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of Service.Update. The caller decides how to present
// it: a redirect to the login page, an error message or a success notice.
type Result struct {
	Kind    Kind
	Message string

	// Profile is the stored record after a successful update, when the store returns one.
	Profile *domain.Profile

	err *domain.PersistenceError
}

// OK reports whether the update succeeded.
func (r Result) OK() bool { return r.Kind == KindOK }

// Err returns the persistence failure behind a KindError result, and nil for
// every other kind. Callers that propagate errors instead of switching on
// Kind use it.
func (r Result) Err() error {
	if r.Kind != KindError || r.err == nil {
		return nil
	}
	return r.err
}

func unauthenticated() Result {
	return Result{Kind: KindUnauthenticated}
}

func failed(err error) Result {
	pErr := domain.NewPersistenceError(err)
	return Result{Kind: KindError, Message: pErr.Message, err: pErr}
}
