package auth

import "errors"

// Principal is the authenticated identity bound to a request's context
// after the gate middleware succeeds. It is constructed per request and
// discarded at request end; it is never persisted.
type Principal struct {
	// UserID is the unique user identifier (required, non-empty).
	UserID string

	// Username, Email, and ProfileImage are carried for response
	// shaping so handlers do not need a second user lookup.
	Username     string
	Email        string
	ProfileImage string
}

// Sentinel errors.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
)

// RequireOwner checks that the principal owns the resource with the
// given recorded owner ID. Callers must confirm the resource exists
// before calling: a missing resource is NotFound, never Forbidden.
func RequireOwner(p *Principal, ownerID string) error {
	if p == nil || p.UserID == "" {
		return ErrUnauthenticated
	}
	if p.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}
