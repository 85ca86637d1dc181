package domain

import "time"

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user. The identity
// itself comes from the external auth collaborator; the core only consumes it.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID and email.
type TokenVerifier interface {
	Verify(token string) (userID, email string, err error)
}
