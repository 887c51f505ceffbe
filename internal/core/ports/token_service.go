package ports

import "github.com/forohub/forum-api/internal/core/domain"

// TokenClaims is the identity recovered from a verified token.
type TokenClaims struct {
	Subject string
	Role    domain.Role
}

// TokenService issues and verifies signed, time-limited identity tokens.
// Verification is pure: no state is read or written beyond the signing key.
type TokenService interface {
	Issue(subject string, role domain.Role) (string, error)
	// Verify returns the embedded claims, domain.ErrTokenExpired for a token
	// past its expiry, or domain.ErrTokenInvalid for anything else (bad
	// signature, malformed structure, wrong algorithm).
	Verify(token string) (*TokenClaims, error)
}
