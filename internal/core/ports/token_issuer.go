package ports

import "github.com/shopstack/accounts-api/internal/core/domain"

// TokenIssuer mints and resolves the opaque bearer tokens bound to a user
// identity. Clients treat the token as an opaque string; only Subject knows
// how to read the identity back out of it.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	// Subject returns the user id the token was issued for, or an error when
	// the token is malformed, tampered with, or expired.
	Subject(token string) (string, error)
}
