package ports

import "context"

// IdentityProvider is the external authority for email/password accounts.
// Both calls return the provider's opaque, stable account identifier.
//
// CreateAccount fails with domain.ErrInvalidEmail, domain.ErrWeakCredential
// or domain.ErrAccountExists; SignIn fails with domain.ErrAccountNotFound or
// domain.ErrBadCredential.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
}
