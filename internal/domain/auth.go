package domain

import (
	"errors"
	"time"
)

// ErrInvalidCredentials indicates the admin shared secret did not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordHasher hashes and verifies the admin shared secret.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues session tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AdminService defines the business logic for the administrator gate. There
// is a single shared secret and no per-admin identity; Login yields a session
// token the dashboard presents on subsequent requests.
type AdminService interface {
	Login(password string) (token string, err error)
}
