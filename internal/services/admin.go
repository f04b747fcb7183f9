package services

import (
	"time"

	"cricturf/internal/domain"
)

// adminSessionTTL is how long an admin session token stays valid. The token
// only survives reloads for convenience; it carries no per-user identity.
const adminSessionTTL = 24 * time.Hour

type adminService struct {
	secretHash string
	hasher     domain.PasswordHasher
	issuer     domain.TokenIssuer
}

// NewAdminService returns the administrator gate: a single shared-secret
// check that yields a session token on success.
func NewAdminService(secretHash string, hasher domain.PasswordHasher, issuer domain.TokenIssuer) domain.AdminService {
	return &adminService{secretHash: secretHash, hasher: hasher, issuer: issuer}
}

func (s *adminService) Login(password string) (string, error) {
	if err := s.hasher.Compare(s.secretHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.issuer.Issue("admin", adminSessionTTL)
}
