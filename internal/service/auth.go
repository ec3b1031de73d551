package service

import (
	"context"
	"crypto/subtle"

	"github.com/contentloom/loom/internal/config"
	"github.com/contentloom/loom/internal/domain"
)

// AuthService answers the two questions the registry cares about: is the
// caller the configured administrator, and may the acting principal edit
// a given record. Real access policy belongs to the host; this delegates
// to a single shared admin credential.
type AuthService struct {
	config config.Server
}

func NewAuthService(config config.Server) *AuthService {
	return &AuthService{config: config}
}

// VerifyAdminToken checks a presented bearer token against the configured
// admin token.
func (s *AuthService) VerifyAdminToken(token string) bool {
	if s.config.AdminToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.config.AdminToken)) == 1
}

// CanEdit reports whether the request's principal may edit the record.
// Only the admin principal placed in the context by the middleware
// qualifies.
func (s *AuthService) CanEdit(ctx context.Context, recordID string) bool {
	principal, _ := ctx.Value(domain.PrincipalCtxKey).(string)
	return principal != ""
}
