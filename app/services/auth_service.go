package services

import (
	"crypto/subtle"
	"strings"

	"github.com/shashiranjanraj/glowmart/pkg/apperr"
	"github.com/shashiranjanraj/glowmart/pkg/auth"
)

// AuthService exchanges the single shared admin credential for a signed
// token. There are no per-admin accounts and no refresh tokens; the
// token is valid until it expires.
type AuthService struct {
	username string
	password string // plain value or bcrypt hash
	tokens   *auth.Manager
}

// NewAuthService builds an AuthService around the configured credential.
func NewAuthService(username, password string, tokens *auth.Manager) *AuthService {
	return &AuthService{username: username, password: password, tokens: tokens}
}

// Login validates the credential pair and mints an admin token.
func (s *AuthService) Login(username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", apperr.New(apperr.InvalidInput, "Missing credentials")
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := auth.CheckPassword(s.password, password)
	if !userOK || !passOK {
		return "", apperr.New(apperr.Unauthenticated, "Invalid credentials")
	}

	token, err := s.tokens.Generate(username, true)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "token generation failed", err)
	}
	return token, nil
}
