// Package auth implements the admin authentication gate: one configured
// admin principal, bcrypt password verification, and time-limited HS256
// bearer tokens guarding every mutating endpoint.
package auth

import (
	"errors"
	"time"

	"property-listing-portal/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned for any failed login. It deliberately does not
// say which factor was wrong.
var ErrUnauthorized = errors.New("unauthorized")

// Gate verifies the admin credential pair and issues bearer tokens.
type Gate struct {
	adminEmail        string
	adminPasswordHash string
	jwtSecret         []byte
	tokenValidity     time.Duration
}

// NewGate builds a Gate from configuration. The admin principal is supplied
// externally, never inlined.
func NewGate(admin config.AdminConfig, authCfg config.AuthConfig) *Gate {
	return &Gate{
		adminEmail:        admin.Email,
		adminPasswordHash: admin.PasswordHash,
		jwtSecret:         []byte(authCfg.JWTSecret),
		tokenValidity:     authCfg.TokenValidity(),
	}
}

// Login checks the email (case-sensitive exact match) and password against
// the configured admin principal and returns a signed bearer token. Both
// failure modes yield the same ErrUnauthorized.
func (g *Gate) Login(email, password string) (string, error) {
	if email != g.adminEmail {
		return "", ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(g.adminPasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}
	return GenerateToken(email, g.jwtSecret, g.tokenValidity)
}

// Verify validates a bearer token and returns the admin email it encodes.
func (g *Gate) Verify(token string) (string, error) {
	return GetEmailFromToken(token, g.jwtSecret)
}
