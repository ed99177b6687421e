package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are carried by access tokens issued at login. Subject is the username.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates bearer tokens.
type TokenService interface {
	// GenerateAccessToken signs a token for a username and role.
	GenerateAccessToken(username, role string) (string, error)

	// ValidateToken checks the signature and expiry of a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns how long issued tokens stay valid.
	AccessTokenDuration() time.Duration
}
