// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"agriconnect/config"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "agriconnect"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret []byte        // Secret key for signing access tokens.
	accessTTL    time.Duration // Time-to-live for access tokens.
	now          func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	ttl := 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		accessTTL:    ttl,
		now:          time.Now,
	}, nil
}

// GenerateAccessToken signs an HS256 token whose subject is the username.
func (s *jwtService) GenerateAccessToken(username, role string) (string, error) {
	now := s.now()
	claims := service.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// ValidateToken checks the signature, issuer and expiry of an access token.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.accessSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid access token")
	}

	return claims, nil
}

func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}
