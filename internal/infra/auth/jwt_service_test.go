package auth

import (
	"testing"
	"time"

	"agriconnect/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: ttl, BcryptCost: 4}}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.AccessTokenDuration())

	token, err := svc.GenerateAccessToken("ravi", "farmer")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ravi", claims.Subject)
	assert.Equal(t, "farmer", claims.Role)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(newTestConfig("", time.Hour))
	assert.Error(t, err)
}

func TestJWTService_DefaultTTL(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("secret", 0))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, svc.AccessTokenDuration())
}

func TestJWTService_RejectsBadTokens(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("secret-one", time.Hour))
	require.NoError(t, err)
	other, err := NewJWTService(newTestConfig("secret-two", time.Hour))
	require.NoError(t, err)

	foreign, err := other.GenerateAccessToken("ravi", "customer")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "other secret", token: foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("secret", time.Minute))
	require.NoError(t, err)

	impl := svc.(*jwtService)
	impl.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := impl.GenerateAccessToken("ravi", "customer")
	require.NoError(t, err)

	impl.now = time.Now
	_, err = impl.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("secret", time.Hour))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "ravi",
		"iss": tokenIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.Error(t, err)
}
