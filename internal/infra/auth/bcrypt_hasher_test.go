package auth

import (
	"testing"

	"agriconnect/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newTestConfig("secret", 0))

	hash, err := hasher.Hash("pass123")
	require.NoError(t, err)
	assert.NotEqual(t, "pass123", hash)

	assert.True(t, hasher.Check("pass123", hash))
	assert.False(t, hasher.Check("wrong", hash))
	assert.False(t, hasher.Check("pass123", "not-a-hash"))
}

func TestBcryptHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want int
	}{
		{name: "configured", cfg: newTestConfig("s", 0), want: 4},
		{name: "nil config", cfg: nil, want: bcrypt.DefaultCost},
		{name: "out of range", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}, want: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(tt.cfg)

			hash, err := hasher.Hash("pw")
			require.NoError(t, err)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cost)
		})
	}
}
