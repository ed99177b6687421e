package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsOptionalSections(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, EditionAgriConnect, cfg.Env.Edition)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "users.db", cfg.Database.SQLite.Path)
	assert.Equal(t, "products.json", cfg.Catalog.ProductsPath)
	assert.Equal(t, "farm_product.json", cfg.Catalog.FarmProductsPath)
	assert.Equal(t, "dealers.json", cfg.Catalog.DealersPath)
	assert.Equal(t, "dummy", cfg.Payment.Provider)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, uint(800), cfg.Uploads.MaxWidth)
	assert.Equal(t, 256, cfg.QRCode.Size)
	assert.Equal(t, 3*time.Minute, cfg.HTTP.RateLimit.ExpiresIn)
}

func TestApplyDefaults_NormalizesEdition(t *testing.T) {
	tests := []struct {
		edition string
		want    string
	}{
		{edition: "Storefront", want: EditionStorefront},
		{edition: "agriconnect", want: EditionAgriConnect},
		{edition: "unknown", want: EditionAgriConnect},
	}

	for _, tt := range tests {
		t.Run(tt.edition, func(t *testing.T) {
			cfg := &Config{}
			cfg.Env.Edition = tt.edition

			applyDefaults(cfg)

			assert.Equal(t, tt.want, cfg.Env.Edition)
		})
	}
}

func TestFindAdmin(t *testing.T) {
	cfg := &Config{Admins: []AdminAccount{
		{Username: "admin", Password: "secret", Role: "admin"},
		{Username: "admin2", Password: "secret", Role: "field_admin"},
	}}

	admin, ok := cfg.FindAdmin("admin2")
	require.True(t, ok)
	assert.Equal(t, "field_admin", admin.Role)

	_, ok = cfg.FindAdmin("farmer")
	assert.False(t, ok)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlContent := []byte("env:\n  edition: agriconnect\nhttp:\n  port: 8080\npayment:\n  keyId: from-yaml\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yamlContent, 0o600))

	t.Chdir(dir)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PAYMENT_KEYID", "from-env")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	require.NotNil(t, cfg.Payment)
	assert.Equal(t, "from-env", cfg.Payment.KeyID)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("missing")
	assert.Error(t, err)
}
