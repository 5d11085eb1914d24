package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "unit-test-secret", cfg.JWTSecret)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestValidateConfigRejectsProductionDefaults(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CI", "")

	err := ValidateConfig(&Config{
		ServerPort: "3001",
		JWTSecret:  "your-secret-key-change-in-production",
	})
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "JWT_SECRET", verr.Field)
}

func TestValidateConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")

	err := ValidateConfig(&Config{ServerPort: "3001"})
	require.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")

	tests := []struct {
		env      string
		expected Environment
	}{
		{"production", Production},
		{"test", Test},
		{"development", Development},
		{"", Development},
	}

	for _, tt := range tests {
		t.Setenv("ENV", tt.env)
		assert.Equal(t, tt.expected, GetEnvironment())
	}
}
