package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wiryawan46/instagram-clone-be/config"
)

var configKeys = []string{
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_POOL_SIZE",
	"JWT_SECRET", "JWT_TOKEN_DURATION", "BCRYPT_COST",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET",
	"MINIO_REGION", "MINIO_USE_SSL", "MINIO_PUBLIC_URL",
	"PORT", "APP_ENV",
}

// clearEnv removes every configuration variable for the duration of the test
// so results do not depend on the host environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, value) })
			os.Unsetenv(key)
		}
	}
}

// setMinimalEnv sets just the required variables.
func setMinimalEnv(t *testing.T) {
	t.Helper()
	clearEnv(t)
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "appdb")
	t.Setenv("JWT_SECRET", "test-signing-secret")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "minio")
	t.Setenv("MINIO_SECRET_KEY", "minio123")
	t.Setenv("MINIO_BUCKET", "photos")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.False(t, cfg.Storage.UseSSL)
	assert.Equal(t, "http://localhost:9000", cfg.Storage.PublicBaseURL)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Server.IsProduction())
}

func TestLoadConfig_CollectsAllMissingVariables(t *testing.T) {
	clearEnv(t)

	_, err := config.LoadConfig()
	require.Error(t, err)

	// Every missing required variable is reported at once, not the first one.
	for _, key := range []string{
		"DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET",
	} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoadConfig_JWTSecretHasNoDefault(t *testing.T) {
	setMinimalEnv(t)
	os.Unsetenv("JWT_SECRET")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_InvalidValuesReported(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("JWT_TOKEN_DURATION", "eventually")
	t.Setenv("MINIO_USE_SSL", "maybe")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "JWT_TOKEN_DURATION")
	assert.Contains(t, err.Error(), "MINIO_USE_SSL")
}

func TestLoadConfig_BcryptCostOutOfRange(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("BCRYPT_COST", "99")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bcrypt cost")
}

func TestLoadConfig_BcryptCostWithinRange(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.GreaterOrEqual(t, cfg.Auth.BcryptCost, bcrypt.MinCost)
	assert.LessOrEqual(t, cfg.Auth.BcryptCost, bcrypt.MaxCost)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("JWT_TOKEN_DURATION", "15m")
	t.Setenv("MINIO_PUBLIC_URL", "https://cdn.example.com/")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 25, cfg.DB.MaxSize)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenDuration)
	assert.Equal(t, "https://cdn.example.com/", cfg.Storage.PublicBaseURL)
	assert.True(t, cfg.Server.IsProduction())
}

func TestObjectURL(t *testing.T) {
	cfg := &config.StorageConfig{Bucket: "photos", PublicBaseURL: "http://localhost:9000"}
	assert.Equal(t, "http://localhost:9000/photos/123_pic.jpg", cfg.ObjectURL("123_pic.jpg"))

	// A trailing slash on the base never doubles up in the URL.
	cfg.PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/photos/123_pic.jpg", cfg.ObjectURL("123_pic.jpg"))
}
