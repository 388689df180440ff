// Package config provides configuration management for the application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: every problem found while loading is gathered
// and reported in one go instead of failing on the first missing variable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens. It is required and ships
	// with no default: a process without a secret must not start.
	JWTSecret string
	// TokenDuration is how long an issued token stays valid.
	TokenDuration time.Duration
	// BcryptCost is the work factor for password hashing. Tunable so that
	// deployments can trade login latency against brute-force resistance.
	BcryptCost int
}

// StorageConfig holds object-storage (MinIO / S3-compatible) configuration.
type StorageConfig struct {
	Endpoint  string // host:port of the MinIO server, no scheme
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	// PublicBaseURL is the externally reachable base used when building
	// object URLs returned to clients, e.g. "http://localhost:9000".
	PublicBaseURL string
}

// ObjectURL builds the public URL for an object key in the configured bucket.
func (c *StorageConfig) ObjectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.PublicBaseURL, "/"), c.Bucket, key)
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string
	// Environment gates developer-only behavior, such as including error
	// detail in 500 responses. Anything other than "production" is treated
	// as a development build.
	Environment string
}

// IsProduction reports whether the server runs as a production build.
func (c *ServerConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB      *PoolConfig
	Auth    *AuthConfig
	Storage *StorageConfig
	Server  *ServerConfig
}

// getRequiredEnv reads a required environment variable, appending an error to
// the errors slice if the variable is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional environment variable parsed as an int.
// Uses defaultValue if not set; appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvBool reads an optional environment variable parsed as a bool.
func getOptionalEnvBool(key string, defaultValue bool, errors *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// getOptionalEnvDuration reads an optional environment variable parsed as a
// time.Duration ("15m", "24h"). Uses defaultValue if not set; appends an
// error if parsing fails.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampBcryptCost keeps the configured hashing cost inside the range the
// bcrypt implementation accepts, so the effective value is visible in the
// returned config rather than silently adjusted at hash time.
func clampBcryptCost(cost int, errors *[]string) int {
	if cost < bcrypt.MinCost {
		*errors = append(*errors, fmt.Sprintf("bcrypt cost %d is below minimum %d", cost, bcrypt.MinCost))
		return bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		*errors = append(*errors, fmt.Sprintf("bcrypt cost %d is above maximum %d", cost, bcrypt.MaxCost))
		return bcrypt.MaxCost
	}
	return cost
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database configuration.
	dbConfig := &PoolConfig{
		Host:     getOptionalEnv("DB_HOST", "localhost"),
		Port:     getOptionalEnvInt("DB_PORT", 5432, &errors),
		User:     getRequiredEnv("DB_USER", &errors),
		Password: getRequiredEnv("DB_PASSWORD", &errors),
		DBName:   getRequiredEnv("DB_NAME", &errors),
		MaxSize:  getOptionalEnvInt("DB_POOL_SIZE", 10, &errors),
	}

	// Auth configuration. The JWT secret is deliberately required with no
	// default value, even for development.
	authConfig := &AuthConfig{
		JWTSecret:     getRequiredEnv("JWT_SECRET", &errors),
		TokenDuration: getOptionalEnvDuration("JWT_TOKEN_DURATION", 24*time.Hour, &errors),
		BcryptCost:    clampBcryptCost(getOptionalEnvInt("BCRYPT_COST", 12, &errors), &errors),
	}

	// Object storage configuration.
	storageEndpoint := getRequiredEnv("MINIO_ENDPOINT", &errors)
	storageConfig := &StorageConfig{
		Endpoint:      storageEndpoint,
		AccessKey:     getRequiredEnv("MINIO_ACCESS_KEY", &errors),
		SecretKey:     getRequiredEnv("MINIO_SECRET_KEY", &errors),
		Bucket:        getRequiredEnv("MINIO_BUCKET", &errors),
		Region:        getOptionalEnv("MINIO_REGION", "us-east-1"),
		UseSSL:        getOptionalEnvBool("MINIO_USE_SSL", false, &errors),
		PublicBaseURL: getOptionalEnv("MINIO_PUBLIC_URL", "http://"+storageEndpoint),
	}

	serverConfig := &ServerConfig{
		Port:        getOptionalEnv("PORT", "8080"),
		Environment: getOptionalEnv("APP_ENV", "development"),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DB:      dbConfig,
		Auth:    authConfig,
		Storage: storageConfig,
		Server:  serverConfig,
	}, nil
}
