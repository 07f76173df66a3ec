package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string // sqlite or postgres
	Path        string
	DSN         string
	AutoMigrate bool
}

// URL returns the connection string for the configured driver
func (c DatabaseConfig) URL() string {
	if c.Driver == DriverPostgres {
		return c.DSN
	}
	return "file:" + c.Path + "?_busy_timeout=5000&_foreign_keys=on"
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// RedisConfig holds Redis configuration. An empty URL disables Redis.
type RedisConfig struct {
	URL                string
	Password           string
	DriverCacheTTL     time.Duration
	// DriverCacheRefresh is how often the catalog cache is rebuilt; 0 disables the job
	DriverCacheRefresh time.Duration
	IdempotencyTTL     time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// SecurityConfig holds credential hashing settings
type SecurityConfig struct {
	PasswordHashIterations int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "5500"),
			Env:             getEnv("SERVER_ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			Path:        getEnv("DB_PATH", "f1_app.db"),
			DSN:         getEnv("DB_DSN", ""),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:            getEnv("REDIS_URL", ""),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DriverCacheTTL:     getEnvAsDuration("DRIVER_CACHE_TTL", 5*time.Minute),
			DriverCacheRefresh: getEnvAsDuration("DRIVER_CACHE_REFRESH", time.Minute),
			IdempotencyTTL:     getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
		},
		Security: SecurityConfig{
			PasswordHashIterations: getEnvAsInt("PASSWORD_HASH_ITERATIONS", 100_000),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
