package app

import (
	"os"
	"strconv"
	"time"

	"github.com/kamelin22/user-api/pkg/jwtx"
	"github.com/kamelin22/user-api/pkg/retryx"
)

type Config struct {
	JWTSecret string // Required: HS256 signing secret for bearer tokens
	Issuer    string // Optional: issuer claim for tokens (default: user-api)

	TokenTTL            time.Duration // Optional: bearer token lifetime (default: 24h)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./users.db)
	ConnectAttempts     int           // Optional: total DB connection attempts at startup (default: 3)
	ConnectRetryDelay   time.Duration // Optional: fixed delay between attempts (default: 5s)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:           os.Getenv("JWT_SECRET"),
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "user-api"),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", jwtx.DefaultTokenTTL),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "users.db"),
		ConnectAttempts:     getEnvIntOrDefault("CONNECT_ATTEMPTS", retryx.DefaultAttempts),
		ConnectRetryDelay:   getEnvDurationOrDefault("CONNECT_RETRY_DELAY", retryx.DefaultDelay),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as seconds.
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultValue
}
