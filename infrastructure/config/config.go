package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	JWTSecret        string
	RefreshTokenSalt string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	BcryptCost       int

	ServerHost     string
	ServerPort     string
	AllowedOrigins []string

	Environment string
	LogLevel    string
	LogFormat   string

	RedisURL               string
	RateLimitEnabled       bool
	RateLimitAttempts      int
	RateLimitWindow        time.Duration
	RateLimitBlockDuration time.Duration

	ReconcileEnabled  bool
	ReconcileInterval time.Duration
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrMissingRefreshSalt = errors.New("REFRESH_TOKEN_SALT is required")
	ErrInvalidTokenTTL    = errors.New("invalid token TTL format")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RefreshTokenSalt: os.Getenv("REFRESH_TOKEN_SALT"),
		BcryptCost:       getEnvOrDefaultInt("BCRYPT_COST", 10),

		ServerHost:     getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnvOrDefault("SERVER_PORT", "8080"),
		AllowedOrigins: splitCommaList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		Environment: getEnvOrDefault("ENV", "development"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "json"),

		RedisURL:          getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled:  getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitAttempts: getEnvOrDefaultInt("RATE_LIMIT_ATTEMPTS", 10),

		ReconcileEnabled: getEnvOrDefaultBool("RECONCILE_ENABLED", true),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.RefreshTokenSalt == "" {
		return nil, ErrMissingRefreshSalt
	}

	accessTokenTTL, err := parseSeconds(getEnvOrDefault("JWT_ACCESS_TOKEN_TTL", "3600"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.AccessTokenTTL = accessTokenTTL

	refreshTokenTTL, err := parseSeconds(getEnvOrDefault("JWT_REFRESH_TOKEN_TTL", "2592000"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RefreshTokenTTL = refreshTokenTTL

	rateLimitWindow, err := parseSeconds(getEnvOrDefault("RATE_LIMIT_WINDOW", "900"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RateLimitWindow = rateLimitWindow

	blockDuration, err := parseSeconds(getEnvOrDefault("RATE_LIMIT_BLOCK_DURATION", "1800"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RateLimitBlockDuration = blockDuration

	reconcileInterval, err := parseSeconds(getEnvOrDefault("RECONCILE_INTERVAL", "3600"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.ReconcileInterval = reconcileInterval

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func splitCommaList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseSeconds(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}
