package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRedisURL          = "redis://localhost:6379"
	defaultPort              = "8080"
	defaultAllowedOrigins    = "http://localhost:3000"
	defaultSessionCacheTTL   = 24 * time.Hour
	defaultGenerateRateLimit = "20-M"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cacheTTL := defaultSessionCacheTTL
	if raw := os.Getenv("SESSION_CACHE_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_CACHE_TTL %q: %w", raw, err)
		}

		if parsed < 0 {
			return nil, fmt.Errorf("SESSION_CACHE_TTL must not be negative")
		}

		cacheTTL = parsed
	}

	return &Config{
		DatabaseURL:       databaseURL,
		RedisURL:          getEnv("REDIS_URL", defaultRedisURL),
		JWTSecret:         jwtSecret,
		OpenRouterKey:     os.Getenv("OPENROUTER_API_KEY"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", defaultPort),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins)),
		SessionCacheTTL:   cacheTTL,
		GenerateRateLimit: getEnv("GENERATE_RATE_LIMIT", defaultGenerateRateLimit),
	}, nil
}

// reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
