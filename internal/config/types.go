package config

import "time"

type Config struct {
	DatabaseURL       string
	RedisURL          string
	JWTSecret         string
	OpenRouterKey     string
	Environment       string
	Port              string
	AllowedOrigins    []string
	SessionCacheTTL   time.Duration // 0 keeps cache entries until evicted
	GenerateRateLimit string        // ulule/limiter format, e.g. "20-M"
}
