package config

import (
	"os"
	"strconv"
	"time"
)

const (
	EnvironmentLocal      = "local"
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "production"
)

type Config struct {
	Environment            string
	DatabaseURL            string
	JWTSecret              string
	AccessTokenExpire      time.Duration
	Port                   string
	APIPrefix              string
	FirstSuperuser         string
	FirstSuperuserPassword string
	LogLevel               string
}

func Load() *Config {
	return &Config{
		Environment:            getEnv("ENVIRONMENT", EnvironmentLocal),
		DatabaseURL:            getEnv("DATABASE_URL", "activities.db"),
		JWTSecret:              getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		AccessTokenExpire:      time.Duration(getIntEnv("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24*8)) * time.Minute,
		Port:                   getEnv("PORT", "8080"),
		APIPrefix:              getEnv("API_PREFIX", "/api/v1"),
		FirstSuperuser:         getEnv("FIRST_SUPERUSER", "admin@example.com"),
		FirstSuperuserPassword: getEnv("FIRST_SUPERUSER_PASSWORD", "changethis"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}
}

// IsLocal reports whether development-only routes may be mounted.
func (c *Config) IsLocal() bool {
	return c.Environment == EnvironmentLocal
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
