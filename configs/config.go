package configs

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	OpsPort string
	Env     string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis configuration. An empty URL disables the stats
// cache entirely.
type RedisConfig struct {
	URL string
}

// AnalyticsConfig holds analytics configuration
type AnalyticsConfig struct {
	// PublicStatsIncludePrivate controls whether bets from private
	// bankrolls feed into public tipster profile stats
	PublicStatsIncludePrivate bool

	// StatsCacheTTLSeconds is the lifetime of a cached BankrollStats entry
	StatsCacheTTLSeconds int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			OpsPort: getEnv("OPS_PORT", "9090"),
			Env:     getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Analytics: AnalyticsConfig{
			PublicStatsIncludePrivate: getEnvBool("PUBLIC_STATS_INCLUDE_PRIVATE", false),
			StatsCacheTTLSeconds:      getEnvInt("STATS_CACHE_TTL_SECONDS", 300),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
