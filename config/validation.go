package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the loaded configuration and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errors []string

	add := func(field, message string) {
		errors = append(errors, ValidationError{Field: field, Message: message}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}
	if cfg.RequestTimeout <= 0 {
		add("SERVER_REQUEST_TIMEOUT", "must be greater than 0")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for postgres")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for postgres")
		}
		// Production passwords must come from a secret or the environment
		if cfg.Environment == Production && cfg.DBPassword == "" {
			add("db_password", "secret is required in production")
		}
	case DriverSQLite:
		if cfg.DBPath == "" {
			add("DB_PATH", "is required for sqlite")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	switch cfg.CacheBackend {
	case CacheBackendMemory:
		if cfg.CacheCapacity <= 0 {
			add("CACHE_CAPACITY", "must be greater than 0")
		}
		if cfg.CacheShards <= 0 {
			add("CACHE_SHARDS", "must be greater than 0")
		}
		if cfg.CacheEvictionPercentage < 1 || cfg.CacheEvictionPercentage > 100 {
			add("CACHE_EVICTION_PERCENTAGE", "must be between 1 and 100")
		}
	case CacheBackendRedis:
		// connection settings are checked below
	default:
		add("CACHE_BACKEND", fmt.Sprintf("unsupported backend %q", cfg.CacheBackend))
	}
	if cfg.UsesRedis() && cfg.RedisURL == "" && cfg.RedisHost == "" {
		add("REDIS_HOST", "REDIS_HOST or REDIS_URL is required when redis is in use")
	}
	if cfg.RateLimitEnabled {
		if cfg.RateLimitRequests <= 0 {
			add("RATE_LIMIT_REQUESTS", "must be greater than 0")
		}
		if cfg.RateLimitWindow <= 0 {
			add("RATE_LIMIT_WINDOW", "must be greater than 0")
		}
	}
	if cfg.CacheTTL <= 0 {
		add("CACHE_TTL", "must be greater than 0")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
