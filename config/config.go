package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort         string
	ServerHost         string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	MetricsEnabled     bool
	LogLevel           string

	// Write rate limiting, backed by Redis
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Cache configuration
	CacheBackend            string
	CacheTTL                time.Duration
	CacheCapacity           int
	CacheShards             int
	CacheEvictionPercentage int
	CacheKeyPrefix          string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// LoadConfig creates a new Config from defaults, environment variables and secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Environment:             env,
		ServerPort:              v.GetString("server_port"),
		ServerHost:              v.GetString("server_host"),
		RequestTimeout:          v.GetDuration("server_request_timeout"),
		ShutdownTimeout:         v.GetDuration("server_shutdown_timeout"),
		CORSAllowedOrigins:      splitList(v.GetString("cors_allowed_origins")),
		MetricsEnabled:          v.GetBool("metrics_enabled"),
		LogLevel:                v.GetString("log_level"),
		RateLimitEnabled:        v.GetBool("rate_limit_enabled"),
		RateLimitRequests:       v.GetInt("rate_limit_requests"),
		RateLimitWindow:         v.GetDuration("rate_limit_window"),
		DBDriver:                strings.ToLower(v.GetString("db_driver")),
		DBHost:                  v.GetString("db_host"),
		DBPort:                  v.GetString("db_port"),
		DBUser:                  v.GetString("db_user"),
		DBPassword:              v.GetString("db_password"),
		DBName:                  v.GetString("db_name"),
		DBSSLMode:               v.GetString("db_ssl_mode"),
		DBPath:                  v.GetString("db_path"),
		CacheBackend:            strings.ToLower(v.GetString("cache_backend")),
		CacheTTL:                v.GetDuration("cache_ttl"),
		CacheCapacity:           v.GetInt("cache_capacity"),
		CacheShards:             v.GetInt("cache_shards"),
		CacheEvictionPercentage: v.GetInt("cache_eviction_percentage"),
		CacheKeyPrefix:          v.GetString("cache_key_prefix"),
		RedisHost:               v.GetString("redis_host"),
		RedisPort:               v.GetString("redis_port"),
		RedisPassword:           v.GetString("redis_password"),
		RedisDB:                 v.GetInt("redis_db"),
		RedisURL:                v.GetString("redis_url"),
	}

	// Docker secrets win over plain environment variables
	if secret := readSecret("db_password"); secret != "" {
		cfg.DBPassword = secret
	}
	if secret := readSecret("redis_password"); secret != "" {
		cfg.RedisPassword = secret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_request_timeout", 10*time.Second)
	v.SetDefault("server_shutdown_timeout", 5*time.Second)
	v.SetDefault("cors_allowed_origins", "http://localhost:4200")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_requests", 60)
	v.SetDefault("rate_limit_window", time.Minute)

	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "recipeshare")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("db_path", "recipeshare.db")

	v.SetDefault("cache_backend", CacheBackendMemory)
	v.SetDefault("cache_ttl", 2*time.Minute)
	v.SetDefault("cache_capacity", 10000)
	v.SetDefault("cache_shards", 64)
	v.SetDefault("cache_eviction_percentage", 10)
	v.SetDefault("cache_key_prefix", "recipeshare:")

	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_url", "")
}

// PostgresDSN builds the lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// UsesRedis reports whether any component needs a Redis connection
func (c *Config) UsesRedis() bool {
	return c.CacheBackend == CacheBackendRedis || c.RateLimitEnabled
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
