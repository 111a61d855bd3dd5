package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("ENV", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.UsesRedis())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "45s")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:4200, https://recipeshare.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "6543", cfg.DBPort)
	assert.Equal(t, "from-env", cfg.DBPassword)
	assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
	assert.Equal(t, 45*time.Second, cfg.CacheTTL)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, []string{"http://localhost:4200", "https://recipeshare.example.com"}, cfg.CORSAllowedOrigins)
	assert.Contains(t, cfg.PostgresDSN(), "host=db.internal port=6543 user=catalog")
}

func TestLoadConfigSecretsOverrideEnvironment(t *testing.T) {
	secretsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("from-secret\n"), 0o600))
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.DBPassword)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment:             Development,
			ServerPort:              "8080",
			RequestTimeout:          time.Second,
			DBDriver:                DriverSQLite,
			DBPath:                  "test.db",
			CacheBackend:            CacheBackendMemory,
			CacheTTL:                time.Minute,
			CacheCapacity:           100,
			CacheShards:             4,
			CacheEvictionPercentage: 10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: "DB_DRIVER"},
		{name: "unknown cache backend", mutate: func(c *Config) { c.CacheBackend = "memcached" }, wantErr: "CACHE_BACKEND"},
		{name: "zero ttl", mutate: func(c *Config) { c.CacheTTL = 0 }, wantErr: "CACHE_TTL"},
		{name: "rate limit without window", mutate: func(c *Config) { c.RateLimitEnabled = true; c.RateLimitRequests = 10; c.RedisHost = "localhost" }, wantErr: "RATE_LIMIT_WINDOW"},
		{name: "rate limit without redis", mutate: func(c *Config) { c.RateLimitEnabled = true; c.RateLimitRequests = 10; c.RateLimitWindow = time.Minute }, wantErr: "REDIS_HOST"},
		{name: "eviction out of range", mutate: func(c *Config) { c.CacheEvictionPercentage = 101 }, wantErr: "CACHE_EVICTION_PERCENTAGE"},
		{
			name: "production postgres without password",
			mutate: func(c *Config) {
				c.Environment = Production
				c.DBDriver = DriverPostgres
				c.DBHost = "db"
				c.DBName = "recipes"
			},
			wantErr: "db_password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
