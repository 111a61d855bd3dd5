package cache

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/recipeshare/catalog/backend/config"
)

// New builds the cache configured in cfg: an in-process sturdyc store, or a
// redis store behind a circuit breaker. Either way the result is instrumented.
func New(cfg *config.Config, rdb redis.UniversalClient, reg prometheus.Registerer, log *zap.Logger) (Store, error) {
	var store Store

	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		store = NewMemoryStore(MemoryConfig{
			Capacity:           cfg.CacheCapacity,
			NumShards:          cfg.CacheShards,
			TTL:                cfg.CacheTTL,
			EvictionPercentage: cfg.CacheEvictionPercentage,
		})
	case config.CacheBackendRedis:
		if rdb == nil {
			return nil, errors.New("redis cache backend requires a redis client")
		}
		store = NewBreakerStore(
			NewRedisStore(rdb, cfg.CacheKeyPrefix, cfg.CacheTTL),
			DefaultBreakerConfig("recipe-cache"),
			log,
		)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}

	log.Info("cache initialized",
		zap.String("backend", cfg.CacheBackend),
		zap.Duration("ttl", cfg.CacheTTL),
	)
	return NewInstrumentedStore(store, NewMetrics(reg)), nil
}
