package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipeshare/catalog/backend/internal/mocks"
)

func TestBreakerStoreOpensAfterFailures(t *testing.T) {
	inner := new(mocks.MockCacheStore)
	boom := unavailable("redis get", errors.New("connection refused"))
	inner.On("Get", mock.Anything, "recipe:1").Return(nil, false, boom).Times(5)

	cfg := DefaultBreakerConfig("test")
	cfg.Timeout = time.Hour
	store := NewBreakerStore(inner, cfg, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := store.Get(ctx, "recipe:1")
		require.ErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, store.State())

	// Open breaker rejects without touching the inner store
	_, _, err := store.Get(ctx, "recipe:1")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	inner.AssertNumberOfCalls(t, "Get", 5)
}

func TestBreakerStorePassesThrough(t *testing.T) {
	inner := new(mocks.MockCacheStore)
	inner.On("Get", mock.Anything, "recipe:1").Return([]byte("v"), true, nil).Once()
	inner.On("Set", mock.Anything, "recipe:1", []byte("v"), time.Minute).Return(nil).Once()
	inner.On("Remove", mock.Anything, "recipe:1").Return(nil).Once()
	inner.On("RemoveByPrefix", mock.Anything, ListPrefix).Return(nil).Once()
	inner.On("Ping", mock.Anything).Return(nil).Once()

	store := NewBreakerStore(inner, DefaultBreakerConfig("test"), zap.NewNop())
	ctx := context.Background()

	value, found, err := store.Get(ctx, "recipe:1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), value)
	assert.NoError(t, store.Set(ctx, "recipe:1", []byte("v"), time.Minute))
	assert.NoError(t, store.Remove(ctx, "recipe:1"))
	assert.NoError(t, store.RemoveByPrefix(ctx, ListPrefix))
	assert.NoError(t, store.Ping(ctx))
	assert.Equal(t, gobreaker.StateClosed, store.State())
	inner.AssertExpectations(t)
}
