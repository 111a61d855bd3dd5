package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "recipeshare:", time.Minute), mr
}

func TestRedisStoreGetSet(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "recipe:1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "recipe:1", []byte(`{"id":1}`), 30*time.Second))
	assert.True(t, mr.Exists("recipeshare:recipe:1"), "keys are namespaced")
	assert.Equal(t, 30*time.Second, mr.TTL("recipeshare:recipe:1"))

	value, found, err := store.Get(ctx, "recipe:1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"id":1}`, string(value))

	mr.FastForward(31 * time.Second)
	_, found, err = store.Get(ctx, "recipe:1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "recipe:2", []byte("x"), 0))
	assert.Equal(t, time.Minute, mr.TTL("recipeshare:recipe:2"))
}

func TestRedisStoreRemoveByPrefix(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	// Several SCAN batches worth of keys
	for i := 0; i < 2*scanBatchSize+5; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("recipe:list:%d", i), []byte("page"), 0))
	}
	require.NoError(t, store.Set(ctx, DetailKey(42), []byte("detail"), 0))
	require.NoError(t, mr.Set("other:recipe:list:1", "foreign"))

	require.NoError(t, store.RemoveByPrefix(ctx, ListPrefix))

	keys := mr.Keys()
	assert.ElementsMatch(t, []string{"recipeshare:recipe:id:42", "other:recipe:list:1"}, keys)

	require.NoError(t, store.Remove(ctx, DetailKey(42)))
	assert.False(t, mr.Exists("recipeshare:recipe:id:42"))
}

func TestRedisStoreDetailFlushKeepsLists(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, DetailKey(1), []byte("detail"), 0))
	require.NoError(t, store.Set(ctx, DetailKey(2), []byte("detail"), 0))
	require.NoError(t, store.Set(ctx, "recipe:list:abc", []byte("page"), 0))

	require.NoError(t, store.RemoveByPrefix(ctx, detailPrefix))

	assert.Equal(t, []string{"recipeshare:recipe:list:abc"}, mr.Keys())
}

func TestRedisStoreFailuresAreUnavailable(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	mr.SetError("ERR cache down")
	_, _, err := store.Get(ctx, "recipe:1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	assert.ErrorIs(t, store.Set(ctx, "recipe:1", []byte("x"), 0), ErrUnavailable)
	assert.ErrorIs(t, store.Ping(ctx), ErrUnavailable)

	mr.SetError("")
	assert.NoError(t, store.Ping(ctx))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `a\*b\?c\[d\]`, escapeGlob("a*b?c[d]"))
}
