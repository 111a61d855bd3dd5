package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCacheStore is a mock implementation of the cache store
type MockCacheStore struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	value, _ := args.Get(0).([]byte)
	return value, args.Bool(1), args.Error(2)
}

// Set mocks the Set method
func (m *MockCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

// Remove mocks the Remove method
func (m *MockCacheStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// RemoveByPrefix mocks the RemoveByPrefix method
func (m *MockCacheStore) RemoveByPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

// Ping mocks the Ping method
func (m *MockCacheStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
