package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	catalogCache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return catalogCache, mr, cleanup
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID:       "1",
			Name:     "Radiant Tee",
			SKU:      "WS12",
			Price:    decimal.RequireFromString("22.00"),
			Currency: "USD",
			ImageURL: "https://example.com/tee.jpg",
		},
		{
			ID:       "2",
			Name:     "Crown Summit Backpack",
			SKU:      "24-MB03",
			Price:    decimal.RequireFromString("38.00"),
			Currency: "USD",
		},
	}
}

func TestGet_Success(t *testing.T) {
	catalogCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()

	productsJSON, _ := json.Marshal(sampleProducts())
	mr.Set(cacheKey(), string(productsJSON))

	result, err := catalogCache.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "Radiant Tee", result[0].Name)
	assert.True(t, result[0].Price.Equal(decimal.RequireFromString("22.00")))
}

func TestGet_CacheMiss(t *testing.T) {
	catalogCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := catalogCache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	catalogCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	productsJSON, err := json.Marshal(sampleProducts())
	require.NoError(t, err)
	invalid := productsJSON[0:10]
	e2 := mr.Set(cacheKey(), string(invalid))
	require.NoError(t, e2)

	_, cacheError := catalogCache.Get(context.Background())
	require.ErrorContains(t, cacheError, "unmarshal catalog failed")
}

func TestSet_Success(t *testing.T) {
	catalogCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	err := catalogCache.Set(context.Background(), sampleProducts())
	require.NoError(t, err)

	stored, e2 := mr.Get(cacheKey())
	require.NoError(t, e2)
	assert.NotEmpty(t, stored)

	var storedProducts []domain.Product
	err = json.Unmarshal([]byte(stored), &storedProducts)
	require.NoError(t, err)
	assert.Len(t, storedProducts, 2)
	assert.Equal(t, "24-MB03", storedProducts[1].SKU)
}

func TestSet_WithTTL(t *testing.T) {
	catalogCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	err := catalogCache.Set(context.Background(), sampleProducts())
	require.NoError(t, err)

	// Check that TTL was set (miniredis tracks TTL)
	ttl := mr.TTL(cacheKey())
	assert.True(t, ttl >= 2*time.Minute, "TTL should be at least base TTL")
	assert.True(t, ttl <= 3*time.Minute, "TTL should be base + max jitter")
}

func TestDelete_Success(t *testing.T) {
	catalogCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	productsJSON, _ := json.Marshal(sampleProducts())
	mr.Set(cacheKey(), string(productsJSON))
	assert.True(t, mr.Exists(cacheKey()))

	err := catalogCache.Delete(context.Background())
	require.NoError(t, err)

	assert.False(t, mr.Exists(cacheKey()))
}

func TestDelete_NonExistentKey(t *testing.T) {
	catalogCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	// Deleting a non-existent key should not error
	err := catalogCache.Delete(context.Background())
	assert.NoError(t, err)
}
