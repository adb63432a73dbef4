package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/murali55525/erode-local-sub000/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) (ProductCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisProductCache(rdb, time.Minute), mr
}

func TestRedisProductCache_RoundTrip(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	p := &models.Product{ID: 7, Name: "Silk Saree", Price: 1200, Colors: []string{"red"}}
	require.NoError(t, c.Set(ctx, p))

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Price, got.Price)
	assert.Equal(t, []string(p.Colors), []string(got.Colors))
}

func TestRedisProductCache_Miss(t *testing.T) {
	c, _ := testCache(t)
	_, err := c.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisProductCache_Invalidate(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &models.Product{ID: 7, Name: "Silk Saree"}))
	require.NoError(t, c.Invalidate(ctx, 7))

	_, err := c.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisProductCache_Expiry(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &models.Product{ID: 7, Name: "Silk Saree"}))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
