package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/murali55525/erode-local-sub000/models"
	"github.com/redis/go-redis/v9"
)

type redisProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProductCache(rdb *redis.Client, ttl time.Duration) ProductCache {
	return &redisProductCache{rdb: rdb, ttl: ttl}
}

func productKey(id uint) string { return fmt.Sprintf("product:%d", id) }

func (c *redisProductCache) Get(ctx context.Context, id uint) (*models.Product, error) {
	raw, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *redisProductCache) Set(ctx context.Context, p *models.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKey(p.ID), raw, c.ttl).Err()
}

func (c *redisProductCache) Invalidate(ctx context.Context, id uint) error {
	return c.rdb.Del(ctx, productKey(id)).Err()
}
