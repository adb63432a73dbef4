package cache

import (
	"context"
	"errors"

	"github.com/murali55525/erode-local-sub000/models"
)

var ErrCacheMiss = errors.New("cache miss")

// ProductCache is a read-through cache in front of the catalog table.
// Misses return ErrCacheMiss; any other error means the cache itself is
// unhealthy and callers should fall back to the database.
type ProductCache interface {
	Get(ctx context.Context, id uint) (*models.Product, error)
	Set(ctx context.Context, p *models.Product) error
	Invalidate(ctx context.Context, id uint) error
}

type noopCache struct{}

// NewNoop returns a cache that always misses, for deployments without
// redis configured.
func NewNoop() ProductCache { return noopCache{} }

func (noopCache) Get(context.Context, uint) (*models.Product, error) { return nil, ErrCacheMiss }
func (noopCache) Set(context.Context, *models.Product) error         { return nil }
func (noopCache) Invalidate(context.Context, uint) error             { return nil }
