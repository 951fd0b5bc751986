package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rashmithaRKL/cake/models"
)

const (
	productCachePrefix = "product:detail:"
	productCacheTTL    = 5 * time.Minute
)

// CachedProductRepository is a read-through Redis cache in front of a
// ProductRepository. Product reads are cached; any stock mutation evicts the
// entry so checkout always sees fresh-enough stock on the next read. Cache
// failures degrade to the underlying store.
type CachedProductRepository struct {
	inner  ProductRepository
	redis  *redis.Client
	logger *zap.Logger
}

// NewCachedProductRepository wraps inner with a Redis product cache.
func NewCachedProductRepository(inner ProductRepository, redisClient *redis.Client, logger *zap.Logger) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, redis: redisClient, logger: logger}
}

func (r *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.inner.Create(ctx, product)
}

func (r *CachedProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := productCachePrefix + id.String()

	if cached, err := r.redis.Get(ctx, key).Result(); err == nil {
		var product models.Product
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			return &product, nil
		}
		r.logger.Warn("Discarding corrupt product cache entry", zap.String("key", key))
	}

	product, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := r.redis.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
			r.logger.Warn("Failed to cache product", zap.String("key", key), zap.Error(err))
		}
	}
	return product, nil
}

func (r *CachedProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if err := r.inner.DecrementStock(ctx, id, quantity); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *CachedProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if err := r.inner.RestoreStock(ctx, id, quantity); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *CachedProductRepository) evict(ctx context.Context, id uuid.UUID) {
	key := productCachePrefix + id.String()
	if err := r.redis.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("Failed to evict product cache entry", zap.String("key", key), zap.Error(err))
	}
}
