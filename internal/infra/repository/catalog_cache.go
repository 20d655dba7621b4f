package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/cache"
	"github.com/totegamma/foodgram/internal/logger"
)

type catalogSource interface {
	ListTags(ctx context.Context) ([]domain.Tag, error)
	GetTag(ctx context.Context, id int64) (domain.Tag, error)
	SearchIngredients(ctx context.Context, prefix string) ([]domain.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error)
	ExistingTagIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	ExistingIngredientIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// CachedCatalogRepository is a read-through cache in front of the catalog.
// Cache failures are logged and fall back to the source.
type CachedCatalogRepository struct {
	source catalogSource
	cache  cache.Cache
	ttl    time.Duration
	log    *logger.Logger
}

func NewCachedCatalogRepository(source catalogSource, c cache.Cache, ttl time.Duration, log *logger.Logger) *CachedCatalogRepository {
	return &CachedCatalogRepository{
		source: source,
		cache:  c,
		ttl:    ttl,
		log:    log.With("component", "CachedCatalogRepository"),
	}
}

func (r *CachedCatalogRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return readThrough(ctx, r, cache.Key("tags", "all"), func() ([]domain.Tag, error) {
		return r.source.ListTags(ctx)
	})
}

func (r *CachedCatalogRepository) GetTag(ctx context.Context, id int64) (domain.Tag, error) {
	return readThrough(ctx, r, cache.Key("tag", strconv.FormatInt(id, 10)), func() (domain.Tag, error) {
		return r.source.GetTag(ctx, id)
	})
}

func (r *CachedCatalogRepository) SearchIngredients(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	return readThrough(ctx, r, cache.Key("ingredients", prefix), func() ([]domain.Ingredient, error) {
		return r.source.SearchIngredients(ctx, prefix)
	})
}

func (r *CachedCatalogRepository) GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error) {
	return readThrough(ctx, r, cache.Key("ingredient", strconv.FormatInt(id, 10)), func() (domain.Ingredient, error) {
		return r.source.GetIngredient(ctx, id)
	})
}

// ExistingTagIDs bypasses the cache; it guards writes.
func (r *CachedCatalogRepository) ExistingTagIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	return r.source.ExistingTagIDs(ctx, ids)
}

// ExistingIngredientIDs bypasses the cache; it guards writes.
func (r *CachedCatalogRepository) ExistingIngredientIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	return r.source.ExistingIngredientIDs(ctx, ids)
}

func readThrough[T any](ctx context.Context, r *CachedCatalogRepository, key string, load func() (T, error)) (T, error) {
	var cached T
	hit, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.log.Warn("cache get failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		r.log.Warn("cache set failed", "key", key, "error", err)
	}
	return value, nil
}
