package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/olwandejj/Quizzify/internal/domain"
)

// CatalogLoader fetches category content from a backing store (builtin map,
// SQLite file, Postgres).
type CatalogLoader interface {
	LoadCategory(ctx context.Context, name string) (domain.Category, error)
	CategoryNames(ctx context.Context) ([]string, error)
}

// CatalogRepository caches categories in Redis as JSON blobs and falls back
// to a loader on cache miss. Content is stored as:
// SET catalog:category:{name} {json} and SET catalog:names {json array}.
type CatalogRepository struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) QuestionsFor(ctx context.Context, name string) ([]domain.Question, error) {
	key := r.categoryKey(name)

	if category, ok := r.cachedCategory(ctx, key); ok {
		return category.Questions, nil
	}

	result, err, _ := r.sf.Do("category:"+name, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if category, ok := r.cachedCategory(ctx, key); ok {
			return category, nil
		}

		category, err := r.loader.LoadCategory(ctx, name)
		if err != nil {
			return domain.Category{}, err
		}

		if data, err := json.Marshal(category); err == nil {
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return category, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.Category).Questions, nil
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]string, error) {
	key := r.namesKey()

	if names, ok := r.cachedNames(ctx, key); ok {
		return names, nil
	}

	result, err, _ := r.sf.Do("names", func() (interface{}, error) {
		if names, ok := r.cachedNames(ctx, key); ok {
			return names, nil
		}

		names, err := r.loader.CategoryNames(ctx)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(names); err == nil {
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func (r *CatalogRepository) cachedCategory(ctx context.Context, key string) (domain.Category, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return domain.Category{}, false
	}
	var category domain.Category
	if err := json.Unmarshal(raw, &category); err != nil {
		return domain.Category{}, false
	}
	return category, true
}

func (r *CatalogRepository) cachedNames(ctx context.Context, key string) ([]string, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, false
	}
	return names, true
}

func (r *CatalogRepository) categoryKey(name string) string {
	return "catalog:category:" + name
}

func (r *CatalogRepository) namesKey() string {
	return "catalog:names"
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
