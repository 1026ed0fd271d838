package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/olwandejj/Quizzify/internal/domain"
)

// CatalogLoader fetches category content from a backing store (builtin map,
// SQLite file, Postgres).
type CatalogLoader interface {
	LoadCategory(ctx context.Context, name string) (domain.Category, error)
	CategoryNames(ctx context.Context) ([]string, error)
}

// CatalogRepository caches categories with TTL to avoid repeated store hits.
type CatalogRepository struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedCategory
	names cachedNames
}

type cachedCategory struct {
	category  domain.Category
	expiresAt time.Time
}

type cachedNames struct {
	names     []string
	expiresAt time.Time
}

func NewCatalogRepository(loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedCategory),
	}
}

func (r *CatalogRepository) QuestionsFor(ctx context.Context, name string) ([]domain.Question, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[name]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.category.Questions, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("category:"+name, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[name]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.category, nil
		}
		r.mu.RUnlock()

		category, err := r.loader.LoadCategory(ctx, name)
		if err != nil {
			return domain.Category{}, err
		}

		r.mu.Lock()
		r.cache[name] = cachedCategory{
			category:  category,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return category, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.Category).Questions, nil
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]string, error) {
	now := r.clock()

	r.mu.RLock()
	if r.names.names != nil && r.names.expiresAt.After(now) {
		names := r.names.names
		r.mu.RUnlock()
		return names, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("names", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.names.names != nil && r.names.expiresAt.After(now) {
			names := r.names.names
			r.mu.RUnlock()
			return names, nil
		}
		r.mu.RUnlock()

		names, err := r.loader.CategoryNames(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.names = cachedNames{
			names:     names,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// StaticCatalogLoader serves a fixed in-memory category set. It backs the
// builtin catalog and is handy in tests.
type StaticCatalogLoader struct {
	categories map[string]domain.Category
}

func NewStaticCatalogLoader(categories map[string]domain.Category) *StaticCatalogLoader {
	return &StaticCatalogLoader{categories: categories}
}

func (l *StaticCatalogLoader) LoadCategory(_ context.Context, name string) (domain.Category, error) {
	if category, ok := l.categories[name]; ok {
		return category, nil
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

func (l *StaticCatalogLoader) CategoryNames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(l.categories))
	for name := range l.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
