package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/providers"
	"github.com/pharmavault/backend/internal/domain/repositories"
	"github.com/pharmavault/backend/internal/infrastructure/observability"
)

// CachedAdapter wraps a MedicineRepository with read-through caching
type CachedAdapter struct {
	repo  repositories.MedicineRepository
	cache providers.CacheProvider
	ttl   int

	// async cache writes; tests turn this off to observe writes immediately
	async   bool
	metrics *observability.Metrics
}

// Cache TTLs (in seconds)
const (
	defaultMedicineTTL = 600
	searchResultsTTL   = 120
)

// NewCachedAdapter creates a new cached catalog. ttlSeconds <= 0 uses the
// default of 10 minutes for single records.
func NewCachedAdapter(repo repositories.MedicineRepository, cache providers.CacheProvider, ttlSeconds int) *CachedAdapter {
	if ttlSeconds <= 0 {
		ttlSeconds = defaultMedicineTTL
	}
	return &CachedAdapter{repo: repo, cache: cache, ttl: ttlSeconds, async: true}
}

// WithSyncWrites makes cache population block the caller.
func (a *CachedAdapter) WithSyncWrites() *CachedAdapter {
	a.async = false
	return a
}

// WithMetrics records hits and misses on m.
func (a *CachedAdapter) WithMetrics(m *observability.Metrics) *CachedAdapter {
	a.metrics = m
	return a
}

var _ repositories.MedicineRepository = (*CachedAdapter)(nil)

// Cache key generators
func medicineCacheKey(id string) string {
	return fmt.Sprintf("medicine:%s", id)
}

func medicineNameCacheKey(name string) string {
	return fmt.Sprintf("medicine:name:%s", strings.ToLower(strings.TrimSpace(name)))
}

func medicineSearchCacheKey(query string) string {
	return fmt.Sprintf("medicines:search:%s", strings.ToLower(strings.TrimSpace(query)))
}

func medicineCategoryCacheKey(category string) string {
	return fmt.Sprintf("medicines:category:%s", strings.ToLower(category))
}

const medicinesListCacheKey = "medicines:list"

// GetByID retrieves a medicine by ID with caching
func (a *CachedAdapter) GetByID(ctx context.Context, id string) (*entities.Medicine, error) {
	key := medicineCacheKey(id)
	var cached entities.Medicine
	if a.load(ctx, key, &cached) {
		return &cached, nil
	}

	medicine, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.store(key, medicine, a.ttl)
	return medicine, nil
}

// GetByName retrieves a medicine by name with caching
func (a *CachedAdapter) GetByName(ctx context.Context, name string) (*entities.Medicine, error) {
	key := medicineNameCacheKey(name)
	var cached entities.Medicine
	if a.load(ctx, key, &cached) {
		return &cached, nil
	}

	medicine, err := a.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	a.store(key, medicine, a.ttl)
	return medicine, nil
}

// Search runs a catalog search with caching
func (a *CachedAdapter) Search(ctx context.Context, query string) ([]*entities.Medicine, error) {
	return a.list(ctx, medicineSearchCacheKey(query), searchResultsTTL, func() ([]*entities.Medicine, error) {
		return a.repo.Search(ctx, query)
	})
}

// ListByCategory lists a category with caching
func (a *CachedAdapter) ListByCategory(ctx context.Context, category string) ([]*entities.Medicine, error) {
	return a.list(ctx, medicineCategoryCacheKey(category), a.ttl, func() ([]*entities.Medicine, error) {
		return a.repo.ListByCategory(ctx, category)
	})
}

// List lists the whole catalog with caching
func (a *CachedAdapter) List(ctx context.Context) ([]*entities.Medicine, error) {
	return a.list(ctx, medicinesListCacheKey, a.ttl, func() ([]*entities.Medicine, error) {
		return a.repo.List(ctx)
	})
}

func (a *CachedAdapter) list(ctx context.Context, key string, ttl int, fetch func() ([]*entities.Medicine, error)) ([]*entities.Medicine, error) {
	var cached []*entities.Medicine
	if a.load(ctx, key, &cached) {
		return cached, nil
	}

	medicines, err := fetch()
	if err != nil {
		return nil, err
	}
	a.store(key, medicines, ttl)
	return medicines, nil
}

// load reports whether key was found and decoded into dst. Cache errors are
// treated as misses.
func (a *CachedAdapter) load(ctx context.Context, key string, dst any) bool {
	kind := cacheKind(key)
	data, err := a.cache.Get(ctx, key)
	if err != nil {
		observability.RecordCacheMiss(ctx, a.metrics, kind)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to unmarshal cached medicine data")
		observability.RecordCacheMiss(ctx, a.metrics, kind)
		return false
	}
	observability.RecordCacheHit(ctx, a.metrics, kind)
	return true
}

// cacheKind maps a key to its family so metrics stay low-cardinality.
func cacheKind(key string) string {
	for _, prefix := range []string{"medicine:name:", "medicines:search:", "medicines:category:", "medicine:"} {
		if strings.HasPrefix(key, prefix) {
			return strings.TrimSuffix(prefix, ":")
		}
	}
	return key
}

func (a *CachedAdapter) store(key string, value any, ttl int) {
	write := func() {
		data, err := json.Marshal(value)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to marshal medicine data for cache")
			return
		}
		if err := a.cache.Set(context.Background(), key, data, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache medicine data")
		}
	}
	if a.async {
		// Update cache asynchronously to avoid blocking the response
		go write()
		return
	}
	write()
}

// Invalidate drops every cached entry that can hold medicine id: the record,
// its name lookups, its category and the full list. Names are taken from both
// the cached copy and the current catalog row so renames are covered. Search
// results are left to expire.
func (a *CachedAdapter) Invalidate(ctx context.Context, id string) error {
	keys := map[string]struct{}{
		medicineCacheKey(id):  {},
		medicinesListCacheKey: {},
	}
	addRecord := func(m *entities.Medicine) {
		for _, name := range []string{m.Name, m.GenericName} {
			if strings.TrimSpace(name) != "" {
				keys[medicineNameCacheKey(name)] = struct{}{}
			}
		}
		if m.Category != "" {
			keys[medicineCategoryCacheKey(m.Category)] = struct{}{}
		}
	}

	if data, err := a.cache.Get(ctx, medicineCacheKey(id)); err == nil {
		var cached entities.Medicine
		if json.Unmarshal(data, &cached) == nil {
			addRecord(&cached)
		}
	}
	if current, err := a.repo.GetByID(ctx, id); err == nil {
		addRecord(current)
	}

	for key := range keys {
		if err := a.cache.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to invalidate %s: %w", key, err)
		}
	}
	log.Debug().Str("medicine_id", id).Int("keys", len(keys)).Msg("invalidated cached medicine")
	return nil
}
