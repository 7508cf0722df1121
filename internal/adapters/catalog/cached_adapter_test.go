package catalog_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/adapters/cache"
	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/domain/entities"
	redisclient "github.com/pharmavault/backend/internal/infrastructure/clients/redis"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

// countingRepository counts lookups reaching the wrapped catalog.
type countingRepository struct {
	*catalog.MemoryAdapter
	getByID int
	search  int
}

func (r *countingRepository) GetByID(ctx context.Context, id string) (*entities.Medicine, error) {
	r.getByID++
	return r.MemoryAdapter.GetByID(ctx, id)
}

func (r *countingRepository) Search(ctx context.Context, query string) ([]*entities.Medicine, error) {
	r.search++
	return r.MemoryAdapter.Search(ctx, query)
}

func newCachedCatalog(t *testing.T) (*catalog.CachedAdapter, *countingRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &countingRepository{MemoryAdapter: catalog.NewSeededMemoryAdapter()}
	adapter := catalog.NewCachedAdapter(repo, cache.NewRedisAdapter(redisclient.Wrap(client)), 60).WithSyncWrites()
	return adapter, repo, mr
}

func TestCachedAdapter_GetByIDReadsThrough(t *testing.T) {
	adapter, repo, mr := newCachedCatalog(t)
	ctx := context.Background()

	first, err := adapter.GetByID(ctx, "med-003")
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.KeyPrefix+"medicine:med-003"))

	second, err := adapter.GetByID(ctx, "med-003")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getByID)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Interactions, second.Interactions)
}

func TestCachedAdapter_NotFoundIsNotCached(t *testing.T) {
	adapter, repo, mr := newCachedCatalog(t)
	ctx := context.Background()

	_, err := adapter.GetByID(ctx, "med-404")
	assert.True(t, apperrors.IsNotFound(err))
	_, err = adapter.GetByID(ctx, "med-404")
	assert.True(t, apperrors.IsNotFound(err))

	assert.Equal(t, 2, repo.getByID)
	assert.False(t, mr.Exists(cache.KeyPrefix+"medicine:med-404"))
}

func TestCachedAdapter_SearchNormalizesKey(t *testing.T) {
	adapter, repo, _ := newCachedCatalog(t)
	ctx := context.Background()

	_, err := adapter.Search(ctx, "Amox")
	require.NoError(t, err)
	got, err := adapter.Search(ctx, "  amox ")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "med-002", got[0].ID)
	assert.Equal(t, 1, repo.search)
}

func TestCachedAdapter_CorruptEntryFallsBack(t *testing.T) {
	adapter, repo, mr := newCachedCatalog(t)
	require.NoError(t, mr.Set(cache.KeyPrefix+"medicine:med-001", "{not json"))

	m, err := adapter.GetByID(context.Background(), "med-001")
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", m.Name)
	assert.Equal(t, 1, repo.getByID)
}

func TestCachedAdapter_InvalidateDropsRecordAndLookups(t *testing.T) {
	adapter, repo, mr := newCachedCatalog(t)
	ctx := context.Background()

	_, err := adapter.GetByID(ctx, "med-002")
	require.NoError(t, err)
	_, err = adapter.GetByName(ctx, "Amoxicillin")
	require.NoError(t, err)
	_, err = adapter.List(ctx)
	require.NoError(t, err)
	_, err = adapter.ListByCategory(ctx, "Antibiotic")
	require.NoError(t, err)

	require.NoError(t, adapter.Invalidate(ctx, "med-002"))

	assert.False(t, mr.Exists(cache.KeyPrefix+"medicine:med-002"))
	assert.False(t, mr.Exists(cache.KeyPrefix+"medicine:name:amoxicillin"))
	assert.False(t, mr.Exists(cache.KeyPrefix+"medicines:list"))
	assert.False(t, mr.Exists(cache.KeyPrefix+"medicines:category:antibiotic"))

	_, err = adapter.GetByID(ctx, "med-002")
	require.NoError(t, err)
	assert.Equal(t, 3, repo.getByID, "invalidate reads the current row, then the next lookup misses")
}

func TestCachedAdapter_InvalidateUnknownMedicine(t *testing.T) {
	adapter, _, _ := newCachedCatalog(t)
	assert.NoError(t, adapter.Invalidate(context.Background(), "med-999"))
}
