package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/models"
)

// fakeStore counts calls so cache hits are observable.
type fakeStore struct {
	names      []string
	count      int
	product    *models.Product
	err        error
	countCalls int
	listCalls  int
	catCalls   int
	findCalls  int
}

func (f *fakeStore) NamesByCategory(ctx context.Context, category string) ([]string, error) {
	f.catCalls++
	return f.names, f.err
}

func (f *fakeStore) Count(ctx context.Context) (int, error) {
	f.countCalls++
	return f.count, f.err
}

func (f *fakeStore) ListNames(ctx context.Context, limit int) ([]string, error) {
	f.listCalls++
	return f.names, f.err
}

func (f *fakeStore) FindByName(ctx context.Context, fragment string) (*models.Product, error) {
	f.findCalls++
	return f.product, f.err
}

func newCachedStore(t *testing.T, backend Store) (*CachedStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cached := NewCachedStore(backend, client, time.Minute, logger.NewZapAdapter(zaptest.NewLogger(t)))
	return cached, mr
}

func TestCachedStore_CountReadThrough(t *testing.T) {
	backend := &fakeStore{count: 7}
	cached, _ := newCachedStore(t, backend)

	count, err := cached.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.Equal(t, 1, backend.countCalls)

	// Second read served from cache
	count, err = cached.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.Equal(t, 1, backend.countCalls)
}

func TestCachedStore_CountExpiry(t *testing.T) {
	backend := &fakeStore{count: 3}
	cached, mr := newCachedStore(t, backend)

	_, err := cached.Count(context.Background())
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cached.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, backend.countCalls)
}

func TestCachedStore_NamesByCategory(t *testing.T) {
	backend := &fakeStore{names: []string{"Headphones", "Laptop"}}
	cached, _ := newCachedStore(t, backend)

	names, err := cached.NamesByCategory(context.Background(), "Electronics")
	require.NoError(t, err)
	assert.Equal(t, []string{"Headphones", "Laptop"}, names)

	// Category keys are case-folded
	names, err = cached.NamesByCategory(context.Background(), "electronics")
	require.NoError(t, err)
	assert.Equal(t, []string{"Headphones", "Laptop"}, names)
	assert.Equal(t, 1, backend.catCalls)
}

func TestCachedStore_BackendErrorNotCached(t *testing.T) {
	backend := &fakeStore{err: errors.New("db down")}
	cached, _ := newCachedStore(t, backend)

	_, err := cached.Count(context.Background())
	assert.Error(t, err)

	backend.err = nil
	backend.count = 9
	count, err := cached.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, count)
}

func TestCachedStore_RedisDownFallsThrough(t *testing.T) {
	backend := &fakeStore{count: 5}
	cached, mr := newCachedStore(t, backend)
	mr.Close()

	count, err := cached.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Equal(t, 1, backend.countCalls)
}

func TestCachedStore_FindByNameNeverCached(t *testing.T) {
	backend := &fakeStore{product: &models.Product{Name: "Milk", Price: 40}}
	cached, _ := newCachedStore(t, backend)

	for i := 0; i < 2; i++ {
		p, err := cached.FindByName(context.Background(), "milk")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Milk", p.Name)
	}
	assert.Equal(t, 2, backend.findCalls)
}

func TestCachedStore_CorruptEntryDropped(t *testing.T) {
	backend := &fakeStore{count: 11}
	cached, mr := newCachedStore(t, backend)

	require.NoError(t, mr.Set("products:product_count", "{not json"))

	count, err := cached.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 11, count)
	assert.Equal(t, 1, backend.countCalls)
}
