package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	Service
	recommends int
	suggests   int
}

func (c *countingService) Recommend(ctx context.Context, title string, f Filters) ([]Item, error) {
	c.recommends++
	return c.Service.Recommend(ctx, title, f)
}

func (c *countingService) Suggest(ctx context.Context, q string) ([]string, error) {
	c.suggests++
	return c.Service.Suggest(ctx, q)
}

func newCached(t *testing.T) (*countingService, Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &countingService{Service: NewService(fixtureStore(t))}
	return inner, NewCachedService(inner, rdb, time.Minute, "test"), mr
}

func TestCachedRecommendHit(t *testing.T) {
	inner, svc, mr := newCached(t)
	ctx := context.Background()

	first, err := svc.Recommend(ctx, "A", Filters{Type: "Movie"})
	require.NoError(t, err)
	second, err := svc.Recommend(ctx, "A", Filters{Type: "Movie"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.recommends)
	assert.Len(t, mr.Keys(), 1)

	_, err = svc.Recommend(ctx, "A", Filters{Type: "TV Show"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.recommends)
}

func TestCachedRecommendNotFoundIsNotCached(t *testing.T) {
	inner, svc, mr := newCached(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Recommend(ctx, "missing", Filters{})
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 2, inner.recommends)
	assert.Empty(t, mr.Keys())
}

func TestCachedEmptyResultStaysEmptyList(t *testing.T) {
	_, svc, _ := newCached(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		items, err := svc.Recommend(ctx, "A", Filters{Genre: "Anime"})
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	}
}

func TestCachedSuggest(t *testing.T) {
	inner, svc, _ := newCached(t)
	ctx := context.Background()

	got, err := svc.Suggest(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got)

	got, err = svc.Suggest(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got)
	assert.Equal(t, 1, inner.suggests)

	got, err = svc.Suggest(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCachedFallsThroughWhenRedisIsDown(t *testing.T) {
	inner, svc, mr := newCached(t)
	mr.Close()

	items, err := svc.Recommend(context.Background(), "A", Filters{})
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, 1, inner.recommends)
}
