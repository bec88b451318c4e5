package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservation/infras/otel/mocks"
	"reservation/shared/cache"
)

type availability struct {
	Available bool `json:"available"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), srv
}

func TestRedisCache_SaveGet(t *testing.T) {
	c, srv := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "availability:r1:a:b", availability{Available: true}, 30))

	var got availability
	require.NoError(t, c.Get(ctx, "availability:r1:a:b", &got))
	assert.True(t, got.Available)

	require.NoError(t, c.Save(ctx, "raw", "plain", 30))

	var raw string
	require.NoError(t, c.Get(ctx, "raw", &raw))
	assert.Equal(t, "plain", raw)

	srv.FastForward(31 * time.Second)

	err := c.Get(ctx, "raw", &raw)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_Clear(t *testing.T) {
	c, srv := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "availability:r1:a:b", "1", 60))
	require.NoError(t, c.Save(ctx, "availability:r1:c:d", "1", 60))
	require.NoError(t, c.Save(ctx, "availability:r2:a:b", "1", 60))

	require.NoError(t, c.Clear(ctx, "availability:r1:*"))

	assert.False(t, srv.Exists("availability:r1:a:b"))
	assert.False(t, srv.Exists("availability:r1:c:d"))
	assert.True(t, srv.Exists("availability:r2:a:b"))

	require.NoError(t, c.Delete(ctx, "availability:r2:a:b"))
	assert.False(t, srv.Exists("availability:r2:a:b"))
}

func TestRedisCache_Incr(t *testing.T) {
	c, srv := newCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := c.Incr(ctx, "limiter:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	srv.FastForward(time.Minute + time.Second)

	got, err := c.Incr(ctx, "limiter:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestRedisCache_GetUnmarshalError(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "bad", "not-json", 60))

	var got availability
	assert.Error(t, c.Get(ctx, "bad", &got))
}
