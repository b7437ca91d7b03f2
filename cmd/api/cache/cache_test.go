package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(8, time.Minute)

	_, ok := m.Get(ctx, "blogs")
	assert.False(t, ok)

	m.Set(ctx, "blogs", []byte(`[{"id":"1"}]`))
	got, ok := m.Get(ctx, "blogs")
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))
	assert.Equal(t, 1, m.Len())
}

func TestMemoryExpires(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(8, 20*time.Millisecond)

	m.Set(ctx, "blogs/1", []byte(`{}`))
	assert.Eventually(t, func() bool {
		_, ok := m.Get(ctx, "blogs/1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2, time.Minute)

	m.Set(ctx, "a", []byte("1"))
	m.Set(ctx, "b", []byte("2"))
	m.Get(ctx, "a")
	m.Set(ctx, "c", []byte("3"))

	_, ok := m.Get(ctx, "b")
	assert.False(t, ok)
	_, ok = m.Get(ctx, "a")
	assert.True(t, ok)
}

func TestRedisGetSet(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	r := NewRedis(client, "test:", time.Minute)

	_, ok := r.Get(ctx, "blogs")
	assert.False(t, ok)

	r.Set(ctx, "blogs", []byte(`[]`))
	got, ok := r.Get(ctx, "blogs")
	require.True(t, ok)
	assert.Equal(t, `[]`, string(got))
	assert.True(t, mr.Exists("test:blogs"))

	mr.FastForward(2 * time.Minute)
	_, ok = r.Get(ctx, "blogs")
	assert.False(t, ok)
}

func TestRedisUnavailableIsMiss(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	r := NewRedis(client, "test:", time.Minute)

	mr.Close()

	r.Set(ctx, "blogs", []byte(`[]`))
	_, ok := r.Get(ctx, "blogs")
	assert.False(t, ok)
}
