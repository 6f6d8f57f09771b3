package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/document_reception_app/internal/adapters/cache"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the subset of redis.Cmdable the cache uses.
type fakeRedis struct {
	redis.Cmdable
	data    map[string]string
	ttls    map[string]time.Duration
	failing bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.failing {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.failing {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisMasterDataCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newFakeRedis()
	c := cache.NewRedisMasterDataCache(backend)

	var got []domain.Department
	assert.False(t, c.Get(ctx, "master:departments:active", &got))

	want := []domain.Department{{DepartmentID: "d-1", Code: "A", Name: "Building", IsActive: true}}
	c.Set(ctx, "master:departments:active", want, time.Minute)
	assert.Equal(t, time.Minute, backend.ttls["master:departments:active"])

	require.True(t, c.Get(ctx, "master:departments:active", &got))
	assert.Equal(t, "d-1", got[0].DepartmentID)
	assert.Equal(t, "Building", got[0].Name)

	c.Invalidate(ctx, "master:departments:active", "master:workflow_templates")
	assert.False(t, c.Get(ctx, "master:departments:active", &got))
}

func TestRedisMasterDataCache_CorruptEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	backend := newFakeRedis()
	backend.data["k"] = "{not json"
	c := cache.NewRedisMasterDataCache(backend)

	var got []domain.Department
	assert.False(t, c.Get(ctx, "k", &got))
	_, stillThere := backend.data["k"]
	assert.False(t, stillThere)
}

func TestRedisMasterDataCache_BackendFailureIsAMiss(t *testing.T) {
	ctx := context.Background()
	backend := newFakeRedis()
	backend.failing = true
	c := cache.NewRedisMasterDataCache(backend)

	c.Set(ctx, "k", []string{"x"}, time.Minute)
	var got []string
	assert.False(t, c.Get(ctx, "k", &got))
}

func TestNoopMasterDataCache(t *testing.T) {
	var c cache.NoopMasterDataCache
	c.Set(context.Background(), "k", 1, time.Minute)
	var got int
	assert.False(t, c.Get(context.Background(), "k", &got))
	c.Invalidate(context.Background(), "k")
}
