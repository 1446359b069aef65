package ddvalidate

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreLookup(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	store, err := RedisStore(RedisStoreConfig{Address: server.Addr(), Prefix: "dd:"})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	entry := cacheEntry{Term: &Term{Key: "a"}, Found: true}
	require.NoError(t, store.set(ctx, "a", entry))

	got, ok, err := store.get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", got.Term.Key)

	_, ok, err = store.get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStoreExpiresByTTL(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	store, err := RedisStore(RedisStoreConfig{Address: server.Addr(), TTL: 500 * time.Millisecond})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.set(ctx, "a", cacheEntry{Found: false}))

	server.FastForward(time.Second)
	_, ok, err := store.get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTermCacheWithRedisStore(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	store, err := RedisStore(RedisStoreConfig{Address: server.Addr()})
	require.NoError(t, err)
	defer store.Close()

	repo := &countingRepo{mockRepo: newMockRepo().put(&Term{Key: "a"})}
	cache := NewTermCache(repo).WithStore(store)
	ctx := context.Background()

	_, err = cache.Lookup(ctx, "a")
	require.NoError(t, err)
	_, err = cache.Lookup(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 1, repo.gets, "second lookup should be served from the shared redis tier")
}
