package ddvalidate

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// memoryStore is the default, process-scoped cacheStore tier: a bounded
// LRU of id -> cacheEntry (spec §4.1, "a process- or run-scoped
// mapping"). It never blocks on I/O, so it never returns a non-nil error.
type memoryStore struct {
	cache *lru.Cache[string, cacheEntry]
}

// LRUStore builds an in-process LRU-backed cache tier holding up to size
// entries.
func LRUStore(size int) (*memoryStore, error) {
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &memoryStore{cache: cache}, nil
}

func (m *memoryStore) get(_ context.Context, key string) (cacheEntry, bool, error) {
	entry, ok := m.cache.Get(key)
	return entry, ok, nil
}

func (m *memoryStore) set(_ context.Context, key string, entry cacheEntry) error {
	m.cache.Add(key, entry)
	return nil
}
