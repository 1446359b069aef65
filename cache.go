package ddvalidate

import (
	"context"
)

// Repository is the external term store C1 consults (spec §4.1). It is
// the only collaborator the core depends on; HTTP shape, storage engine
// and CRUD concerns all live behind this contract, outside this module.
type Repository interface {
	// GetTerm returns the term with the given key, or ErrTermNotFound.
	GetTerm(ctx context.Context, key string) (*Term, error)

	// CollectionExists reports whether a collection with the given name
	// is known to the repository.
	CollectionExists(ctx context.Context, name string) (bool, error)

	// QueryEnumByCode returns the keys of every term whose code-section
	// field named by codeField equals value and whose enum path contains
	// enumType (spec §4.1's findEnumByCode).
	QueryEnumByCode(ctx context.Context, codeField, value, enumType string) ([]string, error)
}

// cacheStore is the pluggable backing of a TermCache tier: an
// in-process LRU (cachestore_memory.go) or a shared cross-process store
// (cachestore_redis.go).
type cacheStore interface {
	get(ctx context.Context, key string) (entry cacheEntry, ok bool, err error)
	set(ctx context.Context, key string, entry cacheEntry) error
}

// cacheEntry memoizes either a found term projection or a recorded miss.
type cacheEntry struct {
	Term  *Term
	Found bool
}

// TermCache implements C1's lookup/lookupDescriptor/exists/
// collectionExists/findEnumByCode contract over a Repository, with an
// optional memoization tier in front of it (spec §4.1, "Caching").
type TermCache struct {
	repo    Repository
	store   cacheStore
	metrics *Metrics
}

// NewTermCache builds a TermCache backed by repo with no memoization
// tier; every lookup reaches the repository directly.
func NewTermCache(repo Repository) *TermCache {
	return &TermCache{repo: repo}
}

// WithStore attaches a cacheStore tier (in-process LRU or shared) to the
// cache. Call LRUStore or RedisStore to build one.
func (c *TermCache) WithStore(store cacheStore) *TermCache {
	c.store = store
	return c
}

// WithMetrics attaches a counters sink observing cache hit/miss outcomes.
func (c *TermCache) WithMetrics(metrics *Metrics) *TermCache {
	c.metrics = metrics
	return c
}

// lookupOptions controls whether a call consults/populates the
// memoization tier, mirroring spec §4.1's cache/cacheMisses parameters.
type lookupOptions struct {
	cache       bool
	cacheMisses bool
}

func defaultLookupOptions() lookupOptions {
	return lookupOptions{cache: true, cacheMisses: true}
}

// Lookup resolves id to its minimal term projection (spec §4.1's
// "lookup"). ErrTermNotFound is returned, not panicked, when the term
// does not exist — callers turn this into a reportable code at the
// walker boundary, not a Go error escaping the validation surface.
func (c *TermCache) Lookup(ctx context.Context, id string, opts ...func(*lookupOptions)) (*Term, error) {
	o := defaultLookupOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if c.store != nil && o.cache {
		if entry, ok, err := c.store.get(ctx, id); err == nil && ok {
			c.metrics.ObserveCacheLookup(true)
			if !entry.Found {
				return nil, ErrTermNotFound
			}
			return entry.Term, nil
		}
	}
	c.metrics.ObserveCacheLookup(false)

	term, err := c.repo.GetTerm(ctx, id)
	if err != nil {
		if err == ErrTermNotFound && c.store != nil && o.cache && o.cacheMisses {
			_ = c.store.set(ctx, id, cacheEntry{Found: false})
		}
		return nil, err
	}

	projection := term.Projection()
	if c.store != nil && o.cache {
		_ = c.store.set(ctx, id, cacheEntry{Term: projection, Found: true})
	}
	return projection, nil
}

// LookupDescriptor is Lookup, additionally failing with ErrNotADescriptor
// when the resolved term carries no data section.
func (c *TermCache) LookupDescriptor(ctx context.Context, id string, opts ...func(*lookupOptions)) (*Term, error) {
	term, err := c.Lookup(ctx, id, opts...)
	if err != nil {
		return nil, err
	}
	if !term.IsDescriptor() {
		return nil, ErrNotADescriptor
	}
	return term, nil
}

// Exists reports whether handle resolves to a document (spec §4.1's
// "exists").
func (c *TermCache) Exists(ctx context.Context, handle string, opts ...func(*lookupOptions)) (bool, error) {
	_, err := c.Lookup(ctx, handle, opts...)
	if err == nil {
		return true, nil
	}
	if err == ErrTermNotFound {
		return false, nil
	}
	return false, err
}

// CollectionExists reports whether name is a known collection.
func (c *TermCache) CollectionExists(ctx context.Context, name string) (bool, error) {
	return c.repo.CollectionExists(ctx, name)
}

// FindEnumByCode implements spec §4.1's findEnumByCode: keys of terms
// whose code-section field equals value and whose enum path contains
// enumType.
func (c *TermCache) FindEnumByCode(ctx context.Context, field, value, enumType string) ([]string, error) {
	return c.repo.QueryEnumByCode(ctx, field, value, enumType)
}

// WithCache toggles memoization for a single lookup call.
func WithCache(enabled bool) func(*lookupOptions) {
	return func(o *lookupOptions) { o.cache = enabled }
}

// WithCacheMisses toggles whether NotFound outcomes are memoized.
func WithCacheMisses(enabled bool) func(*lookupOptions) {
	return func(o *lookupOptions) { o.cacheMisses = enabled }
}

// CheckHandleSyntax, CheckCollectionName and CheckKey are exposed on
// TermCache too, so callers holding only a cache handle (as the walker
// does) can run the pure regex predicates spec §4.1 groups with the
// lookup contract, without a second dependency on the term.go package
// scope.
func (c *TermCache) CheckHandleSyntax(h string) bool        { return CheckHandleSyntax(h) }
func (c *TermCache) CheckCollectionName(name string) bool    { return CheckCollectionName(name) }
func (c *TermCache) CheckKey(key string) bool                { return CheckKey(key) }
func (c *TermCache) DefaultNamespaceKey() string              { return DefaultNamespaceKey }
