package ddvalidate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	*mockRepo
	gets int
}

func (r *countingRepo) GetTerm(ctx context.Context, key string) (*Term, error) {
	r.gets++
	return r.mockRepo.GetTerm(ctx, key)
}

func TestTermCacheMemoizesHits(t *testing.T) {
	repo := &countingRepo{mockRepo: newMockRepo().put(&Term{Key: "a"})}
	store, err := LRUStore(16)
	require.NoError(t, err)
	cache := NewTermCache(repo).WithStore(store)
	ctx := context.Background()

	_, err = cache.Lookup(ctx, "a")
	require.NoError(t, err)
	_, err = cache.Lookup(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets, "second lookup should be served from the cache tier")
}

func TestTermCacheCacheFalseBypassesStore(t *testing.T) {
	repo := &countingRepo{mockRepo: newMockRepo().put(&Term{Key: "a"})}
	store, err := LRUStore(16)
	require.NoError(t, err)
	cache := NewTermCache(repo).WithStore(store)
	ctx := context.Background()

	_, err = cache.Lookup(ctx, "a", WithCache(false))
	require.NoError(t, err)
	_, err = cache.Lookup(ctx, "a", WithCache(false))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.gets)
}

func TestTermCacheMissMemoization(t *testing.T) {
	repo := &countingRepo{mockRepo: newMockRepo()}
	store, err := LRUStore(16)
	require.NoError(t, err)
	cache := NewTermCache(repo).WithStore(store)
	ctx := context.Background()

	_, err = cache.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, ErrTermNotFound)
	_, err = cache.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, ErrTermNotFound)
	assert.Equal(t, 1, repo.gets, "a memoized miss should not re-query the repository")
}

func TestTermCacheMissNotMemoizedWhenDisabled(t *testing.T) {
	repo := &countingRepo{mockRepo: newMockRepo()}
	store, err := LRUStore(16)
	require.NoError(t, err)
	cache := NewTermCache(repo).WithStore(store)
	ctx := context.Background()

	_, err = cache.Lookup(ctx, "missing", WithCacheMisses(false))
	assert.ErrorIs(t, err, ErrTermNotFound)
	_, err = cache.Lookup(ctx, "missing", WithCacheMisses(false))
	assert.ErrorIs(t, err, ErrTermNotFound)
	assert.Equal(t, 2, repo.gets)
}

func TestTermCacheLookupDescriptor(t *testing.T) {
	repo := newMockRepo().put(&Term{Key: "plain"}).put(scalarDescriptor("d", LeafString, nil))
	cache := NewTermCache(repo)
	ctx := context.Background()

	_, err := cache.LookupDescriptor(ctx, "plain")
	assert.ErrorIs(t, err, ErrNotADescriptor)

	term, err := cache.LookupDescriptor(ctx, "d")
	require.NoError(t, err)
	assert.True(t, term.IsDescriptor())
}

func TestTermCacheProjectionDropsCode(t *testing.T) {
	// spec §4.1: lookup returns only key, data, rule and path.
	leaf := LeafString
	repo := newMockRepo().put(&Term{
		Key:  "d",
		Code: &CodeSection{Local: "lid"},
		Data: &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{Type: &leaf}},
	})
	cache := NewTermCache(repo)
	term, err := cache.Lookup(context.Background(), "d")
	require.NoError(t, err)
	assert.Nil(t, term.Code)
	assert.NotNil(t, term.Data)
}

func TestCheckKeyHandleCollectionRegex(t *testing.T) {
	assert.True(t, CheckCollectionName("people_2"))
	assert.False(t, CheckCollectionName(""))
	assert.False(t, CheckCollectionName("bad/name"))

	assert.True(t, CheckKey("abc-123"))
	assert.False(t, CheckKey(""))
	assert.False(t, CheckKey("bad/key"))

	assert.True(t, CheckHandleSyntax("people/abc-123"))
	assert.False(t, CheckHandleSyntax("people"))
	assert.False(t, CheckHandleSyntax("people/abc/def"))
	assert.False(t, CheckHandleSyntax("/abc"))
	assert.False(t, CheckHandleSyntax("people/"))

	collection, key, ok := SplitHandle("people/abc-123")
	require.True(t, ok)
	assert.Equal(t, "people", collection)
	assert.Equal(t, "abc-123", key)
}

func TestHandleLeafValidation(t *testing.T) {
	leaf := LeafHandle
	repo := newMockRepo()
	repo.collections["people"] = true
	repo.put(&Term{Key: "people/abc", Code: &CodeSection{}})
	repo.put(&Term{
		Key:  "handleDescriptor",
		Data: &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{Type: &leaf}},
	})
	v := newValidator(repo)
	ctx := context.Background()

	report, err := v.ValidateValue(ctx, "handleDescriptor", "people/abc", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, OK, report.Status.Code)

	report, err = v.ValidateValue(ctx, "handleDescriptor", "missing/abc", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, UnknownCollection, report.Status.Code)

	report, err = v.ValidateValue(ctx, "handleDescriptor", "people/nope", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, UnknownDocument, report.Status.Code)

	report, err = v.ValidateValue(ctx, "handleDescriptor", "not-a-handle", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, BadHandleValue, report.Status.Code)
}
