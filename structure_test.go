package ddvalidate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateRuleSelectors(t *testing.T) {
	present := func(keys ...string) map[string]bool {
		m := make(map[string]bool, len(keys))
		for _, k := range keys {
			m[k] = true
		}
		return m
	}

	t.Run("one requires exactly one", func(t *testing.T) {
		rule := &RuleSection{Required: RequiredSelectors{One: []string{"a", "b"}}}
		assert.True(t, evaluateRule(rule, present("a")))
		assert.False(t, evaluateRule(rule, present("a", "b")))
		assert.False(t, evaluateRule(rule, present()))
	})

	t.Run("oneOrNone allows zero or one", func(t *testing.T) {
		rule := &RuleSection{Required: RequiredSelectors{OneOrNone: []string{"a", "b"}}}
		assert.True(t, evaluateRule(rule, present()))
		assert.True(t, evaluateRule(rule, present("a")))
		assert.False(t, evaluateRule(rule, present("a", "b")))
	})

	t.Run("any requires at least one", func(t *testing.T) {
		rule := &RuleSection{Required: RequiredSelectors{Any: []string{"a", "b"}}}
		assert.False(t, evaluateRule(rule, present()))
		assert.True(t, evaluateRule(rule, present("a")))
		assert.True(t, evaluateRule(rule, present("a", "b")))
	})

	t.Run("oneOrNoneSet bounds each group independently", func(t *testing.T) {
		rule := &RuleSection{Required: RequiredSelectors{OneOrNoneSet: [][]string{{"a", "b"}, {"c", "d"}}}}
		assert.True(t, evaluateRule(rule, present("a", "c")))
		assert.False(t, evaluateRule(rule, present("a", "b")))
	})

	t.Run("all requires every listed property", func(t *testing.T) {
		rule := &RuleSection{Required: RequiredSelectors{All: []string{"a", "b"}}}
		assert.True(t, evaluateRule(rule, present("a", "b", "c")))
		assert.False(t, evaluateRule(rule, present("a")))
	})

	t.Run("banned forbids listed properties", func(t *testing.T) {
		rule := &RuleSection{Banned: []string{"x"}}
		assert.True(t, evaluateRule(rule, present("a")))
		assert.False(t, evaluateRule(rule, present("a", "x")))
	})

	t.Run("nil rule always passes", func(t *testing.T) {
		assert.True(t, evaluateRule(nil, present("anything")))
	})
}

func TestValidateObjectExpectTerms(t *testing.T) {
	repo := newMockRepo()
	repo.put(&Term{Key: "S", Rule: &RuleSection{Required: RequiredSelectors{Any: []string{"name"}}}})
	repo.put(scalarDescriptor("name", LeafString, nil))
	v := newValidator(repo)
	ctx := context.Background()

	t.Run("unknown property ignored by default", func(t *testing.T) {
		report, err := v.ValidateObject(ctx, map[string]any{"name": "x", "extra": 1}, []string{"S"}, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, OK, report.Status.Code)
	})

	t.Run("unknown property flagged when ExpectTerms is set", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ExpectTerms = true
		report, err := v.ValidateObject(ctx, map[string]any{"name": "x", "extra": 1}, []string{"S"}, opts)
		require.NoError(t, err)
		assert.Equal(t, UnknownProperty, report.Status.Code)
	})
}

// A self-referential value (a map containing itself) paired with a
// structure whose own property recurses back into the same structure
// would recurse forever without a depth guard. maxRecursionDepth bounds
// it instead of exhausting the stack.
func TestValidateObjectSelfReferentialValueHitsRecursionGuard(t *testing.T) {
	repo := newMockRepo()
	repo.put(&Term{Key: "S", Rule: &RuleSection{Required: RequiredSelectors{Any: []string{"child"}}}})
	objLeaf := LeafObject
	repo.put(&Term{
		Key: "child",
		Data: &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{
			Type: &objLeaf,
			Kind: []string{"S"},
		}},
	})
	v := newValidator(repo)
	ctx := context.Background()

	cyclic := map[string]any{}
	cyclic["child"] = cyclic

	_, err := v.ValidateObject(ctx, cyclic, []string{"S"}, DefaultOptions())
	assert.ErrorIs(t, err, ErrMaxRecursionDepth)
}

func TestValidateObjectPropertyNotDescriptor(t *testing.T) {
	repo := newMockRepo()
	repo.put(&Term{Key: "S", Rule: &RuleSection{Required: RequiredSelectors{Any: []string{"name"}}}})
	repo.put(&Term{Key: "name"}) // not a descriptor: no data section
	v := newValidator(repo)
	ctx := context.Background()

	report, err := v.ValidateObject(ctx, map[string]any{"name": "x"}, []string{"S"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, PropertyNotDescriptor, report.Status.Code)
}
