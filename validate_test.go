package ddvalidate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo is a minimal in-memory Repository for exercising the walker
// without a real document store, grounded on the teacher's pattern of
// compiling against an injected schema source rather than a live backend.
type mockRepo struct {
	terms       map[string]*Term
	collections map[string]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{terms: map[string]*Term{}, collections: map[string]bool{}}
}

func (r *mockRepo) put(t *Term) *mockRepo {
	r.terms[t.Key] = t
	return r
}

func (r *mockRepo) GetTerm(_ context.Context, key string) (*Term, error) {
	t, ok := r.terms[key]
	if !ok {
		return nil, ErrTermNotFound
	}
	return t, nil
}

func (r *mockRepo) CollectionExists(_ context.Context, name string) (bool, error) {
	return r.collections[name], nil
}

func (r *mockRepo) QueryEnumByCode(_ context.Context, codeField, value, enumType string) ([]string, error) {
	var matches []string
	for key, t := range r.terms {
		if t.Code == nil || t.Code.Field(codeField) != value {
			continue
		}
		if !t.InPath(enumType) {
			continue
		}
		matches = append(matches, key)
	}
	return matches, nil
}

func scalarDescriptor(key string, leaf LeafType, rng *RangeSpec) *Term {
	return &Term{
		Key:  key,
		Data: &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{Type: &leaf, Range: rng}},
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newValidator(repo Repository) *Validator {
	return NewValidator(NewTermCache(repo))
}

// --- spec §8, scenario 1: scalar integer with inclusive range [0,100] ---

func TestScalarIntegerRange(t *testing.T) {
	repo := newMockRepo().put(scalarDescriptor("age", LeafInteger, &RangeSpec{
		MinIncl: strPtr("0"),
		MaxIncl: strPtr("100"),
	}))
	v := newValidator(repo)
	ctx := context.Background()
	opts := DefaultOptions()

	tests := []struct {
		name  string
		value any
		code  Code
	}{
		{"within range", 50, OK},
		{"at max inclusive", 100, OK},
		{"above max", 101, HighRange},
		{"wrong type", "50", NotAnInteger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := v.ValidateValue(ctx, "age", tt.value, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.code, report.Status.Code)
		})
	}
}

// --- spec §8, scenario 2: date descriptor, lexical-only format check ---

func TestDateFormatOnly(t *testing.T) {
	repo := newMockRepo().put(scalarDescriptor("eventDate", LeafDate, nil))
	v := newValidator(repo)
	ctx := context.Background()
	opts := DefaultOptions()

	tests := []struct {
		name  string
		value string
		code  Code
	}{
		{"year only", "2023", OK},
		{"year+month, semantically invalid month not checked", "202313", OK},
		{"year+month+day, semantically invalid day not checked", "20231301", OK},
		{"malformed", "23-01", InvalidDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := v.ValidateValue(ctx, "eventDate", tt.value, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.code, report.Status.Code)
		})
	}
}

// --- spec §8, scenario 3: enum resolution ---

func TestEnumResolution(t *testing.T) {
	repo := newMockRepo()
	repo.put(&Term{Key: "sexEnum", Path: nil, Data: nil})
	repo.put(&Term{
		Key:  "male",
		Path: []string{"sex", "sexEnum", "bioEnum"},
		Code: &CodeSection{Local: "male"},
	})
	repo.put(&Term{
		Key:  "canis_familiaris",
		Path: []string{"sexEnum"},
		Code: &CodeSection{Local: "dog"},
	})
	leaf := LeafEnum
	repo.put(&Term{
		Key: "sexDescriptor",
		Data: &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{
			Type: &leaf,
			Kind: []string{"sexEnum"},
		}},
	})
	v := newValidator(repo)
	ctx := context.Background()

	t.Run("direct match", func(t *testing.T) {
		report, err := v.ValidateValue(ctx, "sexDescriptor", "male", DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, OK, report.Status.Code)
	})

	t.Run("resolved by code when resolve enabled", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Resolve = true
		value := any("dog")
		report, err := v.ValidateValue(ctx, "sexDescriptor", value, opts)
		require.NoError(t, err)
		assert.Equal(t, ModifiedValue, report.Status.Code)
		require.Len(t, report.Changes, 1)
		assert.Equal(t, "dog", report.Changes[0].Original)
		assert.Equal(t, "canis_familiaris", report.Changes[0].Resolved)
	})

	t.Run("unresolvable code without resolve is an error", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Resolve = false
		report, err := v.ValidateValue(ctx, "sexDescriptor", "dog", opts)
		require.NoError(t, err)
		assert.Equal(t, ValueNotTerm, report.Status.Code)
	})
}

// --- spec §8, scenario 4: zipped array, mixed outcomes ---

func TestValidateZippedMixedOutcomes(t *testing.T) {
	repo := newMockRepo().put(scalarDescriptor("counter", LeafInteger, nil))
	v := newValidator(repo)
	ctx := context.Background()

	batch, err := v.ValidateZipped(ctx, "counter", []any{1, 2, "x"}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, batch.Reports, 3)
	assert.Equal(t, OK, batch.Reports[0].Status.Code)
	assert.Equal(t, OK, batch.Reports[1].Status.Code)
	assert.Equal(t, NotAnInteger, batch.Reports[2].Status.Code)
	assert.Equal(t, 2, batch.Valid)
	assert.Equal(t, 0, batch.Warnings)
	assert.Equal(t, 1, batch.Errors)
	assert.Equal(t, -1, batch.ReturnCode())
}

func TestScalarLeafRejectsArray(t *testing.T) {
	// mode D accepts any shape; a scalar leaf fed an array reports
	// NotAScalar, it does not raise (spec §4.2, "Reject if the value is
	// an array").
	repo := newMockRepo().put(scalarDescriptor("counter", LeafInteger, nil))
	v := newValidator(repo)
	ctx := context.Background()

	report, err := v.ValidateValue(ctx, "counter", []any{1, 2}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, NotAScalar, report.Status.Code)
}

// --- spec §8, scenario 5: object structure candidates ---

func TestObjectStructureCandidates(t *testing.T) {
	repo := newMockRepo()
	repo.put(&Term{
		Key:  "S1",
		Rule: &RuleSection{Required: RequiredSelectors{All: []string{"a", "b"}}},
	})
	repo.put(&Term{
		Key:  "S2",
		Rule: &RuleSection{Required: RequiredSelectors{One: []string{"c", "d"}}},
	})
	v := newValidator(repo)
	ctx := context.Background()

	t.Run("admitted by S2", func(t *testing.T) {
		report, err := v.ValidateObject(ctx, map[string]any{"c": 1}, []string{"S1", "S2"}, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, OK, report.Status.Code)
	})

	t.Run("admitted by neither", func(t *testing.T) {
		report, err := v.ValidateObject(ctx, map[string]any{"a": 1}, []string{"S1", "S2"}, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, InvalidObjectStruct, report.Status.Code)
	})
}

// --- mode-dispatch error scenarios (spec §4.2 "Initialization errors") ---

func TestValidateMultiRejectsNonObjectElement(t *testing.T) {
	v := newValidator(newMockRepo())
	ctx := context.Background()
	_, err := v.ValidateMulti(ctx, []any{map[string]any{"a": 1}, "not an object"}, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrExpectedObjects)
}

func TestValidateValueUnresolvedDescriptorRaises(t *testing.T) {
	v := newValidator(newMockRepo())
	ctx := context.Background()
	_, err := v.ValidateValue(ctx, "missing", 1, DefaultOptions())
	assert.ErrorIs(t, err, ErrTermNotFound)
}

func TestValidateValueNonDescriptorRaises(t *testing.T) {
	repo := newMockRepo().put(&Term{Key: "notADescriptor"})
	v := newValidator(repo)
	ctx := context.Background()
	_, err := v.ValidateValue(ctx, "notADescriptor", 1, DefaultOptions())
	assert.ErrorIs(t, err, ErrNotADescriptor)
}

// --- array/set dimensionality ---

func TestArrayCardinality(t *testing.T) {
	leaf := LeafInteger
	repo := newMockRepo().put(&Term{
		Key: "scores",
		Data: &DataSection{Dim: DimArray, Array: &ArraySpec{
			MinItems: intPtr(1),
			MaxItems: intPtr(3),
			Element:  &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{Type: &leaf}},
		}},
	})
	v := newValidator(repo)
	ctx := context.Background()

	report, err := v.ValidateValue(ctx, "scores", []any{}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, TooFew, report.Status.Code)

	report, err = v.ValidateValue(ctx, "scores", []any{1, 2, 3, 4}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, TooMany, report.Status.Code)

	report, err = v.ValidateValue(ctx, "scores", []any{1, 2}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, OK, report.Status.Code)
}

func TestKeyLeafDefaultNamespace(t *testing.T) {
	leaf := LeafKey
	repo := newMockRepo().put(&Term{
		Key:  "ns",
		Data: &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{Type: &leaf}},
	})
	v := newValidator(repo)
	ctx := context.Background()

	opts := DefaultOptions()
	report, err := v.ValidateValue(ctx, "ns", "", opts)
	require.NoError(t, err)
	assert.Equal(t, EmptyKey, report.Status.Code)

	opts.AllowDefaultNamespace = true
	opts.NamespaceDescriptor = "ns"
	report, err = v.ValidateValue(ctx, "ns", "", opts)
	require.NoError(t, err)
	assert.Equal(t, OK, report.Status.Code)

	report, err = v.ValidateValue(ctx, "ns", DefaultNamespaceKey, opts)
	require.NoError(t, err)
	assert.Equal(t, NoRefDefaultNamespaceKey, report.Status.Code)
}

func TestIdempotenceUnderCoercion(t *testing.T) {
	// spec §8, property 1: accepted input validates at code 0, and
	// re-validating the coerced value also validates at code 0 with no
	// further changes.
	repo := newMockRepo().put(scalarDescriptor("ts", LeafTimestamp, nil))
	v := newValidator(repo)
	ctx := context.Background()
	opts := DefaultOptions()
	opts.Resolve = true

	value := any("2023-01-02")
	report, err := v.ValidateValue(ctx, "ts", value, opts)
	require.NoError(t, err)
	assert.Equal(t, ModifiedValue, report.Status.Code)
	coerced := report.Changes[0].Resolved

	report2, err := v.ValidateValue(ctx, "ts", coerced, opts)
	require.NoError(t, err)
	assert.Equal(t, OK, report2.Status.Code)
	assert.Empty(t, report2.Changes)
}

func TestTimestampCoercionRequiresResolve(t *testing.T) {
	repo := newMockRepo().put(scalarDescriptor("ts", LeafTimestamp, nil))
	v := newValidator(repo)
	ctx := context.Background()

	report, err := v.ValidateValue(ctx, "ts", "2023-01-02", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, NotANumber, report.Status.Code, "a date string is not coerced unless Resolve is set")
}

func TestKeyLeafEmptyStringWrongDescriptorReportsNoReference(t *testing.T) {
	leaf := LeafKey
	repo := newMockRepo().put(&Term{
		Key:  "other",
		Data: &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{Type: &leaf}},
	})
	v := newValidator(repo)
	ctx := context.Background()

	opts := DefaultOptions()
	opts.AllowDefaultNamespace = true
	opts.NamespaceDescriptor = "ns"
	report, err := v.ValidateValue(ctx, "other", "", opts)
	require.NoError(t, err)
	assert.Equal(t, NoReferenceDefaultNamespace, report.Status.Code)
}

// The maintainer's review scenario: the same coercion repeating within one
// batch must still produce its own ModifiedValue entry, not be silently
// swallowed by the change log's idempotent dedup (spec §4.4's "one log
// entry" governs the log's own mapping, not per-report visibility).
func TestChangeLogDedupDoesNotSuppressPerReportChange(t *testing.T) {
	repo := newMockRepo()
	repo.put(&Term{Key: "canis_familiaris", Path: []string{"sexEnum"}, Code: &CodeSection{Local: "dog"}})
	leaf := LeafEnum
	repo.put(&Term{
		Key:  "sexDescriptor",
		Data: &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{Type: &leaf, Kind: []string{"sexEnum"}}},
	})
	v := newValidator(repo)
	ctx := context.Background()
	opts := DefaultOptions()
	opts.Resolve = true

	batch, err := v.ValidateZipped(ctx, "sexDescriptor", []any{"dog", "dog"}, opts)
	require.NoError(t, err)
	require.Len(t, batch.Reports, 2)
	for i, report := range batch.Reports {
		assert.Equal(t, ModifiedValue, report.Status.Code, "element %d", i)
		require.Len(t, report.Changes, 1, "element %d", i)
		assert.Equal(t, "canis_familiaris", report.Changes[0].Resolved)
	}
	assert.Equal(t, 0, batch.Errors)
	assert.Equal(t, 2, batch.Warnings)
	assert.Equal(t, 1, batch.ReturnCode(), "a batch containing only warnings returns 1")
}

// spec §3 Lifecycles: nothing in the core owns data across runs except
// C1's optional memoization. A second, independent ValidateValue call
// must not have its change suppressed by a first call's identical
// coercion.
func TestChangeLogResetAcrossValidationRuns(t *testing.T) {
	repo := newMockRepo()
	repo.put(&Term{Key: "canis_familiaris", Path: []string{"sexEnum"}, Code: &CodeSection{Local: "dog"}})
	leaf := LeafEnum
	repo.put(&Term{
		Key:  "sexDescriptor",
		Data: &DataSection{Dim: DimScalar, Scalar: &ScalarSpec{Type: &leaf, Kind: []string{"sexEnum"}}},
	})
	v := newValidator(repo)
	ctx := context.Background()
	opts := DefaultOptions()
	opts.Resolve = true

	first, err := v.ValidateValue(ctx, "sexDescriptor", "dog", opts)
	require.NoError(t, err)
	assert.Equal(t, ModifiedValue, first.Status.Code)

	second, err := v.ValidateValue(ctx, "sexDescriptor", "dog", opts)
	require.NoError(t, err)
	assert.Equal(t, ModifiedValue, second.Status.Code, "a later, independent run must not inherit the earlier run's change log")
	require.Len(t, second.Changes, 1)
}
