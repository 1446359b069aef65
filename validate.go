package ddvalidate

import (
	"context"
	"errors"
)

// Validator is the entry point for C3 (spec §4.2). It holds the
// collaborators a validation run needs: the term cache, the change log
// coercions are recorded into, and an optional metrics sink.
type Validator struct {
	Cache     *TermCache
	ChangeLog *ChangeLog
	Metrics   *Metrics
}

// NewValidator builds a Validator over cache with a fresh change log.
func NewValidator(cache *TermCache) *Validator {
	return &Validator{Cache: cache, ChangeLog: NewChangeLog()}
}

// WithMetrics attaches a counters sink, wiring it into both the
// validator's own report counters and its cache's lookup counters.
func (v *Validator) WithMetrics(metrics *Metrics) *Validator {
	v.Metrics = metrics
	if v.Cache != nil {
		v.Cache.WithMetrics(metrics)
	}
	return v
}

// ErrExpectedArray names the "mode Z without an array" initialization
// error (spec §4.2). ValidateZipped takes its values as a []any, so it
// never returns this error itself.
var ErrExpectedArray = errors.New("ddvalidate: zipped validation requires an array of values")

// ErrExpectedObjects is raised by ValidateMulti when an element is not a
// map (spec §4.2, "mode M containing a non-object").
var ErrExpectedObjects = errors.New("ddvalidate: multi validation requires an array of objects")

// maxRecursionDepth bounds how deep walkDataSection may recurse through
// nested array/set/dict elements and object-leaf properties before
// giving up on a term graph as malformed. A genuine cycle among
// structure-definition candidates recurses forever without this guard,
// so it also serves as cycle detection, not just a depth cap.
const maxRecursionDepth = 64

// ValidateValue implements mode D: a single descriptor with a value of any
// shape (spec §4.2). The descriptor id must resolve to a descriptor term,
// or this returns a (raised, not reported) error.
func (v *Validator) ValidateValue(ctx context.Context, descriptorKey string, value any, opts Options) (*Report, error) {
	term, err := v.Cache.LookupDescriptor(ctx, descriptorKey, opts.lookupOpts()...)
	if err != nil {
		return nil, err
	}

	v.ChangeLog = NewChangeLog()
	report := NewReport(descriptorKey)
	if err := v.walkDataSection(ctx, term.Data, &value, report, descriptorKey, opts, 0); err != nil {
		return nil, err
	}
	v.Metrics.ObserveReport(report)
	return report, nil
}

// ValidateZipped implements mode Z: an array of values sharing one
// descriptor, each producing its own report (spec §4.2).
func (v *Validator) ValidateZipped(ctx context.Context, descriptorKey string, values []any, opts Options) (*BatchReport, error) {
	term, err := v.Cache.LookupDescriptor(ctx, descriptorKey, opts.lookupOpts()...)
	if err != nil {
		return nil, err
	}

	v.ChangeLog = NewChangeLog()
	batch := NewBatchReport(len(values))
	for i, val := range values {
		report := NewReport(descriptorKey)
		localVal := val
		if err := v.walkDataSection(ctx, term.Data, &localVal, report, descriptorKey, opts, 0); err != nil {
			return nil, err
		}
		batch.Set(i, report)
	}
	v.Metrics.ObserveBatch(batch)
	return batch, nil
}

// ValidateObject implements mode O: a single unqualified object validated
// directly against a set of candidate structure keys, with no enclosing
// descriptor (spec §4.2/§4.3).
func (v *Validator) ValidateObject(ctx context.Context, value map[string]any, candidates []string, opts Options) (*Report, error) {
	v.ChangeLog = NewChangeLog()
	report := NewReport("")
	if err := v.validateObjectAgainstCandidates(ctx, candidates, value, report, opts, 0); err != nil {
		return nil, err
	}
	v.Metrics.ObserveReport(report)
	return report, nil
}

// ValidateMulti implements mode M: an array of unqualified objects, each
// validated against the same candidate set (spec §4.2).
func (v *Validator) ValidateMulti(ctx context.Context, values []any, candidates []string, opts Options) (*BatchReport, error) {
	v.ChangeLog = NewChangeLog()
	batch := NewBatchReport(len(values))
	for i, val := range values {
		obj, ok := val.(map[string]any)
		if !ok {
			return nil, ErrExpectedObjects
		}
		report := NewReport("")
		if err := v.validateObjectAgainstCandidates(ctx, candidates, obj, report, opts, 0); err != nil {
			return nil, err
		}
		batch.Set(i, report)
	}
	v.Metrics.ObserveBatch(batch)
	return batch, nil
}

// walkDataSection is the recursive spine of C3 (spec §4.2's
// "walkDataSection" contract). It mutates report in place and returns a
// non-nil error only for dictionary corruption; ordinary validation
// failures are written into report.Status. depth counts nesting through
// array/set/dict elements and object-leaf properties, guarding against a
// runaway or cyclic term graph.
func (v *Validator) walkDataSection(ctx context.Context, ds *DataSection, value *any, report *Report, descriptorKey string, opts Options, depth int) error {
	if ds == nil {
		// Empty section: accept (spec §4.2, step 1).
		return nil
	}
	if depth > maxRecursionDepth {
		return ErrMaxRecursionDepth
	}

	switch ds.Dim {
	case DimScalar:
		return v.walkScalar(ctx, ds.Scalar, value, report, descriptorKey, opts, depth)
	case DimArray:
		return v.walkArray(ctx, ds.Array, value, report, descriptorKey, opts, depth)
	case DimSet:
		return v.walkSet(ctx, ds.Set, value, report, descriptorKey, opts, depth)
	case DimDict:
		return v.walkDict(ctx, ds.Dict, value, report, descriptorKey, opts, depth)
	default:
		if opts.ExpectType {
			report.SetStatus(ExpectingDataDimension, nil)
		}
		return nil
	}
}
