package ddvalidate

import "context"

// walkScalar dispatches a scalar leaf by its declared type (spec §4.2,
// "Scalar leaves"). Arrays are rejected outright; a missing type is an
// error only when Options.ExpectType is set.
func (v *Validator) walkScalar(ctx context.Context, spec *ScalarSpec, value *any, report *Report, descriptorKey string, opts Options, depth int) error {
	if spec == nil {
		return nil
	}
	if _, isArray := (*value).([]any); isArray {
		report.SetStatus(NotAScalar, map[string]any{"type": getDataType(*value)})
		return nil
	}
	if spec.Type == nil {
		if opts.ExpectType {
			report.SetStatus(MissingDataType, nil)
		}
		return nil
	}

	switch *spec.Type {
	case LeafBoolean:
		return v.leafBoolean(spec, value, report)
	case LeafInteger:
		return v.leafInteger(spec, value, report)
	case LeafNumber:
		return v.leafNumber(spec, value, report)
	case LeafTimestamp:
		return v.leafTimestamp(spec, value, report, opts)
	case LeafString:
		return v.leafString(spec, value, report)
	case LeafKey:
		return v.leafKey(ctx, spec, value, report, descriptorKey, opts)
	case LeafHandle:
		return v.leafHandle(ctx, spec, value, report)
	case LeafEnum:
		return v.leafEnum(ctx, spec, value, report, opts)
	case LeafDate:
		return v.leafDate(spec, value, report)
	case LeafStruct:
		return v.leafStruct(value, report)
	case LeafObject:
		return v.leafObject(ctx, spec, value, report, opts, depth)
	case LeafGeoJSON:
		return v.leafGeoJSON(value, report)
	default:
		return ErrUnknownLeafType
	}
}

// walkArray implements spec §4.2's "Array/set leaves" for the array
// dimension: ordered, cardinality-checked, each element recursing through
// its own data section. The walker shares one report across all elements
// and stops at the first failure, per §7's "short-circuited per value".
func (v *Validator) walkArray(ctx context.Context, spec *ArraySpec, value *any, report *Report, descriptorKey string, opts Options, depth int) error {
	if spec == nil {
		return nil
	}
	items, ok := (*value).([]any)
	if !ok {
		report.SetStatus(NotAnArray, map[string]any{"type": getDataType(*value)})
		return nil
	}
	if spec.MinItems != nil && len(items) < *spec.MinItems {
		report.SetStatus(TooFew, map[string]any{"count": len(items), "min": *spec.MinItems})
		return nil
	}
	if spec.MaxItems != nil && len(items) > *spec.MaxItems {
		report.SetStatus(TooMany, map[string]any{"count": len(items), "max": *spec.MaxItems})
		return nil
	}

	for i := range items {
		if err := v.walkDataSection(ctx, spec.Element, &items[i], report, descriptorKey, opts, depth+1); err != nil {
			return err
		}
		if report.Status.Code.Severity() == SeverityError {
			break
		}
	}
	*value = items
	return nil
}
