package ddvalidate

import (
	"context"
	"fmt"
)

// walkSet implements spec §4.2's set dimension: unordered, cardinality-
// checked, each element recursing through a leaf-only ScalarSpec. Nested
// containers are structurally impossible since SetSpec.Element is a
// ScalarSpec, not a DataSection. Element uniqueness is not enforced
// unless Options.DeduplicateSets is set (DESIGN.md's Open Question
// decision).
func (v *Validator) walkSet(ctx context.Context, spec *SetSpec, value *any, report *Report, descriptorKey string, opts Options, depth int) error {
	if spec == nil {
		return nil
	}
	items, ok := (*value).([]any)
	if !ok {
		report.SetStatus(ValueNotAnArray, map[string]any{"type": getDataType(*value)})
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

	seen := make(map[string]struct{}, len(items))
	for i := range items {
		if err := v.walkScalar(ctx, spec.Element, &items[i], report, descriptorKey, opts, depth+1); err != nil {
			return err
		}
		if report.Status.Code.Severity() == SeverityError {
			break
		}
		if opts.DeduplicateSets {
			key := fmt.Sprint(items[i])
			if _, dup := seen[key]; dup {
				report.SetStatus(DuplicateSetElement, map[string]any{"value": items[i]})
				break
			}
			seen[key] = struct{}{}
		}
	}
	*value = items
	return nil
}
