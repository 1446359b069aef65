package ddvalidate

import "context"

// walkDict implements spec §4.2's dict dimension: validate keys using the
// key-section type, validate values by recursing through the
// value-section, and rebuild the object as an *OrderedMap in the original
// key order, with any coerced keys in place of the originals (DESIGN.md's
// Open Question decision). The rebuild happens whether or not a key was
// coerced, so a map[string]any value comes back as an *OrderedMap.
func (v *Validator) walkDict(ctx context.Context, spec *DictSpec, value *any, report *Report, descriptorKey string, opts Options, depth int) error {
	if spec == nil {
		return nil
	}
	if spec.Key == nil {
		report.SetStatus(DictMissingKeySection, nil)
		return nil
	}
	if spec.Value == nil {
		report.SetStatus(DictMissingValueSection, nil)
		return nil
	}

	keys, values, ok := toPairs(*value)
	if !ok {
		report.SetStatus(NotAnObject, map[string]any{"type": getDataType(*value)})
		return nil
	}

	result := NewOrderedMap()
	for _, key := range keys {
		elemValue := values[key]

		var keyAny any = key
		if err := v.walkScalar(ctx, spec.Key, &keyAny, report, descriptorKey, opts, depth+1); err != nil {
			return err
		}
		if report.Status.Code.Severity() == SeverityError {
			return nil
		}
		resolvedKey, _ := keyAny.(string)
		if resolvedKey == "" {
			resolvedKey = key
		}

		if err := v.walkDataSection(ctx, spec.Value, &elemValue, report, descriptorKey, opts, depth+1); err != nil {
			return err
		}
		if report.Status.Code.Severity() == SeverityError {
			return nil
		}

		result.Set(resolvedKey, elemValue)
	}

	*value = result
	return nil
}
