package ddvalidate

import "context"

// leafEnum implements spec §4.2's enum leaf: string check, reject the
// reserved default namespace key, resolve the term (optionally coercing
// via C5), require an enum path, and check kind-ancestor membership.
func (v *Validator) leafEnum(ctx context.Context, spec *ScalarSpec, value *any, report *Report, opts Options) error {
	s, ok := (*value).(string)
	if !ok {
		report.SetStatus(NotAScalar, map[string]any{"type": getDataType(*value)})
		return nil
	}
	if s == DefaultNamespaceKey {
		report.SetStatus(NoRefDefaultNamespaceKey, nil)
		return nil
	}

	term, err := v.Cache.Lookup(ctx, s, opts.lookupOpts()...)
	if err != nil && err != ErrTermNotFound {
		return err
	}

	if term == nil {
		if !opts.Resolve {
			report.SetStatus(ValueNotTerm, map[string]any{"value": s})
			return nil
		}
		resolved, ok, err := v.resolveEnum(ctx, opts.ResolveField, s, spec.Kind)
		if err != nil {
			return err
		}
		if !ok {
			report.SetStatus(ValueNotTerm, map[string]any{"value": s})
			return nil
		}
		// The change log's own idempotent mapping is kept for this run
		// regardless of whether this exact coercion repeats within it; the
		// report's own changes/status reflect what happened to *this*
		// value, never suppressed by an earlier element's identical
		// coercion (spec §4.4's "one log entry" governs the log, not the
		// per-value report).
		v.ChangeLog.Record(report.Descriptor, resolved)
		report.AddChange("value", s, resolved)
		*value = resolved
		term, err = v.Cache.Lookup(ctx, resolved, opts.lookupOpts()...)
		if err != nil {
			return err
		}
	}

	if !term.IsEnumElement() {
		report.SetStatus(NotAnEnum, map[string]any{"key": term.Key})
		return nil
	}

	if len(spec.Kind) > 0 {
		matched := false
		for _, enumType := range spec.Kind {
			if term.InPath(enumType) {
				matched = true
				break
			}
		}
		if !matched {
			report.SetStatus(NotCorrectEnumType, map[string]any{"value": s, "enumType": spec.Kind[len(spec.Kind)-1]})
			return nil
		}
	}
	return nil
}
