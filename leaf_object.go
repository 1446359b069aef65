package ddvalidate

import "context"

// leafObject implements spec §4.2's object leaf: the full §4.3 structural
// pass (candidate structures named by the scalar's kind annotation) plus
// per-property recursion.
func (v *Validator) leafObject(ctx context.Context, spec *ScalarSpec, value *any, report *Report, opts Options, depth int) error {
	_, values, ok := toPairs(*value)
	if !ok {
		report.SetStatus(NotAnObject, map[string]any{"type": getDataType(*value)})
		return nil
	}
	if err := v.validateObjectAgainstCandidates(ctx, spec.Kind, values, report, opts, depth); err != nil {
		return err
	}
	*value = values
	return nil
}
