package ddvalidate

// leafTimestamp implements spec §4.2's timestamp leaf: a numeric value is
// range-checked directly; a parseable date string is coerced to a unix-ms
// numeric value (only when Options.Resolve is set, mirroring the enum
// leaf's resolution gate), logged as a change, and then range-checked
// (spec §4.4, "Timestamp resolution").
func (v *Validator) leafTimestamp(spec *ScalarSpec, value *any, report *Report, opts Options) error {
	t := getDataType(*value)
	var rat *Rat

	switch t {
	case "integer", "number":
		rat = NewRat(*value)
	case "string":
		if !opts.Resolve {
			report.SetStatus(NotANumber, map[string]any{"type": t})
			return nil
		}
		s := (*value).(string)
		ms, ok := resolveTimestamp(s)
		if !ok {
			report.SetStatus(NotANumber, map[string]any{"type": t})
			return nil
		}
		// See leaf_enum.go: the log's dedup result never gates this
		// value's own change/status.
		v.ChangeLog.Record(report.Descriptor, ms)
		report.AddChange("value", s, ms)
		*value = ms
		rat = NewRat(ms)
	default:
		report.SetStatus(NotANumber, map[string]any{"type": t})
		return nil
	}

	if rat == nil {
		report.SetStatus(NotANumber, map[string]any{"type": t})
		return nil
	}
	if spec.Range != nil {
		code, err := spec.Range.CheckNumeric(rat)
		if err != nil {
			return err
		}
		if code != OK {
			report.SetStatus(code, map[string]any{"value": *value})
		}
	}
	return nil
}
