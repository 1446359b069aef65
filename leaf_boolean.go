package ddvalidate

// leafBoolean implements spec §4.2's boolean leaf: primitive check only,
// no annotations apply.
func (v *Validator) leafBoolean(spec *ScalarSpec, value *any, report *Report) error {
	if _, ok := (*value).(bool); !ok {
		report.SetStatus(NotABoolean, map[string]any{"type": getDataType(*value)})
	}
	return nil
}
