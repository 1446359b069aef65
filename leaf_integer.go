package ddvalidate

// leafInteger implements spec §4.2's integer leaf: primitive check, then
// the numeric range tuple.
func (v *Validator) leafInteger(spec *ScalarSpec, value *any, report *Report) error {
	if getDataType(*value) != "integer" {
		report.SetStatus(NotAnInteger, map[string]any{"type": getDataType(*value)})
		return nil
	}
	rat := NewRat(*value)
	if rat == nil {
		report.SetStatus(NotAnInteger, map[string]any{"type": getDataType(*value)})
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
