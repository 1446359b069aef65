package ddvalidate

// leafNumber implements spec §4.2's number leaf: primitive check (integer
// or fractional numeric), then the numeric range tuple.
func (v *Validator) leafNumber(spec *ScalarSpec, value *any, report *Report) error {
	t := getDataType(*value)
	if t != "integer" && t != "number" {
		report.SetStatus(NotANumber, map[string]any{"type": t})
		return nil
	}
	rat := NewRat(*value)
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
