package ddvalidate

// leafStruct implements spec §4.2's struct leaf: primitive object check
// only; deeper validation is delegated to the caller's own descriptor.
func (v *Validator) leafStruct(value *any, report *Report) error {
	if _, _, ok := toPairs(*value); !ok {
		report.SetStatus(NotAnObject, map[string]any{"type": getDataType(*value)})
	}
	return nil
}
