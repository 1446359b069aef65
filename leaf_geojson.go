package ddvalidate

// leafGeoJSON implements spec §4.2's geojson leaf: a shallow shape check
// only — an object with a type and a coordinates array. Geometry
// semantics are out of scope (spec §1, Non-goals).
func (v *Validator) leafGeoJSON(value *any, report *Report) error {
	_, values, ok := toPairs(*value)
	if !ok {
		report.SetStatus(NotAnObject, map[string]any{"type": getDataType(*value)})
		return nil
	}
	if _, ok := values["type"]; !ok {
		report.SetStatus(MissingType, nil)
		return nil
	}
	coords, ok := values["coordinates"]
	if !ok {
		report.SetStatus(MissingCoordinates, nil)
		return nil
	}
	if _, ok := coords.([]any); !ok {
		report.SetStatus(InvalidCoordinates, nil)
	}
	return nil
}
