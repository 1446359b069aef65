package ddvalidate

import "regexp"

// leafString implements spec §4.2's string leaf: primitive check, regex
// (if any), then the string range.
func (v *Validator) leafString(spec *ScalarSpec, value *any, report *Report) error {
	s, ok := (*value).(string)
	if !ok {
		report.SetStatus(NotAScalar, map[string]any{"type": getDataType(*value)})
		return nil
	}
	if spec.Regex != nil {
		re, err := regexp.Compile(*spec.Regex)
		if err != nil {
			return ErrInvalidRegex
		}
		if !re.MatchString(s) {
			report.SetStatus(PatternMismatch, map[string]any{"value": s, "regex": *spec.Regex})
			return nil
		}
	}
	if spec.Range != nil {
		if code := spec.Range.CheckString(s); code != OK {
			report.SetStatus(code, map[string]any{"value": s})
		}
	}
	return nil
}
