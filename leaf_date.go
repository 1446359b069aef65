package ddvalidate

import "regexp"

// dateFormatRe matches the four date-string shapes spec §3 allows:
// YYYY, YYYYMM, YYYYMMDD, YYYY-YYYY. Semantic validity (real month, real
// day) is intentionally not checked (spec §9, "Date semantic validity" —
// decided lexical-only).
var dateFormatRe = regexp.MustCompile(`^(\d{4}|\d{6}|\d{8}|\d{4}-\d{4})$`)

// leafDate implements spec §4.2's date leaf: must be a string matching
// one of the four shapes, then the date range.
func (v *Validator) leafDate(spec *ScalarSpec, value *any, report *Report) error {
	s, ok := (*value).(string)
	if !ok {
		report.SetStatus(InvalidDateFormat, map[string]any{"value": *value})
		return nil
	}
	if !dateFormatRe.MatchString(s) {
		report.SetStatus(InvalidDateFormat, map[string]any{"value": s})
		return nil
	}
	if spec.Range != nil {
		if code := spec.Range.CheckDate(s); code != OK {
			report.SetStatus(code, map[string]any{"value": s})
		}
	}
	return nil
}
