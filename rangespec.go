package ddvalidate

import "strings"

// CheckNumeric evaluates r against a numeric value represented as a Rat,
// returning the code describing the outcome (OK, LowRange or HighRange).
// Empty bounds never fail.
func (r *RangeSpec) CheckNumeric(value *Rat) (Code, error) {
	if r.IsEmpty() || value == nil {
		return OK, nil
	}
	low, high := false, false
	if r.MinIncl != nil {
		min := NewRat(*r.MinIncl)
		if min == nil {
			return OK, ErrInvalidRangeBound
		}
		if value.Cmp(min.Rat) < 0 {
			low = true
		}
	}
	if r.MinExcl != nil {
		min := NewRat(*r.MinExcl)
		if min == nil {
			return OK, ErrInvalidRangeBound
		}
		if value.Cmp(min.Rat) <= 0 {
			low = true
		}
	}
	if r.MaxIncl != nil {
		max := NewRat(*r.MaxIncl)
		if max == nil {
			return OK, ErrInvalidRangeBound
		}
		if value.Cmp(max.Rat) > 0 {
			high = true
		}
	}
	if r.MaxExcl != nil {
		max := NewRat(*r.MaxExcl)
		if max == nil {
			return OK, ErrInvalidRangeBound
		}
		if value.Cmp(max.Rat) >= 0 {
			high = true
		}
	}
	switch {
	case low && high:
		return OutOfRange, nil
	case low:
		return LowRange, nil
	case high:
		return HighRange, nil
	default:
		return OK, nil
	}
}

// CheckString evaluates r against a string value using lexicographic
// comparison, used for string-length-independent range annotations on
// string leaves and, through CheckDate, date leaves. Key and handle leaves
// do not check a range.
func (r *RangeSpec) CheckString(value string) Code {
	if r.IsEmpty() {
		return OK
	}
	low, high := false, false
	if r.MinIncl != nil && strings.Compare(value, *r.MinIncl) < 0 {
		low = true
	}
	if r.MinExcl != nil && strings.Compare(value, *r.MinExcl) <= 0 {
		low = true
	}
	if r.MaxIncl != nil && strings.Compare(value, *r.MaxIncl) > 0 {
		high = true
	}
	if r.MaxExcl != nil && strings.Compare(value, *r.MaxExcl) >= 0 {
		high = true
	}
	switch {
	case low && high:
		return OutOfRange
	case low:
		return LowRange
	case high:
		return HighRange
	default:
		return OK
	}
}

// CheckDate evaluates r against a date-format string. Dates compare
// lexicographically because the canonical wire format (YYYY[-MM[-DD]],
// compacted) sorts identically to chronological order for equal-length
// strings (spec §9's decision: date semantic validity is lexical-only).
func (r *RangeSpec) CheckDate(value string) Code {
	return r.CheckString(value)
}
