package ddvalidate

import "sort"

// compareDataSections implements spec §4.6's data-section compatibility
// rule: a data section can't be added to a non-descriptor nor removed
// from a descriptor; the current dimensionality must match; descending
// recurses into the matching container shape.
func compareDataSections(original, updated *DataSection) Compat {
	if original == nil && updated == nil {
		return Compat{OK: true}
	}
	if original == nil && updated != nil {
		return invalid("data section added to a previously non-descriptor term", "data", nil, "present")
	}
	if original != nil && updated == nil {
		return invalid("data section removed from a descriptor", "data", "present", nil)
	}
	if original.Dim != updated.Dim {
		return invalid("dimensionality selector changed", "data.dim", original.Dim, updated.Dim)
	}

	switch original.Dim {
	case DimScalar:
		return compareScalarSpecs(original.Scalar, updated.Scalar, "data.scalar")
	case DimArray:
		return compareArraySpecs(original.Array, updated.Array)
	case DimSet:
		return compareSetSpecs(original.Set, updated.Set)
	case DimDict:
		return compareDictSpecs(original.Dict, updated.Dict)
	default:
		return Compat{OK: true}
	}
}

// compareScalarSpecs implements spec §4.6's scalar-leaf rule: type and
// regex are immutable (ScalarSpec carries no format or unit field, so
// none is compared); kind may grow but not shrink;
// ranges may widen but not tighten. The same rule applies, per spec, to
// set-scalar and key-scalar leaves, which are themselves ScalarSpec
// values.
func compareScalarSpecs(original, updated *ScalarSpec, field string) Compat {
	if original == nil || updated == nil {
		if original == updated {
			return Compat{OK: true}
		}
		return invalid("scalar section presence changed", field, original, updated)
	}

	origType, updType := "", ""
	if original.Type != nil {
		origType = string(*original.Type)
	}
	if updated.Type != nil {
		updType = string(*updated.Type)
	}
	if origType != updType {
		return invalid("leaf type is immutable", field+".type", origType, updType)
	}

	origRegex, updRegex := "", ""
	if original.Regex != nil {
		origRegex = *original.Regex
	}
	if updated.Regex != nil {
		updRegex = *updated.Regex
	}
	if origRegex != updRegex {
		return invalid("regex annotation is immutable", field+".regex", origRegex, updRegex)
	}

	if !kindGrewOnly(original.Kind, updated.Kind) {
		return invalid("kind annotation may only grow", field+".kind", original.Kind, updated.Kind)
	}

	leaf := LeafString
	if original.Type != nil {
		leaf = *original.Type
	}
	if c := compareRange(original.Range, updated.Range, leaf, field+".range"); !c.OK {
		return c
	}
	return Compat{OK: true}
}

// kindGrewOnly reports whether every element of original also appears in
// updated (updated may additionally contain new elements).
func kindGrewOnly(original, updated []string) bool {
	updSet := make(map[string]bool, len(updated))
	for _, k := range updated {
		updSet[k] = true
	}
	for _, k := range original {
		if !updSet[k] {
			return false
		}
	}
	return true
}

// compareArraySpecs implements spec §4.6's array-cardinality rule:
// element-count constraints may widen; adding a constraint where none
// existed is rejected.
func compareArraySpecs(original, updated *ArraySpec) Compat {
	if original == nil || updated == nil {
		if original == updated {
			return Compat{OK: true}
		}
		return invalid("array section presence changed", "data.array", original, updated)
	}
	if c := compareIntBound("data.array.minItems", original.MinItems, updated.MinItems, false); !c.OK {
		return c
	}
	if c := compareIntBound("data.array.maxItems", original.MaxItems, updated.MaxItems, true); !c.OK {
		return c
	}
	return compareDataSections(original.Element, updated.Element)
}

// compareSetSpecs mirrors compareArraySpecs for the set dimension.
func compareSetSpecs(original, updated *SetSpec) Compat {
	if original == nil || updated == nil {
		if original == updated {
			return Compat{OK: true}
		}
		return invalid("set section presence changed", "data.set", original, updated)
	}
	if c := compareIntBound("data.set.minItems", original.MinItems, updated.MinItems, false); !c.OK {
		return c
	}
	if c := compareIntBound("data.set.maxItems", original.MaxItems, updated.MaxItems, true); !c.OK {
		return c
	}
	return compareScalarSpecs(original.Element, updated.Element, "data.set.element")
}

// compareDictSpecs recurses a dict's key and value sections.
func compareDictSpecs(original, updated *DictSpec) Compat {
	if original == nil || updated == nil {
		if original == updated {
			return Compat{OK: true}
		}
		return invalid("dict section presence changed", "data.dict", original, updated)
	}
	if c := compareScalarSpecs(original.Key, updated.Key, "data.dict.key"); !c.OK {
		return c
	}
	return compareDataSections(original.Value, updated.Value)
}

// compareIntBound implements the "may widen, may not newly constrain"
// rule for a single min/max cardinality bound. isMax controls which
// direction counts as widening.
func compareIntBound(field string, original, updated *int, isMax bool) Compat {
	if original == nil && updated == nil {
		return Compat{OK: true}
	}
	if original != nil && updated == nil {
		return Compat{OK: true} // constraint removed: widening
	}
	if original == nil && updated != nil {
		return invalid(field+" added a new constraint where none existed", field, nil, *updated)
	}
	if isMax {
		if *updated < *original {
			return invalid(field+" has decreased", field, *original, *updated)
		}
	} else if *updated > *original {
		return invalid(field+" has increased", field, *original, *updated)
	}
	return Compat{OK: true}
}

// compareRange implements spec §4.6's "ranges may widen but not tighten"
// rule across the four-bound tuple. Adding a range to a previously
// unconstrained leaf is itself a tightening.
func compareRange(original, updated *RangeSpec, leaf LeafType, field string) Compat {
	origEmpty := original.IsEmpty()
	updEmpty := updated.IsEmpty()
	if origEmpty && updEmpty {
		return Compat{OK: true}
	}
	if origEmpty && !updEmpty {
		return invalid(field+" added where none existed", field, nil, "set")
	}
	if !origEmpty && updEmpty {
		return Compat{OK: true} // range removed: widening
	}

	if c := compareBoundPair(field+".min", original.MinIncl, original.MinExcl, updated.MinIncl, updated.MinExcl, leaf, false); !c.OK {
		return c
	}
	if c := compareBoundPair(field+".max", original.MaxIncl, original.MaxExcl, updated.MaxIncl, updated.MaxExcl, leaf, true); !c.OK {
		return c
	}
	return Compat{OK: true}
}

// compareBoundPair compares one side (min or max) of a range, taking
// whichever of the inclusive/exclusive variants is set. isMax selects
// the direction that counts as widening.
func compareBoundPair(field string, origIncl, origExcl, updIncl, updExcl *string, leaf LeafType, isMax bool) Compat {
	origVal, origStrict, origSet := pickBound(origIncl, origExcl)
	updVal, updStrict, updSet := pickBound(updIncl, updExcl)

	if !origSet && !updSet {
		return Compat{OK: true}
	}
	if origSet && !updSet {
		return Compat{OK: true} // bound removed: widening
	}
	if !origSet && updSet {
		return invalid(field+" added where none existed", field, nil, *updVal)
	}

	cmp := compareLexOrNumeric(*origVal, *updVal, leaf)
	switch {
	case isMax && cmp > 0:
		return invalid(field+" has decreased", field, *origVal, *updVal)
	case !isMax && cmp < 0:
		return invalid(field+" has increased", field, *origVal, *updVal)
	case cmp == 0 && !origStrict && updStrict:
		// same value, original inclusive now exclusive: stricter.
		return invalid(field+" became exclusive at the same bound", field, *origVal, *updVal)
	}
	return Compat{OK: true}
}

func pickBound(incl, excl *string) (*string, bool, bool) {
	if incl != nil {
		return incl, false, true
	}
	if excl != nil {
		return excl, true, true
	}
	return nil, false, false
}

// compareLexOrNumeric compares two bound literals either numerically (for
// integer/number/timestamp leaves) or lexicographically (string/date),
// matching rangespec.go's own comparison family.
func compareLexOrNumeric(a, b string, leaf LeafType) int {
	switch leaf {
	case LeafInteger, LeafNumber, LeafTimestamp:
		ra, rb := NewRat(a), NewRat(b)
		if ra != nil && rb != nil {
			return ra.Cmp(rb.Rat)
		}
	}
	strs := []string{a, b}
	sort.Strings(strs)
	switch {
	case a == b:
		return 0
	case strs[0] == a:
		return -1
	default:
		return 1
	}
}
