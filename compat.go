package ddvalidate

import "fmt"

// DiffEntry is one field of a Compat's minimal diff object (spec §4.6,
// "a minimal diff object { field: { old, new } }").
type DiffEntry struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Compat is the outcome of comparing two descriptor versions (spec
// §4.6's compare). Compat{OK: true} (no message, no diff) represents the
// "Ok" outcome; the zero value has OK false.
type Compat struct {
	OK      bool                 `json:"ok"`
	Message string               `json:"message,omitempty"`
	Diff    map[string]DiffEntry `json:"diff,omitempty"`
}

func invalid(message string, field string, old, new any) Compat {
	return Compat{
		Message: message,
		Diff:    map[string]DiffEntry{field: {Old: old, New: new}},
	}
}

// CompareTerms implements spec §4.6's compare(original, updated): a pure,
// cache-free, repository-free two-term traversal grounded on the
// teacher's schemamerge.go comparison style, repurposed from "merge" to
// "compatibility check". It stops and returns the first incompatibility
// found.
func CompareTerms(original, updated *Term) Compat {
	if original == nil || updated == nil {
		return invalid("both term versions are required", "key", original, updated)
	}
	if original.Key != updated.Key {
		return invalid("document key may not change", "key", original.Key, updated.Key)
	}

	if c := compareCodeSections(original.Code, updated.Code); !c.OK {
		return c
	}
	if c := compareDataSections(original.Data, updated.Data); !c.OK {
		return c
	}
	if c := compareRuleSections(original.Rule, updated.Rule); !c.OK {
		return c
	}
	return Compat{OK: true}
}

func widened(field string, wasSet, isSet bool) *Compat {
	if wasSet && !isSet {
		return nil // constraint removed: widening, always fine
	}
	if !wasSet && isSet {
		c := invalid(fmt.Sprintf("%s added a new constraint where none existed", field), field, nil, "set")
		return &c
	}
	return nil
}
