package ddvalidate

import (
	"context"
	"time"
)

// timestampLayouts are tried in order when coercing a date string to a
// unix-ms timestamp (spec §4.4, "timestamp resolution").
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"20060102",
	"200601",
	"2006",
}

// resolveTimestamp attempts to parse s as a date string and returns its
// unix-ms value. ok is false if none of the known layouts match.
func resolveTimestamp(s string) (int64, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// resolveEnum implements spec §4.4's enum resolution: for each type
// listed in kind, query C1.findEnumByCode(resolveField, value, type); the
// key of the single term returned for the first type that yields exactly
// one match is the resolution. ok is false if no listed type produces
// exactly one match.
func (v *Validator) resolveEnum(ctx context.Context, resolveField, value string, kind []string) (string, bool, error) {
	for _, enumType := range kind {
		ids, err := v.Cache.FindEnumByCode(ctx, resolveField, value, enumType)
		if err != nil {
			return "", false, err
		}
		if len(ids) == 1 {
			return ids[0], true, nil
		}
		// Zero or ambiguous (>1) matches for this type: move on to the
		// next declared type (DESIGN.md, enum resolution ambiguity
		// decision: kind order is normative, only an exact single match
		// stops the scan).
	}
	return "", false, nil
}
