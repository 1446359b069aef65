package ddvalidate

import (
	"context"
	"strings"
)

// leafHandle implements spec §4.2's handle leaf: string check, syntax,
// collection existence, key regex, document existence — each step with
// its own error code.
func (v *Validator) leafHandle(ctx context.Context, spec *ScalarSpec, value *any, report *Report) error {
	s, ok := (*value).(string)
	if !ok {
		report.SetStatus(NotAScalar, map[string]any{"type": getDataType(*value)})
		return nil
	}

	collection, key, ok := strings.Cut(s, "/")
	if !ok || collection == "" || key == "" || strings.Contains(key, "/") {
		report.SetStatus(BadHandleValue, map[string]any{"value": s})
		return nil
	}
	if !CheckCollectionName(collection) {
		report.SetStatus(BadCollectionName, map[string]any{"value": collection})
		return nil
	}
	exists, err := v.Cache.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		report.SetStatus(UnknownCollection, map[string]any{"collection": collection})
		return nil
	}
	if !CheckKey(key) {
		report.SetStatus(BadKeyValue, map[string]any{"value": key})
		return nil
	}
	found, err := v.Cache.Exists(ctx, s)
	if err != nil {
		return err
	}
	if !found {
		report.SetStatus(UnknownDocument, map[string]any{"handle": s})
	}
	return nil
}
