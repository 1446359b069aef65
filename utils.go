package ddvalidate

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

// replace substitutes placeholders in a template string with actual
// parameter values, exactly as the teacher's result.go rendering helper
// does for EvaluationError messages.
func replace(template string, params map[string]any) string {
	for key, value := range params {
		placeholder := "{" + key + "}"
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(value))
	}
	return template
}

// getDataType identifies the leaf-level JSON type name of a decoded value,
// used to populate the {type} parameter of type-mismatch messages.
func getDataType(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		if _, ok := new(big.Int).SetString(string(v), 10); ok {
			return "integer"
		}
		if bigFloat, ok := new(big.Float).SetString(string(v)); ok {
			if _, acc := bigFloat.Int(nil); acc == big.Exact {
				return "integer"
			}
			return "number"
		}
		return "unknown"
	case float32, float64:
		bigFloat := new(big.Float).SetFloat64(reflect.ValueOf(v).Float())
		if _, acc := bigFloat.Int(nil); acc == big.Exact {
			return "integer"
		}
		return "number"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

// defaultMessages holds the English rendering used to eagerly populate a
// Status's Message field before any localizer is applied (see
// locales/en.json, which this mirrors for the no-localizer fast path).
var defaultMessages = map[string]string{
	"ok":                            "value is valid",
	"modified_value":                "value was coerced to its canonical form: {original} -> {resolved}",
	"not_an_array":                  "expected an array, got {type}",
	"not_a_scalar":                  "expected a scalar, got {type}",
	"not_a_boolean":                 "expected a boolean, got {type}",
	"not_an_integer":                "expected an integer, got {type}",
	"not_a_number":                  "expected a number, got {type}",
	"out_of_range":                  "value {value} is outside the allowed range",
	"low_range":                     "value {value} is below the minimum allowed",
	"high_range":                    "value {value} is above the maximum allowed",
	"pattern_mismatch":              "value {value} does not match pattern {regex}",
	"empty_key":                     "key value is empty",
	"not_an_enum":                   "{key} is not an enum element",
	"not_a_structure_definition":    "{key} is not a structure definition",
	"no_ref_default_namespace_key":  "reserved default namespace key used where a reference was expected",
	"unknown_document":              "document {handle} does not exist",
	"bad_key_value":                 "{value} is not a valid key",
	"bad_handle_value":              "{value} is not a valid handle",
	"bad_collection_name":           "{value} is not a valid collection name",
	"unknown_collection":            "collection {collection} does not exist",
	"not_correct_enum_type":         "{value} does not belong to enum type {enumType}",
	"unknown_descriptor":            "{key} is not a known descriptor",
	"property_not_descriptor":       "property {property} is not backed by a descriptor",
	"value_not_term":                "{value} does not resolve to a term",
	"not_an_object":                 "expected an object, got {type}",
	"unknown_property":              "{property} is not declared by any candidate structure",
	"invalid_date_format":           "{value} is not a valid date string",
	"invalid_object_structure":      "object does not satisfy any candidate structure",
	"value_not_an_array":            "expected a set, got {type}",
	"too_few":                       "array has {count} items, fewer than the minimum {min}",
	"too_many":                      "array has {count} items, more than the maximum {max}",
	"missing_type":                  "geojson value is missing its type",
	"missing_coordinates":           "geojson value is missing its coordinates",
	"invalid_coordinates":           "geojson coordinates are malformed",
	"dict_missing_key_section":      "dict descriptor is missing a key section",
	"dict_missing_value_section":    "dict descriptor is missing a value section",
	"dict_bad_key":                  "dict key {value} is not valid",
	"dict_unknown_property":         "dict key {property} is not declared by any candidate structure",
	"duplicate_set_element":         "{value} is duplicated within the set",
	"unknown":                       "unrecognized status code",
	"expecting_data_dimension":      "descriptor declares no data dimension",
	"missing_data_type":             "leaf declares no type",
	"no_reference_default_namespace": "empty key is only valid as a default namespace reference",
}
