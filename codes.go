package ddvalidate

// Code is a stable, public integer identifying a validation outcome (spec
// §6, "Error taxonomy"). Codes are part of the package's compatibility
// surface: once assigned, a code's meaning never changes.
type Code int

// Idle and coercion codes.
const (
	OK             Code = 0
	ModifiedValue  Code = 1
)

// Type-mismatch codes (2-10).
const (
	NotAnArray   Code = 2
	NotAScalar   Code = 3
	NotABoolean  Code = 4
	NotAnInteger Code = 5
	NotANumber   Code = 6
)

// Range codes (11-13).
const (
	OutOfRange Code = 11
	LowRange   Code = 12
	HighRange  Code = 13
)

// Pattern code.
const (
	PatternMismatch Code = 14
)

// Reference codes (18-26).
const (
	EmptyKey                  Code = 18
	NotAnEnum                 Code = 19
	NotAStructureDefinition   Code = 20
	NoRefDefaultNamespaceKey  Code = 21
	UnknownDocument           Code = 22
	BadKeyValue               Code = 23
	BadHandleValue            Code = 24
	BadCollectionName         Code = 25
	UnknownCollection         Code = 26
)

// Structure codes (27-34).
const (
	NotCorrectEnumType    Code = 27
	UnknownDescriptor     Code = 28
	PropertyNotDescriptor Code = 29
	ValueNotTerm          Code = 30
	NotAnObject           Code = 31
	UnknownProperty       Code = 32
	InvalidDateFormat     Code = 33
	InvalidObjectStruct   Code = 34
)

// Array cardinality codes (35-37).
const (
	ValueNotAnArray Code = 35
	TooFew          Code = 36
	TooMany         Code = 37
)

// GeoJSON codes (38-40).
const (
	MissingType        Code = 38
	MissingCoordinates Code = 39
	InvalidCoordinates Code = 40
)

// Dict codes are negative. walkDict reports DictMissingKeySection and
// DictMissingValueSection for a dict descriptor lacking either section.
// DictBadKey and DictUnknownProperty are registered with messages but
// nothing in this package reports them: a dict key that fails validation
// is reported under the key leaf's own positive code.
const (
	DictMissingKeySection   Code = -1
	DictMissingValueSection Code = -2
	DictBadKey              Code = -23 // mirrors BadKeyValue, dict-key position
	DictUnknownProperty     Code = -32 // mirrors UnknownProperty, dict-key position
)

// DuplicateSetElement reports a non-unique element in a set when
// Options.DeduplicateSets is enabled (see DESIGN.md's Open Question
// decision on set uniqueness). It is outside the spec's base table since
// the behavior itself is opt-in.
const DuplicateSetElement Code = 41

// Walker-internal codes named in spec §4.2's prose but not assigned a
// number in the representative table; they share the table's numbering
// space rather than colliding with it.
const (
	ExpectingDataDimension     Code = 42
	MissingDataType            Code = 43
	NoReferenceDefaultNamespace Code = 44
)

// messageKeys maps a Code to its i18n bundle key. Unlisted codes fall back
// to a generic "unknown" message rather than panicking.
var messageKeys = map[Code]string{
	OK:                       "ok",
	ModifiedValue:            "modified_value",
	NotAnArray:               "not_an_array",
	NotAScalar:               "not_a_scalar",
	NotABoolean:              "not_a_boolean",
	NotAnInteger:             "not_an_integer",
	NotANumber:               "not_a_number",
	OutOfRange:               "out_of_range",
	LowRange:                 "low_range",
	HighRange:                "high_range",
	PatternMismatch:          "pattern_mismatch",
	EmptyKey:                 "empty_key",
	NotAnEnum:                "not_an_enum",
	NotAStructureDefinition:  "not_a_structure_definition",
	NoRefDefaultNamespaceKey: "no_ref_default_namespace_key",
	UnknownDocument:          "unknown_document",
	BadKeyValue:              "bad_key_value",
	BadHandleValue:           "bad_handle_value",
	BadCollectionName:        "bad_collection_name",
	UnknownCollection:        "unknown_collection",
	NotCorrectEnumType:       "not_correct_enum_type",
	UnknownDescriptor:        "unknown_descriptor",
	PropertyNotDescriptor:    "property_not_descriptor",
	ValueNotTerm:             "value_not_term",
	NotAnObject:              "not_an_object",
	UnknownProperty:          "unknown_property",
	InvalidDateFormat:        "invalid_date_format",
	InvalidObjectStruct:      "invalid_object_structure",
	ValueNotAnArray:          "value_not_an_array",
	TooFew:                   "too_few",
	TooMany:                  "too_many",
	MissingType:              "missing_type",
	MissingCoordinates:       "missing_coordinates",
	InvalidCoordinates:       "invalid_coordinates",
	DictMissingKeySection:    "dict_missing_key_section",
	DictMissingValueSection:  "dict_missing_value_section",
	DictBadKey:               "dict_bad_key",
	DictUnknownProperty:      "dict_unknown_property",
	DuplicateSetElement:      "duplicate_set_element",
	ExpectingDataDimension:      "expecting_data_dimension",
	MissingDataType:             "missing_data_type",
	NoReferenceDefaultNamespace: "no_reference_default_namespace",
}

// MessageKey returns the i18n bundle key for c, or "unknown" if c carries
// no registered message.
func (c Code) MessageKey() string {
	if k, ok := messageKeys[c]; ok {
		return k
	}
	return "unknown"
}

// Severity classifies a code for report-assembly purposes (spec §4.5's
// "non-idle status replaces any prior idle/warning status" rule needs this
// distinction so a later warning never silently downgrades an existing
// error).
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityError
)

// Severity reports the severity class of c.
func (c Code) Severity() Severity {
	switch c {
	case OK:
		return SeverityOK
	case ModifiedValue:
		return SeverityWarning
	default:
		return SeverityError
	}
}
