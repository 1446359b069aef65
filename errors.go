package ddvalidate

import "errors"

// These sentinel errors signal dictionary corruption: a term record that
// cannot be trusted to describe a value at all. They are distinct from a
// Report's error status, which describes a value failing an otherwise
// well-formed term (see result.go). A corrupt dictionary is raised, not
// reported.
var (
	// ErrNilTerm is returned when a nil term is handed to an operation that
	// requires one.
	ErrNilTerm = errors.New("nil term")

	// ErrReservedKeyAsTerm is returned when a term uses the reserved default
	// namespace key as its own key.
	ErrReservedKeyAsTerm = errors.New("term key collides with reserved default namespace key")

	// ErrMultipleDimensionSelectors is returned when a data section carries
	// more than one of scalar/array/set/dict.
	ErrMultipleDimensionSelectors = errors.New("data section declares more than one dimensionality")

	// ErrNoDimensionSelector is returned when a data section declares none of
	// scalar/array/set/dict.
	ErrNoDimensionSelector = errors.New("data section declares no dimensionality")

	// ErrBadDictKeyType is returned when a dict's key scalar declares a leaf
	// type outside string/key/handle/enum/date.
	ErrBadDictKeyType = errors.New("dict key leaf type not permitted")

	// ErrUnknownLeafType is returned when a scalar declares a leaf type this
	// package does not recognize. This is distinct from the "type not
	// declared" validation branch, which is a reportable condition, not a
	// dictionary error.
	ErrUnknownLeafType = errors.New("unknown leaf type")

	// ErrUnknownKindQualifier is returned when a key leaf's kind array
	// contains a qualifier this package does not recognize.
	ErrUnknownKindQualifier = errors.New("unknown kind qualifier")

	// ErrTermNotFound is returned by a Repository when a referenced term key
	// does not exist.
	ErrTermNotFound = errors.New("term not found")

	// ErrNotADescriptor is returned when an operation expecting a descriptor
	// term (one carrying a data section) is given a term without one.
	ErrNotADescriptor = errors.New("term is not a descriptor")

	// ErrNotAStructureDefinition is returned when an operation expecting a
	// structure-definition term (one carrying a rule section) is given a
	// term without one.
	ErrNotAStructureDefinition = errors.New("term is not a structure definition")

	// ErrCacheUnavailable is returned by a cache tier that cannot currently
	// serve lookups (e.g. the shared tier's connection is down). Callers
	// should fall back to the Repository directly, not treat this as
	// corruption.
	ErrCacheUnavailable = errors.New("term cache unavailable")

	// ErrMaxRecursionDepth is returned when walkDataSection's recursion
	// exceeds maxRecursionDepth, signaling a malformed or adversarial term
	// graph (including a structure-definition cycle, which recurses
	// indefinitely and is caught by this same guard) rather than an
	// ordinary validation failure.
	ErrMaxRecursionDepth = errors.New("maximum recursion depth exceeded")

	// ErrInvalidRangeBound is returned when a range bound cannot be parsed
	// against its leaf type (e.g. a non-numeric minIncl on a number leaf).
	ErrInvalidRangeBound = errors.New("invalid range bound")

	// ErrInvalidRegex is returned when a term's regex annotation fails to
	// compile.
	ErrInvalidRegex = errors.New("invalid regex annotation")

	// ErrUnsupportedTypeForRat is returned when a value of a type Rat cannot
	// convert (anything but a number or a numeric string) is unmarshaled.
	ErrUnsupportedTypeForRat = errors.New("unsupported type for rational conversion")

	// ErrFailedToConvertToRat is returned when a numeric string fails to
	// parse as a big.Rat.
	ErrFailedToConvertToRat = errors.New("failed to convert value to rational")
)
