package ddvalidate

import "regexp"

// DefaultNamespaceKey is the reserved sentinel denoting the default
// namespace. It must never appear as an ordinary term reference in
// validated data (see spec §3, "Invariants").
const DefaultNamespaceKey = ":"

var (
	collectionNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)
	keyValueRe       = regexp.MustCompile(`^[A-Za-z0-9\-._@+,=;$!*'%()]{1,254}$`)
)

// CheckCollectionName reports whether name matches the collection-name
// syntax rule.
func CheckCollectionName(name string) bool {
	return collectionNameRe.MatchString(name)
}

// CheckKey reports whether key matches the document-key syntax rule.
func CheckKey(key string) bool {
	return keyValueRe.MatchString(key)
}

// CheckHandleSyntax reports whether h is a syntactically valid
// "collection/key" handle: exactly one '/', a collection name matching
// CheckCollectionName and a key matching CheckKey.
func CheckHandleSyntax(h string) bool {
	slash := -1
	for i := 0; i < len(h); i++ {
		if h[i] == '/' {
			if slash != -1 {
				return false // more than one '/'
			}
			slash = i
		}
	}
	if slash <= 0 || slash == len(h)-1 {
		return false
	}
	return CheckCollectionName(h[:slash]) && CheckKey(h[slash+1:])
}

// SplitHandle splits a handle into its collection and key parts. ok is
// false unless CheckHandleSyntax(h) holds.
func SplitHandle(h string) (collection, key string, ok bool) {
	if !CheckHandleSyntax(h) {
		return "", "", false
	}
	for i := 0; i < len(h); i++ {
		if h[i] == '/' {
			return h[:i], h[i+1:], true
		}
	}
	return "", "", false
}

// LeafType enumerates the leaf types a data section scalar may declare
// (spec §3, "Leaf types").
type LeafType string

const (
	LeafBoolean   LeafType = "boolean"
	LeafInteger   LeafType = "integer"
	LeafNumber    LeafType = "number"
	LeafTimestamp LeafType = "timestamp"
	LeafString    LeafType = "string"
	LeafKey       LeafType = "key"
	LeafHandle    LeafType = "handle"
	LeafEnum      LeafType = "enum"
	LeafDate      LeafType = "date"
	LeafStruct    LeafType = "struct"
	LeafObject    LeafType = "object"
	LeafGeoJSON   LeafType = "geojson"
)

// Kind qualifiers recognized for the "key" leaf type (spec §4.2, "key").
const (
	KindAnyTerm       = "_any_"
	KindAnyEnum       = "_any_enum_"
	KindAnyDescriptor = "_any_descriptor_"
	KindAnyStructure  = "_any_structure_"
)

// Dimensionality identifies which of the four mutually exclusive shapes a
// DataSection takes (spec §3, "Dimensionality").
type Dimensionality int

const (
	DimNone Dimensionality = iota
	DimScalar
	DimArray
	DimSet
	DimDict
)

// RangeSpec carries the four independent bound annotations a leaf may
// declare (spec §3, "Leaf annotations"). Bounds are stored as the literal
// source representation (numeric, string, or date token) and interpreted
// by the caller's comparison family; this mirrors the teacher's Rat
// wrapper, which defers numeric parsing to the comparison site.
type RangeSpec struct {
	MinIncl *string `json:"minIncl,omitempty"`
	MinExcl *string `json:"minExcl,omitempty"`
	MaxIncl *string `json:"maxIncl,omitempty"`
	MaxExcl *string `json:"maxExcl,omitempty"`
}

// IsEmpty reports whether none of the four bounds are set.
func (r *RangeSpec) IsEmpty() bool {
	return r == nil || (r.MinIncl == nil && r.MinExcl == nil && r.MaxIncl == nil && r.MaxExcl == nil)
}

// ScalarSpec is a leaf declaration: a type plus its annotations. It is
// reused, per spec §3, for ordinary scalars, set-scalars (no nested
// containers) and dict key-scalars (leaf types restricted to
// string/key/handle/enum/date).
type ScalarSpec struct {
	Type  *LeafType  `json:"type,omitempty"`
	Range *RangeSpec `json:"range,omitempty"`
	Regex *string    `json:"regex,omitempty"`
	// Kind restricts admissible term qualifiers for "key" leaves, the
	// enum-type ancestry for "enum" leaves, and the candidate structure
	// terms for "object" leaves. Its meaning is leaf-type dependent, as
	// the single generic "kind" annotation of spec §3 implies.
	Kind []string `json:"kind,omitempty"`
}

// ArraySpec describes an ordered, possibly-bounded array of elements each
// recursively following another DataSection (spec §3, "array").
type ArraySpec struct {
	MinItems *int         `json:"minItems,omitempty"`
	MaxItems *int         `json:"maxItems,omitempty"`
	Element  *DataSection `json:"element,omitempty"`
}

// SetSpec describes an unordered array whose elements follow a leaf-only
// ScalarSpec (spec §3, "set"). Element uniqueness is checked only when
// Options.DeduplicateSets is set.
type SetSpec struct {
	MinItems *int        `json:"minItems,omitempty"`
	MaxItems *int        `json:"maxItems,omitempty"`
	Element  *ScalarSpec `json:"element,omitempty"`
}

// DictSpec describes an object keyed by a restricted leaf type, with
// arbitrary-shaped values (spec §3, "dict").
type DictSpec struct {
	Key   *ScalarSpec  `json:"key,omitempty"`
	Value *DataSection `json:"value,omitempty"`
}

// DataSection is the tagged union of dimensionalities a descriptor's data
// section carries (spec §3, "Dimensionality" invariant: exactly one
// selector present).
type DataSection struct {
	Dim    Dimensionality `json:"dim"`
	Scalar *ScalarSpec    `json:"scalar,omitempty"`
	Array  *ArraySpec     `json:"array,omitempty"`
	Set    *SetSpec       `json:"set,omitempty"`
	Dict   *DictSpec      `json:"dict,omitempty"`
}

// RequiredSelectors groups the structural "required" family of rule
// selectors (spec §4.3).
type RequiredSelectors struct {
	One          []string   `json:"one,omitempty"`
	OneOrNone    []string   `json:"oneOrNone,omitempty"`
	Any          []string   `json:"any,omitempty"`
	OneOrNoneSet [][]string `json:"oneOrNoneSet,omitempty"`
	All          []string   `json:"all,omitempty"`
}

// RuleSection describes the structural constraints a structure definition
// term attaches to object-typed values (spec §3, "rule section").
type RuleSection struct {
	Required RequiredSelectors `json:"required,omitempty"`
	Banned   []string          `json:"banned,omitempty"`
}

// CodeSection carries a term's identifier strings (spec §3, "code
// section").
type CodeSection struct {
	Namespace string   `json:"ns,omitempty"`
	Local     string   `json:"lid,omitempty"`
	Global    string   `json:"gid,omitempty"`
	Official  []string `json:"official,omitempty"`
}

// Field returns the value of the named code-section field. It is used by
// the resolver (C5) to probe a caller-configured lookup field.
func (c *CodeSection) Field(name string) string {
	if c == nil {
		return ""
	}
	switch name {
	case "ns", "namespace":
		return c.Namespace
	case "gid", "global":
		return c.Global
	default: // "lid"/"local" and any unrecognized name default to local
		return c.Local
	}
}

// Term is a record identified by a globally unique key (spec §3, "Term").
type Term struct {
	Key  string       `json:"key"`
	Code *CodeSection `json:"code,omitempty"`
	Data *DataSection `json:"data,omitempty"`
	Rule *RuleSection `json:"rule,omitempty"`
	Path []string     `json:"path,omitempty"`
}

// IsDescriptor reports whether the term carries a data section.
func (t *Term) IsDescriptor() bool { return t != nil && t.Data != nil }

// IsStructureDefinition reports whether the term carries a rule section.
func (t *Term) IsStructureDefinition() bool { return t != nil && t.Rule != nil }

// IsEnumElement reports whether the term carries an enum path.
func (t *Term) IsEnumElement() bool { return t != nil && len(t.Path) > 0 }

// InPath reports whether enumType appears in the term's enum path, i.e.
// whether the term belongs to that enum type (spec §3 invariant: "An enum
// element belongs to enum type T iff T's key appears in its path").
func (t *Term) InPath(enumType string) bool {
	for _, p := range t.Path {
		if p == enumType {
			return true
		}
	}
	return false
}

// Projection returns the minimal cache-worthy copy of the term: only key,
// data section, rule section and path (spec §4.1, "Returns a projection of
// the term containing only key, data section, rule section, and path").
func (t *Term) Projection() *Term {
	if t == nil {
		return nil
	}
	return &Term{
		Key:  t.Key,
		Data: t.Data,
		Rule: t.Rule,
		Path: t.Path,
	}
}

// Validate performs the structural sanity checks spec §3 states as
// invariants on a raw term record, independent of any value it might
// describe. Fixture loaders call it when validating a dictionary file;
// the term cache does not call it before returning a projection.
func (t *Term) Validate() error {
	if t == nil {
		return ErrNilTerm
	}
	if t.Key == DefaultNamespaceKey {
		return ErrReservedKeyAsTerm
	}
	if t.Data != nil {
		if err := t.Data.validate(); err != nil {
			return err
		}
	}
	return nil
}

// validate checks the "exactly one dimensionality selector" invariant and,
// for dict sections, that key sections carry no nested containers.
func (d *DataSection) validate() error {
	if d == nil {
		return nil
	}
	count := 0
	if d.Scalar != nil {
		count++
	}
	if d.Array != nil {
		count++
	}
	if d.Set != nil {
		count++
	}
	if d.Dict != nil {
		count++
	}
	if count > 1 {
		return ErrMultipleDimensionSelectors
	}
	if count == 0 {
		return ErrNoDimensionSelector
	}
	switch {
	case d.Dict != nil:
		if d.Dict.Key != nil && d.Dict.Key.Type != nil {
			switch *d.Dict.Key.Type {
			case LeafString, LeafKey, LeafHandle, LeafEnum, LeafDate:
			default:
				return ErrBadDictKeyType
			}
		}
	case d.Set != nil:
		// Set-scalars are ScalarSpec by construction (no Array/Dict field
		// exists on that type), so nested containers are structurally
		// impossible; nothing further to validate.
	}
	return nil
}
