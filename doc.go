// Package ddvalidate implements a data-dictionary validation engine: given a
// repository of descriptor terms describing the shape, type, constraints and
// structural rules of data, it validates arbitrary JSON-like values against
// those descriptors, optionally resolving almost-valid values to a canonical
// form, and checks whether a proposed descriptor edit is compatible with
// previously stored data.
//
// Credit to https://github.com/kaptinlin/jsonschema for the evaluation-result,
// dynamic-scope and i18n patterns this package's walker and reporter follow.
package ddvalidate
