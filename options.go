package ddvalidate

import "github.com/kaptinlin/go-i18n"

// Options configures a single validation run (spec §6). DefaultOptions
// returns the stated defaults: leaves without a declared type are treated
// as errors, coercion is disabled, the default namespace reference is not
// permitted, and lookups use the cache. A zero Options value differs: its
// ExpectType, Cache and CacheMisses are all false.
type Options struct {
	// ExpectType, when true (the default), makes a leaf without a
	// declared type a reportable error rather than a silent pass.
	ExpectType bool

	// Resolve enables the resolver's in-place coercions (enum code ->
	// global identifier, date-string -> timestamp).
	Resolve bool

	// AllowDefaultNamespace permits an empty key value as a default
	// namespace reference on the descriptor named by NamespaceDescriptor.
	// The reserved default namespace key itself is always rejected.
	AllowDefaultNamespace bool

	// NamespaceDescriptor names the one descriptor key whose key leaves
	// accept an empty string when AllowDefaultNamespace is set (spec
	// §4.2, "accepted only if the enclosing descriptor is the namespace
	// descriptor"). Left empty, no descriptor qualifies: an empty key
	// reports EMPTY_KEY when AllowDefaultNamespace is off and
	// NO_REFERENCE_DEFAULT_NAMESPACE when it is on.
	NamespaceDescriptor string

	// ResolveField names the code-section field the resolver probes when
	// resolving enum codes. Defaults to the local identifier field.
	ResolveField string

	// Language names the locale that the unexported localizer method
	// builds from a bundle attached with WithBundle. No validation entry
	// point reads it: reports are assembled with English messages, and
	// Report.Localize/BatchReport.Localize use only the localizer passed
	// to them.
	Language string

	// ExpectTerms makes an object property with no matching term a
	// reportable UnknownProperty rather than a silently ignored field
	// (spec §4.3, "flagged UNKNOWN_PROPERTY when 'expect terms' is set").
	ExpectTerms bool

	// DeduplicateSets enables the non-default set-uniqueness check
	// (DESIGN.md's Open Question decision): when true, a repeated
	// element within a set value reports DuplicateSetElement.
	DeduplicateSets bool

	// Cache and CacheMisses default lookupOptions for every C1 call this
	// run makes (spec §4.1's cache/cacheMisses).
	Cache       bool
	CacheMisses bool

	bundle *i18n.I18n
}

// DefaultOptions returns Options with spec's stated defaults applied.
func DefaultOptions() Options {
	return Options{
		ExpectType:   true,
		ResolveField: "lid",
		Cache:        true,
		CacheMisses:  true,
	}
}

// WithBundle attaches an i18n bundle used to build a localizer for
// Options.Language. Without a bundle, reports stay in their default
// English rendering regardless of Language.
func (o Options) WithBundle(bundle *i18n.I18n) Options {
	o.bundle = bundle
	return o
}

// localizer builds the localizer named by Options.Language, or nil if no
// bundle is attached or no language was requested.
func (o Options) localizer() *i18n.Localizer {
	if o.bundle == nil || o.Language == "" {
		return nil
	}
	return o.bundle.NewLocalizer(o.Language)
}

func (o Options) lookupOpts() []func(*lookupOptions) {
	return []func(*lookupOptions){
		WithCache(o.Cache),
		WithCacheMisses(o.CacheMisses),
	}
}
