package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config collects every option the CLI needs beyond the subcommand's own
// flags: where the fixture dictionary lives and the Options (spec §6)
// a validation run should use by default.
type Config struct {
	Dictionary string `koanf:"dictionary"`

	ExpectType            bool   `koanf:"expectType"`
	Resolve               bool   `koanf:"resolve"`
	AllowDefaultNamespace bool   `koanf:"allowDefaultNamespace"`
	NamespaceDescriptor   string `koanf:"namespaceDescriptor"`
	ResolveField          string `koanf:"resolveField"`
	Language              string `koanf:"language"`
	ExpectTerms           bool   `koanf:"expectTerms"`
	DeduplicateSets       bool   `koanf:"deduplicateSets"`
	Cache                 bool   `koanf:"cache"`
	CacheMisses           bool   `koanf:"cacheMisses"`

	MetricsAddr string `koanf:"metricsAddr"`
}

// DefaultConfig mirrors ddvalidate.DefaultOptions' stated defaults.
func DefaultConfig() Config {
	return Config{
		ExpectType:   true,
		ResolveField: "lid",
		Cache:        true,
		CacheMisses:  true,
	}
}

// LoadConfig layers defaults, an optional config file and DDVALIDATE_*
// environment variables, in that order of increasing precedence —
// the same env-over-file-over-defaults contract the retrieval pack's
// other koanf-based loader uses.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := k.Load(confmap.Provider(defaultsMap(defaults), "."), nil); err != nil {
		return Config{}, fmt.Errorf("ddvalidatectl: load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("ddvalidatectl: config file %s: %w", path, err)
		}
		parser := yaml.Parser()
		if hasSuffix(path, ".json") {
			parser = json.Parser()
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("ddvalidatectl: load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("DDVALIDATE_", ".", envKeyToKoanf), nil); err != nil {
		return Config{}, fmt.Errorf("ddvalidatectl: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("ddvalidatectl: unmarshal config: %w", err)
	}
	return cfg, nil
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

// envKeyToKoanf maps DDVALIDATE_NAMESPACE_DESCRIPTOR -> namespacedescriptor,
// stripping the prefix and underscores and lower-casing; koanf's flat "."
// delimiter isn't needed since Config has no nested sections.
func envKeyToKoanf(key string) string {
	trimmed := strings.TrimPrefix(key, "DDVALIDATE_")
	return strings.ToLower(strings.ReplaceAll(trimmed, "_", ""))
}

// defaultsMap renders cfg as the flat map confmap.Provider expects. Field
// names must match the lower-cased form envKeyToKoanf produces as well as
// the koanf struct tags above.
func defaultsMap(cfg Config) map[string]any {
	return map[string]any{
		"dictionary":            cfg.Dictionary,
		"expecttype":            cfg.ExpectType,
		"resolve":               cfg.Resolve,
		"allowdefaultnamespace": cfg.AllowDefaultNamespace,
		"namespacedescriptor":   cfg.NamespaceDescriptor,
		"resolvefield":          cfg.ResolveField,
		"language":              cfg.Language,
		"expectterms":           cfg.ExpectTerms,
		"deduplicatesets":       cfg.DeduplicateSets,
		"cache":                 cfg.Cache,
		"cachemisses":           cfg.CacheMisses,
		"metricsaddr":           cfg.MetricsAddr,
	}
}
