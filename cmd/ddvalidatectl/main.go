// Command ddvalidatectl is a file-backed harness for the ddvalidate
// library: it loads a fixture dictionary, drives the validator against
// it from the command line, and demonstrates the update-compat checker
// and the metrics sink. It is ambient tooling around the core library,
// not a transport layer — the library itself has no HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skofic/ddvalidate"
	"github.com/skofic/ddvalidate/internal/fixture"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		runValidate(os.Args[2:])
	case "compat":
		runCompat(os.Args[2:])
	case "watch":
		runWatch(os.Args[2:])
	case "help", "-h", "-help", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "ddvalidatectl: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`ddvalidatectl - data-dictionary validation engine CLI

USAGE:
    ddvalidatectl <command> [flags]

COMMANDS:
    validate    Validate a value or object against a fixture dictionary
    compat      Check two term versions in a fixture for update-compatibility
    watch       Watch a fixture file, reloading it on change
    help        Show this message`)
}

func buildOptions(cfg Config) ddvalidate.Options {
	opts := ddvalidate.DefaultOptions()
	opts.ExpectType = cfg.ExpectType
	opts.Resolve = cfg.Resolve
	opts.AllowDefaultNamespace = cfg.AllowDefaultNamespace
	opts.NamespaceDescriptor = cfg.NamespaceDescriptor
	if cfg.ResolveField != "" {
		opts.ResolveField = cfg.ResolveField
	}
	opts.Language = cfg.Language
	opts.ExpectTerms = cfg.ExpectTerms
	opts.DeduplicateSets = cfg.DeduplicateSets
	opts.Cache = cfg.Cache
	opts.CacheMisses = cfg.CacheMisses
	return opts
}

func newMetrics(cfg Config) *ddvalidate.Metrics {
	if cfg.MetricsAddr == "" {
		return nil
	}
	metrics := ddvalidate.NewMetrics()
	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		log.Printf("ddvalidatectl: metrics registration failed: %v", err)
		return metrics
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			log.Printf("ddvalidatectl: metrics server stopped: %v", err)
		}
	}()
	log.Printf("ddvalidatectl: metrics listening on %s/metrics", cfg.MetricsAddr)
	return metrics
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "", "optional config file (yaml or json)")
	dict := fs.String("dict", "", "fixture dictionary file (overrides config)")
	descriptor := fs.String("descriptor", "", "descriptor key for mode D/Z validation")
	valueFlag := fs.String("value", "", "JSON-encoded value to validate")
	zipped := fs.Bool("zipped", false, "treat -value as a JSON array validated element-wise (mode Z)")
	object := fs.Bool("object", false, "validate -value as an unqualified object (mode O)")
	candidates := fs.String("candidates", "", "comma-separated candidate structure keys for mode O")
	_ = fs.Parse(args)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("ddvalidatectl: %v", err)
	}
	if *dict != "" {
		cfg.Dictionary = *dict
	}
	if cfg.Dictionary == "" {
		log.Fatal("ddvalidatectl: no fixture dictionary given (-dict or config)")
	}

	repo, err := fixture.Load(cfg.Dictionary)
	if err != nil {
		log.Fatalf("ddvalidatectl: %v", err)
	}
	metrics := newMetrics(cfg)
	cache := ddvalidate.NewTermCache(repo)
	validator := ddvalidate.NewValidator(cache).WithMetrics(metrics)
	opts := buildOptions(cfg)

	var value any
	if *valueFlag != "" {
		if err := json.Unmarshal([]byte(*valueFlag), &value); err != nil {
			log.Fatalf("ddvalidatectl: parsing -value: %v", err)
		}
	}

	ctx := context.Background()

	switch {
	case *object:
		obj, ok := value.(map[string]any)
		if !ok {
			log.Fatal("ddvalidatectl: -object requires -value to be a JSON object")
		}
		report, err := validator.ValidateObject(ctx, obj, splitCandidates(*candidates), opts)
		if err != nil {
			log.Fatalf("ddvalidatectl: %v", err)
		}
		printJSON(report)

	case *zipped:
		values, ok := value.([]any)
		if !ok {
			log.Fatal("ddvalidatectl: -zipped requires -value to be a JSON array")
		}
		if *descriptor == "" {
			log.Fatal("ddvalidatectl: -zipped requires -descriptor")
		}
		batch, err := validator.ValidateZipped(ctx, *descriptor, values, opts)
		if err != nil {
			log.Fatalf("ddvalidatectl: %v", err)
		}
		batch.RunID = uuid.NewString()
		printJSON(batch)

	default:
		if *descriptor == "" {
			log.Fatal("ddvalidatectl: -descriptor is required unless -object is set")
		}
		report, err := validator.ValidateValue(ctx, *descriptor, value, opts)
		if err != nil {
			log.Fatalf("ddvalidatectl: %v", err)
		}
		printJSON(report)
	}
}

func runCompat(args []string) {
	fs := flag.NewFlagSet("compat", flag.ExitOnError)
	configPath := fs.String("config", "", "optional config file (yaml or json)")
	dict := fs.String("dict", "", "fixture dictionary file (overrides config)")
	original := fs.String("original", "", "key of the original term version")
	updated := fs.String("updated", "", "key of the updated term version")
	_ = fs.Parse(args)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("ddvalidatectl: %v", err)
	}
	if *dict != "" {
		cfg.Dictionary = *dict
	}
	if cfg.Dictionary == "" || *original == "" || *updated == "" {
		log.Fatal("ddvalidatectl: compat requires -dict, -original and -updated")
	}

	repo, err := fixture.Load(cfg.Dictionary)
	if err != nil {
		log.Fatalf("ddvalidatectl: %v", err)
	}
	metrics := newMetrics(cfg)
	ctx := context.Background()

	origTerm, err := repo.GetTerm(ctx, *original)
	if err != nil {
		log.Fatalf("ddvalidatectl: original term: %v", err)
	}
	updTerm, err := repo.GetTerm(ctx, *updated)
	if err != nil {
		log.Fatalf("ddvalidatectl: updated term: %v", err)
	}

	result := ddvalidate.CompareTerms(origTerm, updTerm)
	metrics.ObserveCompat(result)
	printJSON(result)
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", "", "optional config file (yaml or json)")
	dict := fs.String("dict", "", "fixture dictionary file (overrides config)")
	_ = fs.Parse(args)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("ddvalidatectl: %v", err)
	}
	if *dict != "" {
		cfg.Dictionary = *dict
	}
	if cfg.Dictionary == "" {
		log.Fatal("ddvalidatectl: watch requires -dict or config")
	}

	load := func() *fixture.Dictionary {
		repo, err := fixture.Load(cfg.Dictionary)
		if err != nil {
			log.Printf("ddvalidatectl: reload failed: %v", err)
			return nil
		}
		log.Printf("ddvalidatectl: loaded %d terms from %s", repo.Len(), cfg.Dictionary)
		return repo
	}
	load()

	stop, err := watchDictionary(cfg.Dictionary, func() {
		load()
	}, func(err error) {
		log.Printf("ddvalidatectl: watch error: %v", err)
	})
	if err != nil {
		log.Fatalf("ddvalidatectl: %v", err)
	}
	defer stop()

	log.Printf("ddvalidatectl: watching %s, press Ctrl+C to exit", cfg.Dictionary)
	select {}
}

func splitCandidates(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' {
			if i > start {
				out = append(out, raw[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("ddvalidatectl: encoding output: %v", err)
	}
	fmt.Println(string(data))
}
