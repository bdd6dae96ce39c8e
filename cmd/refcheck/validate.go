package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/matsen/refcheck/internal/config"
	"github.com/matsen/refcheck/internal/dblp"
	"github.com/matsen/refcheck/internal/reference"
	"github.com/matsen/refcheck/internal/report"
	"github.com/matsen/refcheck/internal/storage"
	"github.com/matsen/refcheck/internal/tei"
	"github.com/matsen/refcheck/internal/validate"
	"github.com/spf13/cobra"
)

var validateFlags struct {
	configPath string
	threshold  float64
	delay      time.Duration
	retries    int
	maxRefs    int
	workers    int
	cachePath  string
	source     string
}

var validateCmd = &cobra.Command{
	Use:   "validate <refs.json|refs.tei.xml>",
	Short: "Validate reference author lists against DBLP",
	Long: `Validate the author attributions of a reference list against DBLP.

The input is either a GROBID TEI bibliography (.xml/.tei) or a JSON
array of {source_id, title, authors} objects. Each reference is matched
to a DBLP record by title similarity; matched author lists are compared
position by position and every discrepancy is classified.

The report lists mismatches first (in citation order, extraction
artifacts last), then matches, then an analysis summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.configPath, "config", "", "Path to YAML config file")
	f.Float64Var(&validateFlags.threshold, "threshold", config.DefaultThreshold, "Minimum title similarity to accept a lookup candidate")
	f.DurationVar(&validateFlags.delay, "delay", config.DefaultDelay, "Minimum spacing between DBLP requests")
	f.IntVar(&validateFlags.retries, "retries", config.DefaultRetryLimit, "Retries after a transient lookup failure")
	f.IntVar(&validateFlags.maxRefs, "max", 0, "Validate at most N references (0 = all)")
	f.IntVar(&validateFlags.workers, "workers", config.DefaultWorkers, "Concurrent lookup workers")
	f.StringVar(&validateFlags.cachePath, "cache", "", "SQLite lookup cache path (empty disables caching)")
	f.StringVar(&validateFlags.source, "source", "", "Source document label for the report (defaults to the input path)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	// Load .env if present (for REFCHECK_DBLP_URL overrides)
	_ = godotenv.Load()

	cfg := resolveConfig(cmd)

	refs, err := loadReferences(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading references: %v", err)
	}
	if len(refs) == 0 {
		exitWithError(ExitDataError, "%s contains no references", args[0])
	}

	opts := []dblp.ClientOption{dblp.WithDelay(time.Duration(cfg.RequestDelay))}
	if base := os.Getenv("REFCHECK_DBLP_URL"); base != "" {
		opts = append(opts, dblp.WithBaseURL(base))
	}

	var cache *storage.Cache
	var lookup validate.TitleLookup = dblp.NewClient(opts...)
	if cfg.CachePath != "" {
		cache, err = storage.Open(cfg.CachePath)
		if err != nil {
			exitWithError(ExitLookupError, "opening lookup cache: %v", err)
		}
		defer cache.Close()
		lookup = &validate.CachedLookup{Lookup: lookup, Cache: cache}
	}

	runner := validate.NewRunner(lookup, validate.RunConfig{
		Threshold:     cfg.TitleSimilarityThreshold,
		Workers:       cfg.Workers,
		RetryLimit:    cfg.RetryLimit,
		MaxReferences: cfg.MaxReferences,
	})
	runner.SetProgress(func(done, total int) {
		fmt.Fprintf(os.Stderr, "\rvalidated %d/%d", done, total)
	})

	results := runner.Run(cmd.Context(), refs)
	fmt.Fprintln(os.Stderr)

	if cache != nil {
		if n, err := cache.Count(); err == nil {
			fmt.Fprintf(os.Stderr, "lookup cache now holds %d queries\n", n)
		}
	}

	source := validateFlags.source
	if source == "" {
		source = args[0]
	}
	rep := report.Build(source, results)

	if humanOutput {
		printReportHuman(rep)
		return nil
	}
	return outputJSON(rep)
}

// resolveConfig merges the config file (if any) with explicit flag
// overrides. Flags win over file values.
func resolveConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Default()
	if validateFlags.configPath != "" {
		loaded, err := config.Load(validateFlags.configPath)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.TitleSimilarityThreshold = validateFlags.threshold
	}
	if flags.Changed("delay") {
		cfg.RequestDelay = config.Duration(validateFlags.delay)
	}
	if flags.Changed("retries") {
		cfg.RetryLimit = validateFlags.retries
	}
	if flags.Changed("max") {
		cfg.MaxReferences = validateFlags.maxRefs
	}
	if flags.Changed("workers") {
		cfg.Workers = validateFlags.workers
	}
	if flags.Changed("cache") {
		cfg.CachePath = validateFlags.cachePath
	}

	if cfg.TitleSimilarityThreshold <= 0 || cfg.TitleSimilarityThreshold > 1 {
		exitWithError(ExitConfigError, "threshold must be in (0, 1], got %v", cfg.TitleSimilarityThreshold)
	}
	if cfg.Workers < 1 {
		exitWithError(ExitConfigError, "workers must be at least 1, got %d", cfg.Workers)
	}
	return cfg
}

// loadReferences reads a reference list from either a GROBID TEI file
// or a JSON array.
func loadReferences(path string) ([]reference.Reference, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xml" || ext == ".tei" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		entries, err := tei.ParseReferences(f)
		if err != nil {
			return nil, err
		}
		refs := make([]reference.Reference, len(entries))
		for i, e := range entries {
			refs[i] = e.Reference()
		}
		return refs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var refs []reference.Reference
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return refs, nil
}

func printReportHuman(rep report.Report) {
	a := rep.Analysis
	outputHuman("Validated %d references: %d matched, %d mismatched\n",
		a.TotalReferences, a.MatchCount, a.MismatchCount)
	if a.NoMatchCount > 0 {
		outputHuman("  %d had no DBLP match above the similarity threshold\n", a.NoMatchCount)
	}
	if a.LookupFailureCount > 0 {
		outputHuman("  %d could not be looked up (lookup failures)\n", a.LookupFailureCount)
	}

	for _, res := range rep.Mismatches {
		outputHuman("\n[%s] %s\n", res.Kind, truncateString(res.Reference.Title, listTitleMaxLen))
		if res.FailureNote != "" {
			outputHuman("  %s\n", res.FailureNote)
			continue
		}
		for _, j := range res.PerAuthor {
			if j.Kind == reference.KindMatch {
				continue
			}
			outputHuman("  author %d: cited %q, canonical %q (%s)\n",
				j.Position+1, j.RefName, j.CanonicalName, j.Kind)
		}
	}

	for _, b := range a.CommonMistakes {
		outputHuman("\n%s (%d): %s\n", b.Type, b.Count, b.Description)
	}
}
