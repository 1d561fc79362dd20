package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/doccomp/internal/cache"
	"github.com/harrison/doccomp/internal/compare"
	"github.com/harrison/doccomp/internal/config"
	"github.com/harrison/doccomp/internal/diffengine"
	"github.com/harrison/doccomp/internal/extract"
	"github.com/harrison/doccomp/internal/logger"
	"github.com/harrison/doccomp/internal/report"
	"github.com/harrison/doccomp/internal/scorer"
)

// addCompareFlags registers the flags shared by every command that runs a
// comparison.
func addCompareFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .doccomp/config.yaml)")
	cmd.Flags().String("mode", "", "Diff mode: unified or context")
	cmd.Flags().Int("context", -1, "Unchanged lines kept around changes (-1 = use config)")
	cmd.Flags().Float64("threshold", -1, "Minimum line similarity for replace pairing (-1 = use config)")
	cmd.Flags().StringSlice("scorers", nil, "Similarity algorithms to run (levenshtein, jaro_winkler, token_overlap)")
	cmd.Flags().Bool("ignore-case", false, "Compare lines case-insensitively")
	cmd.Flags().Bool("collapse-whitespace", false, "Collapse runs of whitespace inside lines")
	cmd.Flags().Bool("no-trim", false, "Keep leading and trailing whitespace significant")
	cmd.Flags().Bool("no-cache", false, "Bypass the result cache even when enabled")
}

// loadConfigForCommand loads configuration, applying any flag overrides the
// user set explicitly.
func loadConfigForCommand(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Diff.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("context") {
		cfg.Diff.Context, _ = flags.GetInt("context")
	}
	if flags.Changed("threshold") {
		cfg.Diff.ReplaceThreshold, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("scorers") {
		cfg.Scorers, _ = flags.GetStringSlice("scorers")
	}
	if flags.Changed("ignore-case") {
		cfg.Normalize.CaseInsensitive, _ = flags.GetBool("ignore-case")
	}
	if flags.Changed("collapse-whitespace") {
		cfg.Normalize.CollapseWhitespace, _ = flags.GetBool("collapse-whitespace")
	}
	if flags.Changed("no-trim") {
		noTrim, _ := flags.GetBool("no-trim")
		cfg.Normalize.TrimWhitespace = !noTrim
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// compareOptions converts loaded configuration into engine options.
func compareOptions(cfg *config.Config) compare.Options {
	algorithms := make([]scorer.Algorithm, len(cfg.Scorers))
	for i, s := range cfg.Scorers {
		algorithms[i] = scorer.Algorithm(s)
	}
	// Config values are always explicit, so zero means zero, not unset.
	ctxLines := cfg.Diff.Context
	if ctxLines == 0 {
		ctxLines = diffengine.ContextNone
	}
	threshold := cfg.Diff.ReplaceThreshold
	if threshold == 0 {
		threshold = diffengine.ReplaceThresholdAny
	}
	return compare.Options{
		Normalize:        cfg.Normalize,
		Mode:             diffengine.Mode(cfg.Diff.Mode),
		Context:          ctxLines,
		ReplaceThreshold: threshold,
		Algorithms:       algorithms,
		MaxLines:         cfg.Limits.MaxLines,
		MaxChars:         cfg.Limits.MaxChars,
	}
}

// runComparison reads both files and compares them, consulting the result
// cache when enabled. It returns the result together with report metadata
// for the two sources.
func runComparison(ctx context.Context, cmd *cobra.Command, cfg *config.Config, leftPath, rightPath string) (*compare.Result, report.Metadata, error) {
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	left, err := extract.ReadFile(leftPath)
	if err != nil {
		return nil, report.Metadata{}, err
	}
	right, err := extract.ReadFile(rightPath)
	if err != nil {
		return nil, report.Metadata{}, err
	}

	meta := report.Metadata{
		LeftName:    left.Name,
		RightName:   right.Name,
		LeftFormat:  left.Format,
		RightFormat: right.Format,
		GeneratedAt: time.Now(),
	}

	opts := compareOptions(cfg)

	noCache, _ := cmd.Flags().GetBool("no-cache")
	useCache := cfg.Cache.Enabled && !noCache

	var store *cache.Cache
	var fingerprint string
	if useCache {
		store, err = cache.New(cfg.Cache.Dir)
		if err != nil {
			return nil, report.Metadata{}, fmt.Errorf("open cache: %w", err)
		}
		fingerprint = cache.Fingerprint(left.Text, right.Text, opts)
		if cached, ok, err := store.Get(fingerprint); err != nil {
			log.Warnf("cache lookup failed: %v", err)
		} else if ok {
			log.Debugf("cache hit for %s", fingerprint[:12])
			return cached, meta, nil
		}
	}

	res, err := compare.Compare(ctx, left.Text, right.Text, opts)
	if err != nil {
		return nil, report.Metadata{}, err
	}

	if useCache {
		if err := store.Put(fingerprint, res); err != nil {
			log.Warnf("cache write failed: %v", err)
		}
	}
	return res, meta, nil
}
