package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/nxscript/analyzer"
	"github.com/viant/nxscript/config"
	"github.com/viant/nxscript/store"
	"log"
	"time"
)

type analyzeOptions struct {
	configPath string
	out        string
	format     string
}

func newAnalyzeCmd(fs afs.Service) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <schema.json|dir>...",
		Short: "Analyze database schemas and write results as YAML or SQLite",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), fs, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to YAML or TOML config file")
	cmd.Flags().StringVar(&opts.out, "out", "", "output URL (yaml) or DSN (sqlite), overrides config")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: yaml|sqlite, overrides config")
	return cmd
}

func runAnalyze(ctx context.Context, fs afs.Service, opts *analyzeOptions, URLs []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.out != "" {
		if cfg.Output.Format == config.FormatSQLite {
			cfg.Output.DSN = opts.out
		} else {
			cfg.Output.URL = opts.out
		}
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	pattern, err := cfg.Pattern()
	if err != nil {
		return err
	}
	options := []analyzer.Option{
		analyzer.WithFs(fs),
		analyzer.WithWorkers(cfg.Workers),
		analyzer.WithIndent(cfg.Indent),
		analyzer.WithCacheSize(cfg.CacheSize),
		analyzer.WithRefPattern(pattern),
	}
	if cfg.Output.Format == config.FormatYAML {
		options = append(options, analyzer.WithExporter(analyzer.NewYAMLExporter(fs, cfg.Output.URL)))
	}
	srv, err := analyzer.New(options...)
	if err != nil {
		return err
	}

	start := time.Now()
	log.Printf("analyzing %d location(s), ref pattern %v", len(URLs), pattern.Version)
	results, stats, err := srv.AnalyzeURL(ctx, URLs...)
	if err != nil {
		return err
	}
	for _, result := range results {
		log.Printf("  %s (%s): %d scripts, %d dependencies, %d relationships, %d unresolved, %d warnings",
			result.DatabaseName, result.DatabaseID, result.Stats.Scripts, result.Stats.Dependencies,
			result.Stats.Relationships, result.Stats.Unresolved, len(result.Warnings))
	}
	if cfg.Output.Format == config.FormatSQLite {
		if err = saveResults(ctx, cfg.Output.DSN, results); err != nil {
			return err
		}
	}
	log.Printf("done: %d databases, %d tables, %d fields, %d scripts, %d dependencies, %d relationships in %v",
		stats.Databases, stats.Tables, stats.Fields, stats.Scripts, stats.Dependencies, stats.Relationships,
		time.Since(start).Round(time.Millisecond))
	return nil
}

func saveResults(ctx context.Context, dsn string, results []*analyzer.DatabaseResult) error {
	db, err := store.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	if err = db.Init(ctx); err != nil {
		return err
	}
	for _, result := range results {
		runID, err := db.Save(ctx, result)
		if err != nil {
			return fmt.Errorf("failed to save %v: %w", result.DatabaseID, err)
		}
		log.Printf("  saved %s as run %s", result.DatabaseID, runID)
	}
	return nil
}
