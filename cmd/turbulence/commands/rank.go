// Package commands implements CLI command handlers for turbulence.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/turbulence-sh/turbulence/internal/config"
	"github.com/turbulence-sh/turbulence/internal/discover"
	"github.com/turbulence-sh/turbulence/internal/gitx"
	"github.com/turbulence-sh/turbulence/internal/measure"
	"github.com/turbulence-sh/turbulence/internal/observability"
	"github.com/turbulence-sh/turbulence/internal/pipeline"
	"github.com/turbulence-sh/turbulence/internal/rank"
	"github.com/turbulence-sh/turbulence/internal/report"
)

// RankCommand holds configuration and flag state for the rank command.
type RankCommand struct {
	configPath string
	path       string

	dirs       []string
	extensions []string
	ignore     []string

	since string

	minScore float64
	limit    int

	strategy    string
	workers     int
	taskTimeout time.Duration

	format      string
	destination string

	metricsListen string

	verbose bool
	quiet   bool
	noColor bool
}

// NewRankCommand creates the rank command.
func NewRankCommand() *cobra.Command {
	rc := &RankCommand{}

	cmd := &cobra.Command{
		Use:   "rank [path]",
		Short: "Measure and rank the files of a repository",
		Long: "Rank source files by a composite score built from commit churn\n" +
			"and structural complexity.",
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVarP(&rc.configPath, "config", "c", "", "Config file path (default: .turbulence.yaml)")
	cmd.Flags().StringVarP(&rc.path, "path", "p", ".", "Repository path to analyze")

	cmd.Flags().StringSliceVar(&rc.dirs, "dirs", nil, "Directories to scan, relative to the repository root")
	cmd.Flags().StringSliceVar(&rc.extensions, "extensions", nil, "File extensions to measure (default: all supported)")
	cmd.Flags().StringSliceVar(&rc.ignore, "ignore", nil, "Glob patterns for files to skip")

	cmd.Flags().StringVar(&rc.since, "since", "", "Count commits reachable from HEAD but not from this revision")

	cmd.Flags().Float64Var(&rc.minScore, "min-score", config.DefaultMinScore, "Drop results scoring below this value")
	cmd.Flags().IntVar(&rc.limit, "limit", config.DefaultLimit, "Maximum results to report (0 = no limit)")

	cmd.Flags().StringVar(&rc.strategy, "strategy", config.DefaultStrategy, "Scheduling strategy: parallel, sequential")
	cmd.Flags().IntVar(&rc.workers, "workers", config.DefaultWorkers, "Number of parallel workers (0 = use CPU count)")
	cmd.Flags().DurationVar(&rc.taskTimeout, "task-timeout", 0, "Per-file measurement timeout (0 = no timeout)")

	cmd.Flags().StringVar(&rc.format, "format", config.DefaultFormat, "Output format: text, json, yaml, html")
	cmd.Flags().StringVarP(&rc.destination, "output", "o", "", "Write the report to this file instead of stdout")

	cmd.Flags().StringVar(&rc.metricsListen, "metrics-listen", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	cmd.Flags().BoolVarP(&rc.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVarP(&rc.quiet, "quiet", "q", false, "Disable progress output")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored text output")

	return cmd
}

func (rc *RankCommand) run(cmd *cobra.Command, args []string) error {
	rc.setupLogging(cmd.ErrOrStderr())

	repoPath := rc.resolvePath(args)

	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return err
	}

	rc.applyFlagOverrides(cmd, cfg)

	if err = cfg.Validate(); err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	strategy, err := pipeline.ParseStrategy(cfg.Pipeline.Strategy)
	if err != nil {
		return err
	}

	repo, err := gitx.Open(repoPath)
	if err != nil {
		return err
	}
	defer repo.Free()

	files, err := rc.discoverFiles(repoPath, cfg)
	if err != nil {
		return err
	}

	slog.Debug("discovery completed", "files", len(files))

	churn := measure.NewChurn(repo, cfg.Churn.Since)
	complexity := measure.NewComplexity(repoPath)

	tasks, err := pipeline.BuildTasks(files, churn, complexity)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	runMetrics, err := rc.startMetrics(ctx, cfg)
	if err != nil {
		return err
	}

	workers := strategy.Workers(cfg.Pipeline.Workers)

	runner := &pipeline.Runner{
		Workers:     workers,
		TaskTimeout: cfg.Pipeline.TaskTimeout,
	}

	var progress *report.Progress
	if !rc.quiet {
		progress = report.NewProgress(cmd.ErrOrStderr(), len(tasks))
		runner.Observer = progress.Observer()
	}

	start := time.Now()
	outcomes := runner.Run(ctx, tasks)
	elapsed := time.Since(start)

	if progress != nil {
		progress.Finish()
	}

	for _, outcome := range outcomes {
		if outcome.Measurement.Failed() {
			slog.Warn("measurement failed", "file", outcome.File.Path, "error", outcome.Measurement.Err)
		}
	}

	collection := rank.Aggregate(outcomes, rank.Options{
		MinScore: cfg.Rank.MinScore,
		Limit:    cfg.Rank.Limit,
	})

	runMetrics.RecordRun(ctx, observability.RunStats{
		Measured: collection.Measured,
		Failures: collection.Failures,
		Strategy: strategy.String(),
		Elapsed:  elapsed,
	})

	result := report.Report{
		Collection: collection,
		Summary: report.Summary{
			Scanned:  len(files),
			Measured: collection.Measured,
			Failures: collection.Failures,
			Elapsed:  elapsed,
			Strategy: strategy.String(),
			Workers:  workers,
		},
	}

	return rc.render(cmd.OutOrStdout(), format, result, cfg.Output.Destination)
}

// setupLogging configures the default logger on stderr. Debug level is
// gated behind --verbose so normal runs stay quiet.
func (rc *RankCommand) setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if rc.verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (rc *RankCommand) resolvePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return rc.path
}

// applyFlagOverrides lets explicitly-set flags win over file and
// environment configuration.
func (rc *RankCommand) applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("dirs") {
		cfg.Scan.Dirs = rc.dirs
	}

	if flags.Changed("extensions") {
		cfg.Scan.Extensions = rc.extensions
	}

	if flags.Changed("ignore") {
		cfg.Scan.Ignore = rc.ignore
	}

	if flags.Changed("since") {
		cfg.Churn.Since = rc.since
	}

	if flags.Changed("min-score") {
		cfg.Rank.MinScore = rc.minScore
	}

	if flags.Changed("limit") {
		cfg.Rank.Limit = rc.limit
	}

	if flags.Changed("strategy") {
		cfg.Pipeline.Strategy = rc.strategy
	}

	if flags.Changed("workers") {
		cfg.Pipeline.Workers = rc.workers
	}

	if flags.Changed("task-timeout") {
		cfg.Pipeline.TaskTimeout = rc.taskTimeout
	}

	if flags.Changed("format") {
		cfg.Output.Format = rc.format
	}

	if flags.Changed("output") {
		cfg.Output.Destination = rc.destination
	}

	if flags.Changed("metrics-listen") {
		cfg.Metrics.Listen = rc.metricsListen
	}
}

// discoverFiles resolves the configured scan directories against the
// repository root and enumerates candidate files.
func (rc *RankCommand) discoverFiles(repoPath string, cfg *config.Config) ([]pipeline.FileRef, error) {
	roots := make([]string, len(cfg.Scan.Dirs))
	for i, dir := range cfg.Scan.Dirs {
		roots[i] = filepath.Join(repoPath, dir)
	}

	return discover.Discover(roots, discover.Options{
		RelativeTo: repoPath,
		Extensions: cfg.Scan.Extensions,
		Ignore:     cfg.Scan.Ignore,
	})
}

// startMetrics wires the optional Prometheus endpoint. A nil RunMetrics
// is returned when metrics are disabled; recording on it is a no-op.
func (rc *RankCommand) startMetrics(ctx context.Context, cfg *config.Config) (*observability.RunMetrics, error) {
	if cfg.Metrics.Listen == "" {
		return nil, nil
	}

	meter, handler, err := observability.PrometheusMeter()
	if err != nil {
		return nil, err
	}

	runMetrics, err := observability.NewRunMetrics(meter)
	if err != nil {
		return nil, err
	}

	go func() {
		if serveErr := observability.ServeMetrics(ctx, cfg.Metrics.Listen, handler); serveErr != nil {
			slog.Warn("metrics listener stopped", "error", serveErr)
		}
	}()

	return runMetrics, nil
}

// render writes the report to the configured destination, defaulting to
// standard output.
func (rc *RankCommand) render(stdout io.Writer, format report.Format, result report.Report, destination string) error {
	out := stdout

	if destination != "" && destination != "-" {
		file, err := os.Create(destination)
		if err != nil {
			return fmt.Errorf("create output %s: %w", destination, err)
		}
		defer file.Close()

		out = file
	}

	if err := report.Render(out, format, result, rc.noColor); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	return nil
}
