// Package main provides the CLI entry point for skipbench, a sweep
// driver that compares the mutex and atomic skiplist implementations
// under the external concurrent load test.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/weiihann/skipbench/harness"
	"github.com/weiihann/skipbench/report"
	"github.com/weiihann/skipbench/sweep"
)

const (
	defaultResultsDir = "results"
	csvName           = "skiplist_benchmarks.csv"
	chartName         = "throughput_comparison.png"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "skipbench",
		Short: "Skiplist synchronization strategy benchmark driver",
		Long: `Skipbench sweeps the concurrent skiplist load test across reader
counts for both the mutex-based and the atomic single-writer implementations,
collects the reported metrics into a CSV table, and summarizes the comparison.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newSummaryCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		projectRoot string
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark sweep and persist the results table",
		Long: `Locate the concurrent load test binary, run it for every
(variant, reader count) combination, and write the aggregated metrics to a
CSV table. Any failing cell aborts the sweep and nothing is persisted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd.Context(), logger, projectRoot, outDir)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&projectRoot, "project-root", ".",
		"Directory containing the load test build output directories")
	flags.StringVar(&outDir, "out-dir", defaultResultsDir,
		"Directory for the results CSV")

	return cmd
}

func newSummaryCmd(logger *slog.Logger) *cobra.Command {
	var (
		csvPath   string
		chartPath string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize persisted results and render throughput charts",
		Long: `Load a previously persisted results table, print the mean
throughput comparison of atomic over mutex, and render the side-by-side
throughput charts.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return summarize(logger, csvPath, chartPath)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&csvPath, "csv",
		filepath.Join(defaultResultsDir, csvName),
		"Path to the persisted results table")
	flags.StringVar(&chartPath, "chart",
		filepath.Join(defaultResultsDir, chartName),
		"Path for the rendered throughput chart")

	return cmd
}

func runSweep(
	ctx context.Context,
	logger *slog.Logger,
	projectRoot, outDir string,
) error {
	binPath, err := harness.Locate(projectRoot)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create results dir %s: %w", outDir, err)
	}

	logger.InfoContext(ctx, "starting sweep",
		slog.String("binary", binPath),
		slog.Any("reader_counts", sweep.ReaderCounts),
	)

	runner := harness.NewRunner(binPath, logger)

	table, err := sweep.Run(ctx, logger, runner, sweep.Config{
		ReaderCounts: sweep.ReaderCounts,
	})
	if err != nil {
		return err
	}

	outPath := filepath.Join(outDir, csvName)
	if err := table.WriteCSV(outPath); err != nil {
		return fmt.Errorf("persist results: %w", err)
	}

	logger.InfoContext(ctx, "sweep complete",
		slog.String("output", outPath),
	)

	return nil
}

func summarize(logger *slog.Logger, csvPath, chartPath string) error {
	table, err := sweep.LoadCSV(csvPath)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}

	s, err := report.Summarize(table)
	if err != nil {
		return err
	}

	report.WriteText(os.Stdout, s)

	if err := report.RenderThroughputCharts(table, chartPath); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	logger.Info("chart written", slog.String("path", chartPath))

	return nil
}
