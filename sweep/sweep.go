// Package sweep runs the benchmark matrix and assembles the per-reader
// results table.
package sweep

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weiihann/skipbench/harness"
)

// ReaderCounts is the fixed set of reader thread counts measured, in
// ascending order.
var ReaderCounts = []int{1, 2, 4, 8, 16}

// Config holds the sweep matrix. An empty ReaderCounts falls back to
// the default set.
type Config struct {
	ReaderCounts []int
}

// CellError identifies the sweep cell whose measurement failed.
type CellError struct {
	Variant harness.Variant
	Readers int
	Err     error
}

func (e *CellError) Error() string {
	return fmt.Sprintf(
		"sweep cell (%s, %d readers): %v", e.Variant, e.Readers, e.Err,
	)
}

func (e *CellError) Unwrap() error { return e.Err }

// Run drives the full sweep: for each reader count, each variant is
// measured and parsed, and the six metrics merged into that reader
// count's row. A row is appended only once every variant has produced
// a result for it. The first failing cell aborts the whole sweep; a
// benchmark table with holes is worse than none.
func Run(
	ctx context.Context,
	logger *slog.Logger,
	runner *harness.Runner,
	cfg Config,
) (*Table, error) {
	readerCounts := cfg.ReaderCounts
	if len(readerCounts) == 0 {
		readerCounts = ReaderCounts
	}

	table := &Table{}

	for _, readers := range readerCounts {
		row := Row{Readers: readers}

		for _, variant := range harness.Variants() {
			output, err := runner.Run(ctx, variant, readers)
			if err != nil {
				return nil, &CellError{
					Variant: variant, Readers: readers, Err: err,
				}
			}

			result, err := harness.ParseReport(output)
			if err != nil {
				return nil, &CellError{
					Variant: variant, Readers: readers, Err: err,
				}
			}

			row.Set(variant, result)
		}

		table.Rows = append(table.Rows, row)

		logger.InfoContext(ctx, "row complete", slog.Int("readers", readers))
	}

	return table, nil
}
