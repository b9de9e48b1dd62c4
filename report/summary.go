// Package report summarizes persisted sweep results and renders the
// throughput comparison charts.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/weiihann/skipbench/harness"
	"github.com/weiihann/skipbench/sweep"
)

// ErrZeroBaseline reports that a mutex throughput mean is exactly zero,
// which makes the relative improvement undefined.
var ErrZeroBaseline = errors.New("mutex throughput mean is zero")

// Summary holds the per-variant metric means across all reader counts
// and the relative throughput change of atomic over mutex.
type Summary struct {
	MutexMeans  harness.BenchmarkResult
	AtomicMeans harness.BenchmarkResult

	ReadImprovementPct  float64
	WriteImprovementPct float64
}

// Summarize computes the arithmetic mean of every metric column and the
// relative improvement of the atomic variant over the mutex baseline
// for both throughput kinds.
func Summarize(table *sweep.Table) (*Summary, error) {
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("no rows to summarize")
	}

	s := &Summary{
		MutexMeans:  meanResult(table.Rows, harness.VariantMutex),
		AtomicMeans: meanResult(table.Rows, harness.VariantAtomic),
	}

	if s.MutexMeans.ReadThroughput == 0 {
		return nil, fmt.Errorf("read throughput: %w", ErrZeroBaseline)
	}
	if s.MutexMeans.WriteThroughput == 0 {
		return nil, fmt.Errorf("write throughput: %w", ErrZeroBaseline)
	}

	s.ReadImprovementPct =
		(s.AtomicMeans.ReadThroughput/s.MutexMeans.ReadThroughput - 1) * 100
	s.WriteImprovementPct =
		(s.AtomicMeans.WriteThroughput/s.MutexMeans.WriteThroughput - 1) * 100

	return s, nil
}

func meanResult(rows []sweep.Row, v harness.Variant) harness.BenchmarkResult {
	var sum harness.BenchmarkResult

	for i := range rows {
		res := rows[i].Result(v)
		sum.ReadThroughput += res.ReadThroughput
		sum.WriteThroughput += res.WriteThroughput
		sum.ReadLatencyP50 += res.ReadLatencyP50
		sum.ReadLatencyP99 += res.ReadLatencyP99
		sum.WriteLatencyP50 += res.WriteLatencyP50
		sum.WriteLatencyP99 += res.WriteLatencyP99
	}

	n := float64(len(rows))

	return harness.BenchmarkResult{
		ReadThroughput:  sum.ReadThroughput / n,
		WriteThroughput: sum.WriteThroughput / n,
		ReadLatencyP50:  sum.ReadLatencyP50 / n,
		ReadLatencyP99:  sum.ReadLatencyP99 / n,
		WriteLatencyP50: sum.WriteLatencyP50 / n,
		WriteLatencyP99: sum.WriteLatencyP99 / n,
	}
}

// WriteText prints the mean throughput comparison and the improvement
// percentages.
func WriteText(w io.Writer, s *Summary) {
	fmt.Fprintln(w, "Average throughput comparison:")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Read Throughput:")
	fmt.Fprintf(w, "Mutex: %.2f ops/sec\n", s.MutexMeans.ReadThroughput)
	fmt.Fprintf(w, "Atomic: %.2f ops/sec\n", s.AtomicMeans.ReadThroughput)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Write Throughput:")
	fmt.Fprintf(w, "Mutex: %.2f ops/sec\n", s.MutexMeans.WriteThroughput)
	fmt.Fprintf(w, "Atomic: %.2f ops/sec\n", s.AtomicMeans.WriteThroughput)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Throughput improvement of Atomic over Mutex:")
	fmt.Fprintf(w, "Read: %.1f%%\n", s.ReadImprovementPct)
	fmt.Fprintf(w, "Write: %.1f%%\n", s.WriteImprovementPct)
}
