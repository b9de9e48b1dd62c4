package report

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/weiihann/skipbench/harness"
	"github.com/weiihann/skipbench/sweep"
)

func tableWithThroughputs(cells [][4]float64) *sweep.Table {
	t := &sweep.Table{}

	for i, c := range cells {
		t.Rows = append(t.Rows, sweep.Row{
			Readers: 1 << i,
			Mutex: harness.BenchmarkResult{
				ReadThroughput:  c[0],
				WriteThroughput: c[1],
				ReadLatencyP50:  1.0,
				ReadLatencyP99:  9.0,
				WriteLatencyP50: 2.0,
				WriteLatencyP99: 8.0,
			},
			Atomic: harness.BenchmarkResult{
				ReadThroughput:  c[2],
				WriteThroughput: c[3],
				ReadLatencyP50:  0.8,
				ReadLatencyP99:  7.0,
				WriteLatencyP50: 1.5,
				WriteLatencyP99: 6.0,
			},
		})
	}

	return t
}

func TestSummarizeImprovement(t *testing.T) {
	// Mutex read mean 1000, atomic 1200: exactly 20% improvement.
	table := tableWithThroughputs([][4]float64{
		{900.0, 100.0, 1100.0, 100.0},
		{1100.0, 100.0, 1300.0, 150.0},
	})

	s, err := Summarize(table)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.MutexMeans.ReadThroughput != 1000.0 {
		t.Errorf("mutex read mean = %v, want 1000", s.MutexMeans.ReadThroughput)
	}
	if s.AtomicMeans.ReadThroughput != 1200.0 {
		t.Errorf("atomic read mean = %v, want 1200",
			s.AtomicMeans.ReadThroughput)
	}
	if math.Abs(s.ReadImprovementPct-20.0) > 1e-9 {
		t.Errorf("read improvement = %v%%, want 20", s.ReadImprovementPct)
	}
	if math.Abs(s.WriteImprovementPct-25.0) > 1e-9 {
		t.Errorf("write improvement = %v%%, want 25", s.WriteImprovementPct)
	}
}

func TestSummarizeLatencyMeans(t *testing.T) {
	table := tableWithThroughputs([][4]float64{
		{1000.0, 100.0, 1200.0, 120.0},
		{1000.0, 100.0, 1200.0, 120.0},
	})

	s, err := Summarize(table)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.MutexMeans.ReadLatencyP50 != 1.0 {
		t.Errorf("mutex read p50 mean = %v, want 1.0",
			s.MutexMeans.ReadLatencyP50)
	}
	if s.AtomicMeans.WriteLatencyP99 != 6.0 {
		t.Errorf("atomic write p99 mean = %v, want 6.0",
			s.AtomicMeans.WriteLatencyP99)
	}
}

func TestSummarizeZeroBaseline(t *testing.T) {
	table := tableWithThroughputs([][4]float64{
		{0.0, 100.0, 1200.0, 120.0},
	})

	_, err := Summarize(table)
	if err == nil {
		t.Fatal("expected error for zero mutex mean")
	}
	if !errors.Is(err, ErrZeroBaseline) {
		t.Errorf("error = %v, want ErrZeroBaseline", err)
	}
}

func TestSummarizeEmptyTable(t *testing.T) {
	if _, err := Summarize(&sweep.Table{}); err == nil {
		t.Error("expected error for empty table")
	}
}

func TestWriteText(t *testing.T) {
	table := tableWithThroughputs([][4]float64{
		{1000.0, 100.0, 1200.0, 120.0},
	})

	s, err := Summarize(table)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	var buf bytes.Buffer
	WriteText(&buf, s)
	out := buf.String()

	for _, want := range []string{
		"Read Throughput:",
		"Mutex: 1000.00 ops/sec",
		"Atomic: 1200.00 ops/sec",
		"Read: 20.0%",
		"Write: 20.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
