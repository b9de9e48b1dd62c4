package sweep

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/weiihann/skipbench/harness"
)

// Row holds one reader count's metrics for every variant.
type Row struct {
	Readers int
	Mutex   harness.BenchmarkResult
	Atomic  harness.BenchmarkResult
}

// Set stores the result for one variant of this row.
func (r *Row) Set(v harness.Variant, res harness.BenchmarkResult) {
	switch v {
	case harness.VariantMutex:
		r.Mutex = res
	case harness.VariantAtomic:
		r.Atomic = res
	}
}

// Result returns the stored result for one variant.
func (r *Row) Result(v harness.Variant) harness.BenchmarkResult {
	if v == harness.VariantAtomic {
		return r.Atomic
	}

	return r.Mutex
}

// Table is the ordered sequence of rows, one per reader count,
// ascending.
type Table struct {
	Rows []Row
}

// metricSuffixes is the per-variant column order. Together with the
// fixed variant order this pins the CSV header; downstream consumers
// rely on it, so it never derives from map iteration.
var metricSuffixes = []string{
	"read_throughput",
	"write_throughput",
	"read_latency_p50",
	"read_latency_p99",
	"write_latency_p50",
	"write_latency_p99",
}

// Header returns the fixed 13-column header of the persisted table.
func Header() []string {
	cols := make([]string, 0, 1+len(harness.Variants())*len(metricSuffixes))
	cols = append(cols, "num_readers")

	for _, v := range harness.Variants() {
		for _, suffix := range metricSuffixes {
			cols = append(cols, v.String()+"_"+suffix)
		}
	}

	return cols
}

func metricColumns(res harness.BenchmarkResult) []float64 {
	return []float64{
		res.ReadThroughput,
		res.WriteThroughput,
		res.ReadLatencyP50,
		res.ReadLatencyP99,
		res.WriteLatencyP50,
		res.WriteLatencyP99,
	}
}

func resultFromColumns(vals []float64) harness.BenchmarkResult {
	return harness.BenchmarkResult{
		ReadThroughput:  vals[0],
		WriteThroughput: vals[1],
		ReadLatencyP50:  vals[2],
		ReadLatencyP99:  vals[3],
		WriteLatencyP50: vals[4],
		WriteLatencyP99: vals[5],
	}
}

// WriteCSV persists the table at path, replacing any existing file.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(Header()); err != nil {
		f.Close()

		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range t.Rows {
		record := make([]string, 0, len(Header()))
		record = append(record, strconv.Itoa(row.Readers))

		for _, v := range harness.Variants() {
			for _, m := range metricColumns(row.Result(v)) {
				record = append(record, strconv.FormatFloat(m, 'f', -1, 64))
			}
		}

		if err := w.Write(record); err != nil {
			f.Close()

			return fmt.Errorf("write row (readers=%d): %w", row.Readers, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()

		return fmt.Errorf("flush %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}

// LoadCSV reads a previously persisted table, validating the header
// against the fixed column contract.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty table", path)
	}

	header := Header()
	if len(records[0]) != len(header) {
		return nil, fmt.Errorf(
			"%s: %d columns, want %d", path, len(records[0]), len(header),
		)
	}

	for i, col := range records[0] {
		if col != header[i] {
			return nil, fmt.Errorf(
				"%s: column %d is %q, want %q", path, i, col, header[i],
			)
		}
	}

	table := &Table{Rows: make([]Row, 0, len(records)-1)}

	for _, record := range records[1:] {
		readers, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("parse num_readers %q: %w", record[0], err)
		}

		vals := make([]float64, len(record)-1)
		for i, s := range record[1:] {
			vals[i], err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf(
					"parse %s value %q: %w", header[i+1], s, err,
				)
			}
		}

		row := Row{Readers: readers}
		for i, v := range harness.Variants() {
			n := len(metricSuffixes)
			row.Set(v, resultFromColumns(vals[i*n:(i+1)*n]))
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
