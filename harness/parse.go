package harness

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Report section headers and labels emitted by the load test. The
// report also contains per-reader stats with their own "p50:" labels,
// so writer lookups must be scoped to the per-writer section.
const (
	readLatencyHeader = "Read Latency Statistics"
	perWriterHeader   = "Per-writer Thread Stats"
	writerZeroLabel   = "Writer 0:"
)

// decimalRe matches the tool's number format: digits, a point, digits,
// anchored to the start of the text following a label. The tool prints
// with fixed precision, so there is no scientific notation and no sign
// to handle.
var decimalRe = regexp.MustCompile(`^\d+\.\d+`)

// ParseError reports a report that is missing a required section,
// label, or number. Field names the metric that could not be extracted.
type ParseError struct {
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed report: could not extract %s", e.Field)
}

// ParseReport extracts the six benchmark metrics from one report.
// Global throughput labels are matched anywhere in the text; latency
// lookups are restricted to the suffix starting at their section
// header so a label in an earlier section can never satisfy a later
// lookup. A missing section, label, or number fails with a ParseError;
// no metric is ever defaulted.
func ParseReport(text string) (BenchmarkResult, error) {
	var res BenchmarkResult
	var err error

	res.ReadThroughput, err = numberAfter(
		text, "Total Read Throughput:", "read throughput",
	)
	if err != nil {
		return BenchmarkResult{}, err
	}

	res.WriteThroughput, err = numberAfter(
		text, "Total Write Throughput:", "write throughput",
	)
	if err != nil {
		return BenchmarkResult{}, err
	}

	readSection, err := sectionFrom(text, readLatencyHeader)
	if err != nil {
		return BenchmarkResult{}, err
	}

	res.ReadLatencyP50, err = numberAfter(
		readSection, "50th %ile:", "read latency p50",
	)
	if err != nil {
		return BenchmarkResult{}, err
	}

	res.ReadLatencyP99, err = numberAfter(
		readSection, "99th %ile:", "read latency p99",
	)
	if err != nil {
		return BenchmarkResult{}, err
	}

	writerSection, err := sectionFrom(text, perWriterHeader)
	if err != nil {
		return BenchmarkResult{}, err
	}

	entry, err := writerEntry(writerSection)
	if err != nil {
		return BenchmarkResult{}, err
	}

	p50Idx := strings.Index(entry, "p50:")
	if p50Idx == -1 {
		return BenchmarkResult{}, &ParseError{Field: "write latency p50"}
	}

	res.WriteLatencyP50, err = numberAfter(
		entry[p50Idx:], "p50:", "write latency p50",
	)
	if err != nil {
		return BenchmarkResult{}, err
	}

	// p99 must follow p50 on the same entry.
	res.WriteLatencyP99, err = numberAfter(
		entry[p50Idx:], "p99:", "write latency p99",
	)
	if err != nil {
		return BenchmarkResult{}, err
	}

	return res, nil
}

// numberAfter returns the decimal number following the first occurrence
// of label in text, separated from it by whitespace only. field names
// the metric for error reporting.
func numberAfter(text, label, field string) (float64, error) {
	idx := strings.Index(text, label)
	if idx == -1 {
		return 0, &ParseError{Field: field}
	}

	rest := strings.TrimLeft(text[idx+len(label):], " \t")

	match := decimalRe.FindString(rest)
	if match == "" {
		return 0, &ParseError{Field: field}
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, &ParseError{Field: field}
	}

	return v, nil
}

// sectionFrom truncates text to the suffix starting at the first
// occurrence of header.
func sectionFrom(text, header string) (string, error) {
	idx := strings.Index(text, header)
	if idx == -1 {
		return "", &ParseError{Field: header + " section"}
	}

	return text[idx:], nil
}

// writerEntry returns the first line of the per-writer section that
// begins with "Writer 0:". Only writer 0 exists under the fixed
// single-writer invocation convention.
func writerEntry(section string) (string, error) {
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), writerZeroLabel) {
			return line, nil
		}
	}

	return "", &ParseError{Field: "writer 0 stats"}
}
