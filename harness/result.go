// Package harness locates and runs the externally built concurrent load
// test binary and parses its textual report into structured metrics.
package harness

// Variant identifies one synchronization strategy of the skiplist under
// test. The set is closed: only the mutex-based and the atomic
// single-writer implementations exist.
type Variant int

const (
	VariantMutex Variant = iota
	VariantAtomic
)

// Variants returns every variant in the fixed iteration order used for
// sweeps and table columns.
func Variants() []Variant {
	return []Variant{VariantMutex, VariantAtomic}
}

// Code returns the integer the load test binary expects as its first
// argument for this variant.
func (v Variant) Code() int {
	switch v {
	case VariantAtomic:
		return 1
	case VariantMutex:
		return 2
	default:
		return 0
	}
}

func (v Variant) String() string {
	switch v {
	case VariantAtomic:
		return "atomic"
	case VariantMutex:
		return "mutex"
	default:
		return "unknown"
	}
}

// BenchmarkResult holds the six metrics extracted from one load test
// report. Throughput is in ops/sec, latencies carry the nanosecond
// values the tool prints; nothing is converted or rescaled.
type BenchmarkResult struct {
	ReadThroughput  float64
	WriteThroughput float64
	ReadLatencyP50  float64
	ReadLatencyP99  float64
	WriteLatencyP50 float64
	WriteLatencyP99 float64
}
