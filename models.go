package main

// ---- Raw JSONL record types ----

// logRecord is the decoded shape of one input line. Only the required "type"
// field is extracted; every other field is ignored. The pointer distinguishes
// a missing field from an empty string.
type logRecord struct {
	Type *string `json:"type"`
}

// ---- Aggregated types ----

// LogStats is the per-type accumulator: how many lines carried the type and
// how many bytes those lines occupied, line terminators included.
type LogStats struct {
	Counter    uint64 `json:"counter"`
	NumOfBytes uint64 `json:"number_of_bytes"`
}

// Add merges a delta into this accumulator. Add is commutative and
// associative, which is why merge order across workers never matters.
func (s *LogStats) Add(delta LogStats) {
	s.Counter += delta.Counter
	s.NumOfBytes += delta.NumOfBytes
}

// lineDelta is the contribution of a single line of n bytes.
func lineDelta(n uint64) LogStats {
	return LogStats{Counter: 1, NumOfBytes: n}
}

// ---- Partitioning ----

// Partition is the contiguous byte range assigned to one worker. Computed
// once per run, immutable afterwards.
type Partition struct {
	Start  uint64
	Budget uint64
}

// ---- Run options ----

// Strategy selects how per-line deltas are merged into the aggregate.
type Strategy string

const (
	// StrategyMap merges through a shared concurrent map with per-type locks.
	StrategyMap Strategy = "map"
	// StrategyChannel funnels deltas to a single reducer goroutine.
	StrategyChannel Strategy = "channel"
)

// Options control a parse run.
type Options struct {
	Workers  int      // number of parallel workers, must be >= 1
	Strategy Strategy // empty defaults to StrategyMap
}
