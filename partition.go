package main

import "fmt"

// Partitions splits fileSize bytes into one contiguous range per worker.
// Each worker gets a budget of fileSize/workers (truncated) starting at
// i*budget. Truncation would leave up to workers-1 trailing bytes unassigned
// whenever the size is not evenly divisible, so the last partition's budget
// is extended to end of file instead.
func Partitions(fileSize uint64, workers int) ([]Partition, error) {
	if workers < 1 {
		return nil, fmt.Errorf("number of threads must be greater than 0, got %d", workers)
	}

	budget := fileSize / uint64(workers)
	parts := make([]Partition, workers)
	for i := range parts {
		parts[i] = Partition{Start: uint64(i) * budget, Budget: budget}
	}

	// The last worker scans through true EOF, not just its nominal share.
	last := &parts[workers-1]
	last.Budget = fileSize - last.Start

	return parts, nil
}
