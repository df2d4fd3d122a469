package main

import (
	"fmt"
	"io"
	"sort"
)

// PrintAggregate writes the per-type aggregate to w, one line per type.
// Types are sorted so the output is stable; the aggregate itself carries no
// ordering.
func PrintAggregate(w io.Writer, agg map[string]LogStats) {
	types := make([]string, 0, len(agg))
	for t := range agg {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		s := agg[t]
		fmt.Fprintf(w, "log_type: %s, counter: %d, number_of_bytes: %d\n",
			t, s.Counter, s.NumOfBytes)
	}
}
