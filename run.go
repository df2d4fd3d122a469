package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Aggregate scans the file at path with opts.Workers parallel workers and
// returns the per-type aggregate as an immutable snapshot.
//
// The file is opened once to read its size, then each worker receives an
// independent read-only handle so seeks never interfere. All workers are
// joined before returning; the first worker error fails the whole run and no
// partial map is returned. Decode failures never fail a run.
func Aggregate(path string, opts Options, logger *zap.Logger) (map[string]LogStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers < 1 {
		return nil, fmt.Errorf("number of threads must be greater than 0, got %d", opts.Workers)
	}

	var st store
	switch opts.Strategy {
	case StrategyMap, "":
		st = newMapStore()
	case StrategyChannel:
		st = newChanStore()
	default:
		return nil, fmt.Errorf("unknown merge strategy %q", opts.Strategy)
	}

	info, err := os.Stat(path)
	if err != nil {
		// Stop the reducer goroutine before bailing out.
		st.Result()
		return nil, fmt.Errorf("stat input file: %w", err)
	}
	size := uint64(info.Size())

	parts, err := Partitions(size, opts.Workers)
	if err != nil {
		st.Result()
		return nil, err
	}

	logger.Info("starting parse",
		zap.String("input", path),
		zap.Uint64("file_size_bytes", size),
		zap.Int("workers", opts.Workers),
		zap.String("strategy", string(opts.Strategy)))

	start := time.Now()
	var g errgroup.Group
	for i, p := range parts {
		i, p := i, p
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("worker %d: open input: %w", i, err)
			}
			defer f.Close()

			if err := scanPartition(f, p, st, logger); err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			return nil
		})
	}

	// First error wins; Wait still joins every worker, so calling Result
	// afterwards is safe in both outcomes.
	if err := g.Wait(); err != nil {
		st.Result()
		return nil, err
	}

	agg := st.Result()
	logger.Info("parse finished",
		zap.Int("distinct_types", len(agg)),
		zap.Duration("elapsed", time.Since(start)))
	return agg, nil
}
