package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Parse flags
	input        string
	numOfThreads int
	strategy     string
	jsonOut      bool
	serve        bool
	port         int
	verbose      bool

	// Generate flags
	genOutput     string
	genLines      int
	genTypes      int
	genMaxMsgSize int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "log-parser",
	Short: "Parallel aggregator for newline-delimited JSON log files",
	Long: `log-parser splits a newline-delimited JSON log file into byte ranges,
scans each range with an independent worker, and reports per-type line counts
and byte totals. Lines straddling a range boundary are attributed to exactly
one worker; malformed lines are skipped and logged.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runParse,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a sample log file with a known ground-truth aggregate",
	Long: `Writes well-formed records whose type is drawn from [0, types) and prints
the aggregate of what was written. Useful for benchmarking and as the oracle
for round-trip verification.`,
	RunE: runGenerate,
}

func runParse(cmd *cobra.Command, args []string) error {
	// Configuration errors are fatal before any work starts.
	if numOfThreads < 1 {
		return fmt.Errorf("number of threads must be greater than 0, got %d", numOfThreads)
	}
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file %s: %w", input, err)
	}

	opts := Options{
		Workers:  numOfThreads,
		Strategy: Strategy(strategy),
	}

	if serve {
		return ServeAggregate(input, opts, port, logger)
	}

	agg, err := Aggregate(input, opts, logger)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(agg)
	}
	PrintAggregate(os.Stdout, agg)
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	agg, err := GenerateSampleFile(genOutput, genLines, genTypes, genMaxMsgSize)
	if err != nil {
		return err
	}
	logger.Info("sample file written",
		zap.String("output", genOutput),
		zap.Int("lines", genLines),
		zap.Int("types", genTypes))
	PrintAggregate(os.Stdout, agg)
	return nil
}

func init() {
	rootCmd.Flags().StringVarP(&input, "input", "i", "", "Input file path")
	rootCmd.Flags().IntVarP(&numOfThreads, "num-of-threads", "t", 0, "Number of threads used for execution")
	rootCmd.Flags().StringVar(&strategy, "strategy", string(StrategyMap), "Merge strategy: map or channel")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Output machine-readable JSON to stdout")
	rootCmd.Flags().BoolVar(&serve, "serve", false, "Serve the aggregate over local HTTP instead of printing once")
	rootCmd.Flags().IntVar(&port, "port", 8080, "Port for --serve")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("num-of-threads")

	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file path")
	generateCmd.Flags().IntVar(&genLines, "lines", 10000, "Number of records to write")
	generateCmd.Flags().IntVar(&genTypes, "types", 120, "Number of distinct log types")
	generateCmd.Flags().IntVar(&genMaxMsgSize, "max-msg-size", 100, "Maximum message length in bytes")
	_ = generateCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
