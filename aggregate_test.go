package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

var bothStrategies = []Strategy{StrategyMap, StrategyChannel}

func TestAggregateConcreteThreeLines(t *testing.T) {
	// Three 13-byte lines, newlines included.
	path := writeInput(t, lineA+lineB+lineA)

	agg, err := Aggregate(path, Options{Workers: 1}, zap.NewNop())
	require.NoError(t, err)

	want := map[string]LogStats{
		"a": {Counter: 2, NumOfBytes: 26},
		"b": {Counter: 1, NumOfBytes: 13},
	}
	if diff := cmp.Diff(want, agg); diff != "" {
		t.Errorf("aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateMalformedLineTolerance(t *testing.T) {
	path := writeInput(t, lineA+"this is not valid json\n"+lineA)

	agg, err := Aggregate(path, Options{Workers: 1}, zap.NewNop())
	require.NoError(t, err)

	// The malformed line is absent entirely; the two valid lines are intact.
	require.Len(t, agg, 1)
	assert.Equal(t, LogStats{Counter: 2, NumOfBytes: 26}, agg["a"])
}

func TestAggregateBoundaryStraddlingLine(t *testing.T) {
	// The second line starts before the two-worker midpoint and ends after
	// it. It must be counted exactly once, by the worker owning its first
	// byte.
	line1 := `{"type":"a","message":"xxxx"}` + "\n"                     // 30 bytes
	line2 := `{"type":"b","message":"yyyyyyyyyyyyyyyyyyyyyyyy"}` + "\n" // 50 bytes
	content := line1 + line2
	require.Greater(t, len(content)/2, len(line1), "midpoint must fall inside line2")

	path := writeInput(t, content)
	want := map[string]LogStats{
		"a": {Counter: 1, NumOfBytes: uint64(len(line1))},
		"b": {Counter: 1, NumOfBytes: uint64(len(line2))},
	}

	for _, strategy := range bothStrategies {
		agg, err := Aggregate(path, Options{Workers: 2, Strategy: strategy}, zap.NewNop())
		require.NoError(t, err, "strategy=%s", strategy)
		if diff := cmp.Diff(want, agg); diff != "" {
			t.Errorf("strategy=%s aggregate mismatch (-want +got):\n%s", strategy, diff)
		}
	}
}

func TestAggregateWorkerCountInvariance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.log")
	want, err := GenerateSampleFile(path, 1000, 5, 50)
	require.NoError(t, err)

	// Includes counts that do not divide the file size: the EOF-bounded last
	// partition keeps trailing bytes covered.
	for _, workers := range []int{1, 2, 3, 4, 7} {
		for _, strategy := range bothStrategies {
			agg, err := Aggregate(path, Options{Workers: workers, Strategy: strategy}, zap.NewNop())
			require.NoError(t, err, "workers=%d strategy=%s", workers, strategy)
			if diff := cmp.Diff(want, agg); diff != "" {
				t.Errorf("workers=%d strategy=%s mismatch (-want +got):\n%s", workers, strategy, diff)
			}
		}
	}
}

func TestAggregateNonDivisibleFileSize(t *testing.T) {
	// 39 bytes across 2 workers truncates to a 19-byte budget; the last
	// partition's EOF bound keeps the trailing byte scanned.
	path := writeInput(t, lineA+lineB+lineA)
	want := map[string]LogStats{
		"a": {Counter: 2, NumOfBytes: 26},
		"b": {Counter: 1, NumOfBytes: 13},
	}

	for _, workers := range []int{2, 4} {
		agg, err := Aggregate(path, Options{Workers: workers}, zap.NewNop())
		require.NoError(t, err, "workers=%d", workers)
		if diff := cmp.Diff(want, agg); diff != "" {
			t.Errorf("workers=%d mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestAggregateMoreWorkersThanBytes(t *testing.T) {
	path := writeInput(t, lineA)

	for _, strategy := range bothStrategies {
		agg, err := Aggregate(path, Options{Workers: 8, Strategy: strategy}, zap.NewNop())
		require.NoError(t, err, "strategy=%s", strategy)
		assert.Equal(t, map[string]LogStats{"a": {Counter: 1, NumOfBytes: 13}}, agg)
	}
}

func TestAggregateEmptyFile(t *testing.T) {
	path := writeInput(t, "")

	agg, err := Aggregate(path, Options{Workers: 3}, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, agg)
}

func TestAggregateConfigurationErrors(t *testing.T) {
	path := writeInput(t, lineA)

	_, err := Aggregate(path, Options{Workers: 0}, zap.NewNop())
	assert.Error(t, err)

	_, err = Aggregate(path, Options{Workers: 1, Strategy: "bogus"}, zap.NewNop())
	assert.Error(t, err)
}

func TestAggregateMissingFile(t *testing.T) {
	for _, strategy := range bothStrategies {
		_, err := Aggregate(filepath.Join(t.TempDir(), "nope.log"), Options{Workers: 2, Strategy: strategy}, zap.NewNop())
		assert.Error(t, err, "strategy=%s", strategy)
	}
}

func TestGenerateSampleFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.log")
	want, err := GenerateSampleFile(path, 1000, 5, 50)
	require.NoError(t, err)

	var lines, bytes uint64
	for _, stats := range want {
		lines += stats.Counter
		bytes += stats.NumOfBytes
	}
	assert.Equal(t, uint64(1000), lines)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(bytes), info.Size(), "ground truth must account for every written byte")

	agg, err := Aggregate(path, Options{Workers: 1}, zap.NewNop())
	require.NoError(t, err)
	if diff := cmp.Diff(want, agg); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSampleFileInvalidParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.log")

	_, err := GenerateSampleFile(path, 10, 0, 50)
	assert.Error(t, err)

	_, err = GenerateSampleFile(path, 10, 5, 0)
	assert.Error(t, err)
}
