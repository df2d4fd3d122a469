package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/google/uuid"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// sampleRecord is the shape written by the fixture generator.
type sampleRecord struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// GenerateSampleFile writes numOfLines well-formed records to path, each with
// a type drawn uniformly from [0, numOfTypes), a fresh UUID, and a random
// alphanumeric message of 1..maxMsgSize bytes. It returns the ground-truth
// aggregate of what was written, which round-trip tests use as the oracle.
func GenerateSampleFile(path string, numOfLines, numOfTypes, maxMsgSize int) (map[string]LogStats, error) {
	if numOfLines < 0 || numOfTypes < 1 || maxMsgSize < 1 {
		return nil, fmt.Errorf("invalid sample parameters: lines=%d types=%d max-msg-size=%d",
			numOfLines, numOfTypes, maxMsgSize)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create sample file: %w", err)
	}
	w := bufio.NewWriter(f)

	agg := make(map[string]LogStats, numOfTypes)
	for i := 0; i < numOfLines; i++ {
		logType := strconv.Itoa(rand.Intn(numOfTypes))
		line, err := json.Marshal(sampleRecord{
			Type:    logType,
			ID:      uuid.NewString(),
			Message: randAlphanumeric(1 + rand.Intn(maxMsgSize)),
		})
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("marshal sample record: %w", err)
		}
		line = append(line, '\n')

		if _, err := w.Write(line); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sample record: %w", err)
		}

		e := agg[logType]
		e.Add(lineDelta(uint64(len(line))))
		agg[logType] = e
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush sample file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close sample file: %w", err)
	}

	return agg, nil
}

func randAlphanumeric(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[rand.Intn(len(alphanumeric))]
	}
	return string(b)
}
