package main

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Sink receives one well-formed line: its byte length (terminator included)
// and the value of its "type" field. Both aggregate store strategies
// implement Sink, so the scanner never knows how deltas are merged.
type Sink interface {
	Accept(numOfBytes uint64, logType string)
}

// scanPartition reads the lines belonging to one partition and feeds every
// well-formed line to sink.
//
// A partition that does not begin at byte 0 almost always begins mid-line, so
// the scanner first discards through the next newline: that fragment is the
// tail of a line owned by the previous worker. The discarded length still
// counts against the budget, but toward no aggregate. Symmetrically, a line
// that starts inside the budget and ends past it is consumed whole here and
// reappears as the next worker's discarded fragment, so every physical line
// is attributed to exactly one worker.
//
// A line is read only while the bytes consumed so far do not exceed the
// budget, i.e. only while the line's first byte lies within this partition.
// Byte bookkeeping advances for malformed lines too; they are logged and
// skipped without touching any aggregate. I/O errors are fatal for the run.
func scanPartition(f io.ReadSeeker, p Partition, sink Sink, logger *zap.Logger) error {
	// A zero-budget partition owns no bytes. This happens when the file is
	// smaller than the worker count; such workers must not rescan the lines
	// of the worker that shares their start offset.
	if p.Budget == 0 {
		return nil
	}

	if _, err := f.Seek(int64(p.Start), io.SeekStart); err != nil {
		return fmt.Errorf("seek to offset %d: %w", p.Start, err)
	}
	r := bufio.NewReader(f)

	var consumed uint64
	if p.Start > 0 {
		frag, err := r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("resync at offset %d: %w", p.Start, err)
		}
		consumed = uint64(len(frag))
		if err == io.EOF {
			// The previous worker's final line runs through EOF.
			return nil
		}
	}

	for consumed <= p.Budget {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			if logType, derr := decodeLogType(line); derr != nil {
				logger.Warn("skipping malformed line",
					zap.ByteString("line", line),
					zap.Error(derr))
			} else {
				sink.Accept(uint64(len(line)), logType)
			}
			consumed += uint64(len(line))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
	}

	return nil
}
