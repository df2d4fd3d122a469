package main

import (
	"encoding/json"
	"fmt"
)

// decodeLogType parses one raw line as JSON and extracts the required "type"
// field. Invalid JSON, a missing field, or a non-string value is a decode
// error; the caller skips the line and keeps scanning. Extra fields are
// ignored.
func decodeLogType(line []byte) (string, error) {
	var rec logRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return "", err
	}
	if rec.Type == nil {
		return "", fmt.Errorf("missing required string field %q", "type")
	}
	return *rec.Type, nil
}
