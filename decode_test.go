package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLogType(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr bool
	}{
		{name: "plain record", line: `{"type":"a"}`, want: "a"},
		{name: "extra fields ignored", line: `{"type":"auth","id":"x","message":"hello","level":3}`, want: "auth"},
		{name: "empty string is a valid type", line: `{"type":""}`, want: ""},
		{name: "trailing newline tolerated", line: `{"type":"a"}` + "\n", want: "a"},
		{name: "missing type field", line: `{"other":"a"}`, wantErr: true},
		{name: "null type", line: `{"type":null}`, wantErr: true},
		{name: "non-string type", line: `{"type":42}`, wantErr: true},
		{name: "not json", line: `plain text line`, wantErr: true},
		{name: "empty line", line: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeLogType([]byte(tt.line))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
