/*
Copyright 2026 The QueryMesh Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	tests := []struct {
		format, level string
		wantErr       string
	}{
		{format: "json", level: "info"},
		{format: "LOGFMT", level: " debug "},
		{format: "console", level: "warn"},
		{format: "xml", level: "info", wantErr: `invalid log-fmt "xml"`},
		{format: "json", level: "trace", wantErr: `invalid log-level "trace"`},
	}
	for _, tc := range tests {
		t.Run(tc.format+"/"+tc.level, func(t *testing.T) {
			h, err := NewHandler(&bytes.Buffer{}, tc.format, tc.level)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, "json", "info")
	require.NoError(t, err)

	restore := SetLogger(slog.New(h))
	defer restore()

	InfoS("pass finished", "rules", 3)
	DebugS("not emitted")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "pass finished", rec["msg"])
	assert.EqualValues(t, 3, rec["rules"])
	assert.Contains(t, rec, slog.SourceKey)
	assert.False(t, Enabled(slog.LevelDebug))
	assert.True(t, Enabled(slog.LevelWarn))
}

func TestConsoleHandlerWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, "console", "debug")
	require.NoError(t, err)

	slog.New(h).Info("rule rewrote plan", "rule", "raise-null")
	out := buf.String()
	assert.Contains(t, out, "rule rewrote plan")
	assert.Contains(t, out, "rule=raise-null")
	assert.NotContains(t, out, "\x1b[", "no colors when not writing to a terminal")
}

func TestInitWithoutFormatFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))
	require.NoError(t, Init(fs))
	require.NoError(t, Init(nil))
}

func TestInitRejectsBadLevel(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-fmt=json", "--log-level=loud"}))
	assert.ErrorContains(t, Init(fs), "invalid log-level")
}
