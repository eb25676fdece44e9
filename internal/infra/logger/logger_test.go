package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{input: "debug", want: zerolog.DebugLevel},
		{input: "INFO", want: zerolog.InfoLevel},
		{input: "warn", want: zerolog.WarnLevel},
		{input: "warning", want: zerolog.WarnLevel},
		{input: "", want: zerolog.WarnLevel},
		{input: "error", want: zerolog.ErrorLevel},
		{input: "verbose", want: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestInit_FileOutputIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radio.log")

	closer, err := Init(Config{Output: "file", Level: "info", File: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = Init(Config{Output: "stderr", Level: "warn"})
	})

	zlog.Info().Msg("session started")
	zlog.Debug().Msg("filtered out")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "exactly one JSON line expected: %s", data)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "session started", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestInit_ConsoleOutput(t *testing.T) {
	closer, err := Init(Config{Output: "stderr", Level: "debug"})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	_, err = Init(Config{Output: "stderr", Level: "warn"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestInit_UnwritableFile(t *testing.T) {
	_, err := Init(Config{Output: "file", File: filepath.Join(t.TempDir(), "missing", "dir", "radio.log")})
	assert.Error(t, err)
}
