package logger_test

import (
	"bytes"
	"testing"

	"codeberg.org/mutker/zbxreport/internal/errors"
	"codeberg.org/mutker/zbxreport/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
	}{
		{"debug", logger.DebugLevel},
		{"INFO", logger.InfoLevel},
		{"warning", logger.WarnLevel},
		{"warn", logger.WarnLevel},
		{"", logger.WarnLevel},
		{"error", logger.ErrorLevel},
	}

	for _, tt := range tests {
		got, err := logger.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := logger.ParseLevel("verbose")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestInitFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.Init(&buf, "info", true))
	defer logger.SetLogLevel(logger.WarnLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Str("host", "web01").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "web01")
}

func TestErrorWithCode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.Init(&buf, "error", true))
	defer logger.SetLogLevel(logger.WarnLevel)

	logger.Default().ErrorWithCode(errors.New().New(errors.ErrWrite)).Msg("report failed")

	assert.Contains(t, buf.String(), "write_failed")
}
