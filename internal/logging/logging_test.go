package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: zapcore.AddSync(&buf)})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("memo inserted", zap.Int64("id", 3))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "memo inserted", entry["msg"])
	assert.Equal(t, float64(3), entry["id"])
}

func TestNewConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Output: zapcore.AddSync(&buf)})
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)

	_, err = New(Options{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)
	_, err := ulid.Parse(a)
	assert.NoError(t, err)
}
