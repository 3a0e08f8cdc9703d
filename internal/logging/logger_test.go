package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_WritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf)

	logger.Info("friend request sent", map[string]interface{}{
		"request_id": "abc",
		"count":      2,
	})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "friend request sent", entries[0]["message"])
	assert.Equal(t, "abc", entries[0]["request_id"])
	assert.EqualValues(t, 2, entries[0]["count"])
	assert.NotEmpty(t, entries[0]["timestamp"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf)

	logger.Debug("hidden")
	logger.SetLevel(LevelDebug)
	logger.Debug("shown")
	logger.SetLevel(LevelError)
	logger.Warn("hidden too")
	logger.Error("boom", map[string]interface{}{"error": errors.New("db down")})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "shown", entries[0]["message"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "db down", entries[1]["error"])
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf)
	child := base.WithField("component", "friends")

	child.Info("one", map[string]interface{}{"k": "v"})
	base.Info("two")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "friends", entries[0]["component"])
	assert.Equal(t, "v", entries[0]["k"])
	_, hasComponent := entries[1]["component"]
	assert.False(t, hasComponent)
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
