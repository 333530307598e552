package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	logger, err := New(Config{Level: "info", Format: "json", File: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("api request", zap.String("path", "/progress/001"), zap.Int("status", 200))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug is below the configured level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "api request", entry["msg"])
	assert.Equal(t, "/progress/001", entry["path"])
	assert.Equal(t, 200.0, entry["status"])
}

func TestConsoleFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := New(Config{Level: "debug", Format: "console", File: path})
	require.NoError(t, err)
	logger.Debug("visible")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.Contains(t, string(data), "DEBUG")
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}

func TestDefaultFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	assert.Equal(t, "/var/state/schedulease/schedulease.log", DefaultFile())
}
