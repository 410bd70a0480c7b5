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

	"github.com/abhisek/quizbox/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quizbox.log")
	logger, closeFn, err := New(config.LogConfig{File: path, Level: "info", MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("session started", zap.String("mode", "sequential"))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "session started", entry["msg"])
	assert.Equal(t, "sequential", entry["mode"])
}

func TestNew_Disabled(t *testing.T) {
	logger, closeFn, err := New(config.LogConfig{File: "off"})
	require.NoError(t, err)
	logger.Info("goes nowhere")
	assert.NoError(t, closeFn())
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{File: filepath.Join(t.TempDir(), "q.log"), Level: "loud"})
	assert.Error(t, err)
}
