package logger

import (
	"path/filepath"
	"testing"

	"github.com/amoylab/leavehub/internal/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerStdout(t *testing.T) {
	lg, err := NewLogger(&config.LoggerConfig{
		Level:  "debug",
		Format: "console",
		Output: "stdout",
	})
	require.NoError(t, err)
	require.NotNil(t, lg)
	lg.Debug("hello")
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "apiserver.log")
	lg, err := NewLogger(&config.LoggerConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	})
	require.NoError(t, err)
	lg.Info("written to file")
	require.NoError(t, lg.Sync())

	assert.FileExists(t, path)
}

func TestGetLogLevel(t *testing.T) {
	tests := map[string]string{
		"debug": "debug",
		"INFO":  "info",
		"Warn":  "warn",
		"error": "error",
	}
	for in, want := range tests {
		assert.Equal(t, want, getLogLevel(in).String())
	}
	// Unknown levels fall back to info
	assert.Equal(t, "info", getLogLevel("verbose").String())
}
