package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCfgPathAbsolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "apiserver.yaml")
	assert.Equal(t, abs, GetCfgPath(abs))
}

func TestGetCfgPathCurrentDir(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "apiserver.yaml"), []byte("server:\n"), 0644))
	t.Chdir(tmp)

	got := GetCfgPath("apiserver.yaml")
	assert.Equal(t, filepath.Join(tmp, "apiserver.yaml"), got)
}

func TestGetCfgPathConfigsDir(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "configs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "configs", "apiserver.yaml"), []byte("server:\n"), 0644))
	t.Chdir(tmp)

	got := GetCfgPath("apiserver.yaml")
	assert.Equal(t, filepath.Join(tmp, "configs", "apiserver.yaml"), got)
}

func TestGetCfgPathFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Equal(t, "/etc/leavehub/nonexistent.yaml", GetCfgPath("nonexistent.yaml"))
}

func TestGetCfgPathEmptyPanics(t *testing.T) {
	assert.Panics(t, func() { GetCfgPath("") })
}
