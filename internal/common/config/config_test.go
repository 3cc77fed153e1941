package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "apiserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  type: "sqlite"
  dbname: ":memory:"
jwt:
  secret_key: "0123456789abcdef0123456789abcdef"
  duration: "12h"
leave:
  total_working_days: 200
  annual_leave_days: 25
`)

	cfg, gotPath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Duration)
	assert.Equal(t, 200, cfg.Leave.TotalWorkingDays)
	assert.Equal(t, 25, cfg.Leave.AnnualLeaveDays)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  type: "sqlite"
  dbname: ":memory:"
`)

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5234, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Duration)
	assert.Equal(t, 250, cfg.Leave.TotalWorkingDays)
	assert.Equal(t, 30, cfg.Leave.AnnualLeaveDays)
}

func TestLoadConfigEnvResolution(t *testing.T) {
	t.Setenv("TEST_APISERVER_PORT", "9090")
	t.Setenv("TEST_APISERVER_DB_TYPE", "postgres")

	path := writeConfig(t, `
server:
  port: ${TEST_APISERVER_PORT:5234}
database:
  type: "${TEST_APISERVER_DB_TYPE:sqlite}"
  host: "${TEST_APISERVER_DB_HOST:localhost}"
`)

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	// Unset variables fall back to the default value
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	pg := &DatabaseConfig{
		Type: "postgres", Host: "db", Port: 5432,
		User: "app", Password: "pw", DBName: "leavehub", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@db:5432/leavehub?sslmode=disable", pg.GetDSN())

	my := &DatabaseConfig{
		Type: "mysql", Host: "db", Port: 3306,
		User: "app", Password: "pw", DBName: "leavehub",
	}
	assert.Equal(t, "app:pw@tcp(db:3306)/leavehub?charset=utf8mb4&parseTime=True&loc=Local", my.GetDSN())

	unknown := &DatabaseConfig{Type: "oracle"}
	assert.Equal(t, "", unknown.GetDSN())
}
