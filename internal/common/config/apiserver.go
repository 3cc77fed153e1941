package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amoylab/leavehub/pkg/trace"
)

type (
	// APIServerConfig represents the leavehub API server configuration
	APIServerConfig struct {
		Server     ServerConfig     `yaml:"server"`
		Database   DatabaseConfig   `yaml:"database"`
		JWT        JWTConfig        `yaml:"jwt"`
		SuperAdmin SuperAdminConfig `yaml:"super_admin"`
		Leave      LeaveConfig      `yaml:"leave"`
		Logger     LoggerConfig     `yaml:"logger"`
		I18n       I18nConfig       `yaml:"i18n"`
		Metrics    MetricsConfig    `yaml:"metrics"`
		Tracing    trace.Config     `yaml:"tracing"`
	}

	// ServerConfig represents the HTTP server configuration
	ServerConfig struct {
		Port int `yaml:"port"`
	}

	// I18nConfig represents the internationalization configuration
	I18nConfig struct {
		Path string `yaml:"path"` // Path to i18n translation files
	}

	DatabaseConfig struct {
		Type     string `yaml:"type"`     // mysql, postgres, sqlite, etc.
		Host     string `yaml:"host"`     // localhost
		Port     int    `yaml:"port"`     // 3306 (for mysql), 5432 (for postgres)
		User     string `yaml:"user"`     // root (for mysql), postgres (for postgres)
		Password string `yaml:"password"` // password
		DBName   string `yaml:"dbname"`   // database name
		SSLMode  string `yaml:"sslmode"`  // disable (for postgres)
	}

	JWTConfig struct {
		SecretKey string        `yaml:"secret_key"`
		Duration  time.Duration `yaml:"duration"`
	}

	// SuperAdminConfig represents the seeded administrator account
	SuperAdminConfig struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	}

	// LeaveConfig represents the defaults applied to new leave balance records
	LeaveConfig struct {
		TotalWorkingDays int `yaml:"total_working_days"` // working days per year
		AnnualLeaveDays  int `yaml:"annual_leave_days"`  // leave entitlement per year
	}

	// MetricsConfig represents the Prometheus metrics configuration
	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}
)

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case "postgres":
		return c.getPostgresDSN()
	case "mysql":
		return c.getMySQLDSN()
	case "sqlite":
		// Ensure the directory for the SQLite database exists.
		// If the directory cannot be created, it's a fatal error.
		if err := os.MkdirAll(filepath.Dir(c.DBName), 0755); err != nil {
			panic(fmt.Errorf("failed to create directory for sqlite database: %w", err))
		}
		return c.DBName // For SQLite, DBName is the file path
	default:
		return ""
	}
}

// getPostgresDSN returns PostgreSQL connection string
func (c *DatabaseConfig) getPostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getMySQLDSN returns MySQL connection string
func (c *DatabaseConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}
