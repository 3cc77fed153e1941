package config

import (
	"os"
	"regexp"
	"time"

	"github.com/amoylab/leavehub/pkg/helper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoggerConfig represents the logger configuration
type LoggerConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // json, console
	Output     string `yaml:"output"`      // stdout, file
	FilePath   string `yaml:"file_path"`   // path to log file when output is file
	MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
	MaxBackups int    `yaml:"max_backups"` // max number of backup files
	MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
	Compress   bool   `yaml:"compress"`    // whether to compress backup files
	Color      bool   `yaml:"color"`       // whether to use color in console output
	Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
	TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps, e.g., "UTC", default is local
	TimeFormat string `yaml:"time_format"` // time format for log timestamps, default is "2006-01-02 15:04:05"
}

// LoadConfig loads configuration from a YAML file with environment variable support
func LoadConfig(filename string) (*APIServerConfig, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	// Resolve environment variables
	data = resolveEnv(data)
	var cfg APIServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cfgPath, err
	}

	setDefaults(&cfg)
	return &cfg, cfgPath, nil
}

// setDefaults fills in defaults after unmarshalling
func setDefaults(cfg *APIServerConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5234
	}
	if cfg.JWT.Duration <= 0 {
		cfg.JWT.Duration = 24 * time.Hour
	}
	if cfg.Leave.TotalWorkingDays <= 0 {
		cfg.Leave.TotalWorkingDays = 250
	}
	if cfg.Leave.AnnualLeaveDays <= 0 {
		cfg.Leave.AnnualLeaveDays = 30
	}
}

// resolveEnv replaces environment variable placeholders in YAML content
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
