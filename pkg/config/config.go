package config

import (
	"github.com/sdejongh/dirsync/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Report  ReportConfig  `yaml:"report"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Exclude []string      `yaml:"exclude"`
}

// ReportConfig holds report-related settings
type ReportConfig struct {
	Timezone     string `yaml:"timezone"`       // Preferred zone for the report date
	FileName     string `yaml:"file_name"`      // Base name of the report file
	MaxListItems int    `yaml:"max_list_items"` // Cap on per-section path lists
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Progress bool `yaml:"progress"` // Show progress bar
	Quiet    bool `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = logging disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Timezone:     "America/Chicago",
			FileName:     "example",
			MaxListItems: 200,
		},
		Output: OutputConfig{
			Progress: false,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
			File:   "",
		},
		Exclude: nil,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	invalid := func(field, message string) error {
		return &models.ValidationError{Field: field, Message: message}
	}

	switch {
	case c.Report.Timezone == "":
		return invalid("report.timezone", "must not be empty")
	case c.Report.FileName == "":
		return invalid("report.file_name", "must not be empty")
	case c.Report.MaxListItems < 1:
		return invalid("report.max_list_items", "must be at least 1")
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return invalid("logging.format", "must be 'json' or 'text'")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level", "must be 'debug', 'info', 'warn', or 'error'")
	}

	return nil
}
