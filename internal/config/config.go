package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging     LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
	Paths       PathsConfig       `yaml:"paths" envconfig:"PATHS"`
	Calculation CalculationConfig `yaml:"calculation" envconfig:"CALCULATION"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/indexcalc.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// PathsConfig contains the provider table locations and the output directory
type PathsConfig struct {
	DataDir        string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	SecurityPanel  string `yaml:"security_panel" envconfig:"SECURITY_PANEL" default:"security_panel.csv"`
	ReferenceIndex string `yaml:"reference_index" envconfig:"REFERENCE_INDEX" default:"reference_index.csv"`
	Memberships    string `yaml:"memberships" envconfig:"MEMBERSHIPS" default:"memberships.csv"`
	OutputDir      string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"output"`
}

// CalculationConfig contains the computation parameters
type CalculationConfig struct {
	StartDate string `yaml:"start_date" envconfig:"START_DATE" default:"1990-01-31"`
	EndDate   string `yaml:"end_date" envconfig:"END_DATE" default:"2022-12-30"`
	Frequency string `yaml:"frequency" envconfig:"FREQUENCY" default:"month-end"`

	// Calibration scale factors for the cumulative approximation series.
	// Historical fitting artifacts, deliberately overridable.
	ApproxScale    float64 `yaml:"approx_scale" envconfig:"APPROX_SCALE" default:"0.993"`
	ReferenceScale float64 `yaml:"reference_scale" envconfig:"REFERENCE_SCALE" default:"0.97"`
}

// DateRange parses the configured start and end dates
func (c CalculationConfig) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start_date: %w", err)
	}
	end, err = time.Parse("2006-01-02", c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end_date: %w", err)
	}
	return start, end, nil
}

// Load loads configuration from environment variables and an optional YAML
// file. Environment variables (prefix INDEXCALC) take precedence over the
// file; file values take precedence over defaults.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = *fileCfg
		}
	}

	// Env vars overwrite file values; envconfig fills remaining zero fields
	// with their defaults.
	if err := envconfig.Process("INDEXCALC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks the configuration for inconsistencies
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch c.Calculation.Frequency {
	case "month-start", "month-end":
	default:
		return fmt.Errorf("invalid frequency: %s", c.Calculation.Frequency)
	}

	if c.Calculation.ApproxScale <= 0 || c.Calculation.ReferenceScale <= 0 {
		return fmt.Errorf("calibration scale factors must be positive")
	}

	start, end, err := c.Calculation.DateRange()
	if err != nil {
		return err
	}
	if start.After(end) {
		return fmt.Errorf("start_date %s is after end_date %s", c.Calculation.StartDate, c.Calculation.EndDate)
	}
	return nil
}
