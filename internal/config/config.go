// =============================================================================
// AGS Data Validator - Configuration Module
// =============================================================================
//
// This module loads the run configuration (agsval.yaml). Every key is
// optional; a missing file is not an error when the default path is used, so
// the validator runs out of the box.
//
// PRECEDENCE:
//   1. Command-line flags
//   2. Config file
//   3. Built-in defaults (applyDefaults)
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/AGS-data-validator/internal/dictionary"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "agsval.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings of a validation run.
type Config struct {
	// =========================================================================
	// VALIDATION SETTINGS
	// =========================================================================

	// Dictionary is the standard dictionary edition files are checked against.
	// Default: the newest embedded edition
	Dictionary string `yaml:"dictionary"`

	// DisabledRules lists rule identifiers ("10a", "19b", ...) whose findings
	// are suppressed.
	DisabledRules []string `yaml:"disabled_rules"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir receives error logs and workbook exports.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ReportNameFormat names the files written to OutputDir.
	// Placeholders:
	//   {original}  - Input file name without extension
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{original}_{timestamp}"
	ReportNameFormat string `yaml:"report_name_format"`

	// WriteReport writes a plain-text error log per file.
	WriteReport bool `yaml:"write_report"`

	// ExportXLSX writes the decoded file and its findings as a workbook.
	ExportXLSX bool `yaml:"export_xlsx"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files validated at once.
	// Default: number of CPUs
	MaxConcurrency int `yaml:"max_concurrency"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The config file. When it is DefaultPath and does not exist the
//     defaults are returned.
//
// RETURNS:
//   - A pointer to the Config struct with defaults applied.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if path == DefaultPath && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Dictionary == "" {
		cfg.Dictionary = dictionary.Default.String()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ReportNameFormat == "" {
		cfg.ReportNameFormat = "{original}_{timestamp}"
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = runtime.NumCPU()
	}
}

// Validate checks values that cannot be defaulted. It is exported so that
// the CLI can re-check after flags are applied.
func (c *Config) Validate() error {
	if _, err := c.Version(); err != nil {
		return err
	}
	if _, err := c.Disabled(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Version returns the configured dictionary edition.
func (c *Config) Version() (dictionary.Version, error) {
	return dictionary.ParseVersion(c.Dictionary)
}

// Disabled returns DisabledRules as rule identifiers.
func (c *Config) Disabled() ([]types.RuleID, error) {
	ids := make([]types.RuleID, 0, len(c.DisabledRules))
	for _, s := range c.DisabledRules {
		id, err := types.ParseRuleID(s)
		if err != nil {
			return nil, fmt.Errorf("disabled_rules: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
