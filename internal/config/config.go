package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Store      StoreConfig      `yaml:"store" envconfig:"STORE"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
}

// StoreConfig contains the hierarchical store configuration
type StoreConfig struct {
	// Root is the directory under which the <year>/<NN_Month> tree lives.
	// Empty means executable-relative "store".
	Root string `yaml:"root" envconfig:"ROOT" validate:"required"`
	// ReportsDir is the default destination for generated artifacts.
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
}

// ProcessingConfig contains sheet grouping and aggregation configuration
type ProcessingConfig struct {
	PrefixLength    int      `yaml:"prefix_length" envconfig:"PREFIX_LENGTH" validate:"min=1"`
	ValueColumns    []string `yaml:"value_columns" envconfig:"VALUE_COLUMNS" validate:"min=1,dive,required"`
	TimestampColumn string   `yaml:"timestamp_column" envconfig:"TIMESTAMP_COLUMN"`
	SumValues       bool     `yaml:"sum_values" envconfig:"SUM_VALUES"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load loads configuration layered as defaults, then an optional YAML file,
// then environment variables (prefix TEL). configFile may be empty, in which
// case well-known locations are probed.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("TEL", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// resolvePaths fills path fields left empty with executable-relative defaults
func (c *Config) resolvePaths() error {
	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}

	if c.Store.Root == "" {
		c.Store.Root = paths.StoreDir
	}
	if c.Store.ReportsDir == "" {
		c.Store.ReportsDir = paths.ReportsDir
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = paths.GetLogPath("telcli.log")
	}

	return nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"telcli.yaml",
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration. Path fields are left empty and
// filled in by resolvePaths with executable-relative locations during Load.
func Default() *Config {
	return &Config{
		Processing: ProcessingConfig{
			PrefixLength: DefaultPrefixLength,
			ValueColumns: []string{DefaultValueColumn},
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: "console",
		},
	}
}
