package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable read by LoadFromEnv
const EnvPrefix = "XFOLLOW_"

// Config holds all configuration options for the follow collector
type Config struct {
	// Page scanning
	Collector CollectorConfig `yaml:"collector" json:"collector"`

	// Export artifact settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// CollectorConfig controls the periodic page scan
type CollectorConfig struct {
	ScanInterval time.Duration `yaml:"scan_interval" json:"scan_interval"`
	RowMarker    string        `yaml:"row_marker" json:"row_marker"`
	Namespace    string        `yaml:"namespace" json:"namespace"`
}

// OutputConfig controls where and how the recovery file is written
type OutputConfig struct {
	Directory      string `yaml:"directory" json:"directory"`
	FileName       string `yaml:"file_name" json:"file_name"`
	ProfileBaseURL string `yaml:"profile_base_url" json:"profile_base_url"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Collector: CollectorConfig{
			ScanInterval: 2 * time.Second,
			RowMarker:    "UserCell",
			Namespace:    "xfollowData",
		},
		Output: OutputConfig{
			Directory:      ".",
			FileName:       "following_recovery.json",
			ProfileBaseURL: "https://x.com",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if interval := os.Getenv(EnvPrefix + "SCAN_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("invalid %sSCAN_INTERVAL: %w", EnvPrefix, err)
		}
		c.Collector.ScanInterval = d
	}
	if marker := os.Getenv(EnvPrefix + "ROW_MARKER"); marker != "" {
		c.Collector.RowMarker = marker
	}
	if dir := os.Getenv(EnvPrefix + "OUTPUT_DIR"); dir != "" {
		c.Output.Directory = dir
	}
	if base := os.Getenv(EnvPrefix + "PROFILE_BASE_URL"); base != "" {
		c.Output.ProfileBaseURL = base
	}
	if level := os.Getenv(EnvPrefix + "LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv(EnvPrefix + "LOG_FILE"); file != "" {
		c.Logging.File = file
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	locations := []string{
		".xfollow.yaml",
		".xfollow.yml",
		filepath.Join(xdg.ConfigHome, "xfollow", "config.yaml"),
		filepath.Join(xdg.ConfigHome, "xfollow", "config.yml"),
		filepath.Join(xdg.Home, ".xfollow.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// DefaultConfigPath is where `config init` writes when no path is given
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "xfollow", "config.yaml")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Collector.ScanInterval <= 0 {
		errs = append(errs, errors.New("scan interval must be positive"))
	}
	if strings.TrimSpace(c.Collector.RowMarker) == "" {
		errs = append(errs, errors.New("row marker is required"))
	}
	if strings.TrimSpace(c.Collector.Namespace) == "" {
		errs = append(errs, errors.New("namespace is required"))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Output.FileName == "" || filepath.Base(c.Output.FileName) != c.Output.FileName {
		errs = append(errs, errors.New("output file name must be a bare file name"))
	}
	if u, err := url.Parse(c.Output.ProfileBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, errors.New("profile base URL must be absolute"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if interval, ok := flags["scan-interval"].(time.Duration); ok && interval > 0 {
		c.Collector.ScanInterval = interval
	}
	if marker, ok := flags["row-marker"].(string); ok && marker != "" {
		c.Collector.RowMarker = marker
	}
	if dir, ok := flags["output"].(string); ok && dir != "" {
		c.Output.Directory = dir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(xdg.ConfigHome, "xfollow", ".env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
