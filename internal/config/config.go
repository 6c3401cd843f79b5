package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the archaeo configuration file
const ConfigFileName = ".archaeo.yaml"

// Config holds all archaeo configuration
type Config struct {
	Source SourceConfig `yaml:"source"`
	Log    LogConfig    `yaml:"log"`
}

// SourceConfig holds configuration for the source command
type SourceConfig struct {
	// Workers bounds concurrent file processing. Zero means one per CPU.
	Workers     int      `yaml:"workers"`
	Exclude     []string `yaml:"exclude"`
	IncludeUnit bool     `yaml:"include_unit"`
	// Database is an optional SQLite file that also receives every row.
	Database    string   `yaml:"database,omitempty"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .archaeo.yaml, falling back to defaults.
// It searches for the config file starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configPath, err := FindConfigFile(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// FindConfigFile locates .archaeo.yaml by walking up from startDir.
func FindConfigFile(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configPath := filepath.Join(currentDir, ConfigFileName)
		info, err := os.Stat(configPath)
		if err == nil && info.Mode().IsRegular() {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if cfg.Source.Workers < 0 {
		return fmt.Errorf("%w: source.workers must be non-negative, got %d",
			ErrInvalidConfig, cfg.Source.Workers)
	}

	if !IsValidLogLevel(cfg.Log.Level) {
		return fmt.Errorf("%w: log.level must be one of %v, got %q",
			ErrInvalidConfig, ValidLogLevels, cfg.Log.Level)
	}

	return nil
}

// SaveDefault writes the default configuration to .archaeo.yaml in workDir.
// Returns the path of the written file.
func SaveDefault(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	configPath := filepath.Join(absDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# archaeo configuration\n# Flags and ARCHAEO_* environment variables take precedence.\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return configPath, nil
}
