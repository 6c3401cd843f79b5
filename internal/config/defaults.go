package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Workers: 0,
			Exclude: []string{
				".git/",
				"third_party/",
				"vendor/",
			},
			IncludeUnit: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}
	result.Source = mergeSourceConfig(loaded.Source, defaults.Source)
	result.Log = mergeLogConfig(loaded.Log, defaults.Log)
	return result
}

func mergeSourceConfig(loaded, defaults SourceConfig) SourceConfig {
	result := SourceConfig{}

	// Workers: use loaded if non-zero
	if loaded.Workers != 0 {
		result.Workers = loaded.Workers
	} else {
		result.Workers = defaults.Workers
	}

	// Use loaded exclude patterns if provided, otherwise defaults
	if len(loaded.Exclude) > 0 {
		result.Exclude = loaded.Exclude
	} else {
		result.Exclude = defaults.Exclude
	}

	// YAML cannot tell an unset bool from false, so a true on either side wins
	result.IncludeUnit = loaded.IncludeUnit || defaults.IncludeUnit

	result.Database = loaded.Database
	if result.Database == "" {
		result.Database = defaults.Database
	}

	return result
}

func mergeLogConfig(loaded, defaults LogConfig) LogConfig {
	if loaded.Level != "" {
		return loaded
	}
	return defaults
}

// ValidLogLevels lists the accepted values for log.level
var ValidLogLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}

// IsValidLogLevel checks if the given level name is valid
func IsValidLogLevel(level string) bool {
	for _, valid := range ValidLogLevels {
		if level == valid {
			return true
		}
	}
	return false
}
