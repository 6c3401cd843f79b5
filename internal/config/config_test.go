package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Source.Workers != 0 {
		t.Errorf("expected default workers 0, got %d", cfg.Source.Workers)
	}

	if len(cfg.Source.Exclude) != 3 {
		t.Errorf("expected 3 exclude patterns, got %d", len(cfg.Source.Exclude))
	}

	if cfg.Source.IncludeUnit {
		t.Error("expected include_unit false by default")
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Log.Level)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestIsValidLogLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"verbose", false},
		{"", false},
		{"INFO", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidLogLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidLogLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "positive workers",
			modify:  func(c *Config) { c.Source.Workers = 8 },
			wantErr: false,
		},
		{
			name:    "negative workers",
			modify:  func(c *Config) { c.Source.Workers = -1 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	defaults := DefaultConfig()

	t.Run("empty loaded uses all defaults", func(t *testing.T) {
		merged := Merge(&Config{}, defaults)
		if !reflect.DeepEqual(merged, defaults) {
			t.Errorf("expected defaults, got %+v", merged)
		}
	})

	t.Run("loaded values take precedence", func(t *testing.T) {
		loaded := &Config{
			Source: SourceConfig{
				Workers:     4,
				Exclude:     []string{"generated/"},
				IncludeUnit: true,
				Database:    "metrics.db",
			},
		}
		merged := Merge(loaded, defaults)

		if merged.Source.Workers != 4 {
			t.Errorf("expected workers 4, got %d", merged.Source.Workers)
		}
		if !reflect.DeepEqual(merged.Source.Exclude, []string{"generated/"}) {
			t.Errorf("expected loaded excludes, got %v", merged.Source.Exclude)
		}
		if !merged.Source.IncludeUnit {
			t.Error("expected include_unit true")
		}
		if merged.Source.Database != "metrics.db" {
			t.Errorf("expected database metrics.db, got %q", merged.Source.Database)
		}

		// Unset values should use defaults
		if merged.Log.Level != defaults.Log.Level {
			t.Errorf("expected default level %s, got %s", defaults.Log.Level, merged.Log.Level)
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	projectDir := filepath.Join(tmpDir, "project")
	subDir := filepath.Join(projectDir, "src", "lib")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}

	t.Run("no config file returns error", func(t *testing.T) {
		if _, err := FindConfigFile(subDir); err == nil {
			t.Error("expected error when no .archaeo.yaml exists")
		}
	})

	configPath := filepath.Join(projectDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("finds config file in current directory", func(t *testing.T) {
		found, err := FindConfigFile(projectDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != configPath {
			t.Errorf("expected %s, got %s", configPath, found)
		}
	})

	t.Run("finds config file in parent directory", func(t *testing.T) {
		found, err := FindConfigFile(subDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != configPath {
			t.Errorf("expected %s, got %s", configPath, found)
		}
	})

	t.Run("ignores a directory with the config name", func(t *testing.T) {
		other := filepath.Join(tmpDir, "other")
		if err := os.MkdirAll(filepath.Join(other, ConfigFileName), 0o755); err != nil {
			t.Fatal(err)
		}
		if _, err := FindConfigFile(other); err == nil {
			t.Error("expected error when .archaeo.yaml is a directory")
		}
	})
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("loads valid config file", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "valid.yaml")
		content := `
source:
  workers: 2
  exclude:
    - build/
    - "*.pb.cc"
log:
  level: debug
`
		if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromPath(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Source.Workers != 2 {
			t.Errorf("expected workers 2, got %d", cfg.Source.Workers)
		}
		if len(cfg.Source.Exclude) != 2 {
			t.Errorf("expected 2 exclude patterns, got %d", len(cfg.Source.Exclude))
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("expected level debug, got %s", cfg.Log.Level)
		}

		// Check defaults were applied for missing values
		if cfg.Source.IncludeUnit {
			t.Error("expected default include_unit false")
		}
	})

	t.Run("returns defaults for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromPath(filepath.Join(tmpDir, "nonexistent.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(cfg, DefaultConfig()) {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("invalid: yaml: content"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadFromPath(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns error for invalid config values", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "bad-values.yaml")
		content := `
source:
  workers: -3
`
		if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadFromPath(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		cfg, err := Load(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(cfg, DefaultConfig()) {
			t.Errorf("expected default config")
		}
	})

	t.Run("loads config from working directory", func(t *testing.T) {
		content := `
source:
  include_unit: true
`
		configPath := filepath.Join(tmpDir, ConfigFileName)
		if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.Source.IncludeUnit {
			t.Error("expected include_unit true")
		}
	})
}

func TestSaveDefault(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates default config file", func(t *testing.T) {
		configPath, err := SaveDefault(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expectedPath := filepath.Join(tmpDir, ConfigFileName)
		if configPath != expectedPath {
			t.Errorf("expected path %s, got %s", expectedPath, configPath)
		}

		cfg, err := LoadFromPath(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if !reflect.DeepEqual(cfg, DefaultConfig()) {
			t.Errorf("saved config doesn't match defaults: %+v", cfg)
		}
	})

	t.Run("fails if config already exists", func(t *testing.T) {
		if _, err := SaveDefault(tmpDir); err == nil {
			t.Error("expected error when config already exists")
		}
	})
}
