package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "llmx"
	// ConfigFileYAML is checked first
	ConfigFileYAML = "config.yaml"
	// ConfigFileJSON is used when no YAML file exists
	ConfigFileJSON = "config.json"
	// ModelEnv overrides the configured model
	ModelEnv = "LLMX_MODEL"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
	Getenv(key string) string
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (ConfigFileReader) Getenv(key string) string {
	return os.Getenv(key)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads ~/.config/llmx/config.yaml, or config.json when no YAML file
// exists, and merges it over the defaults. Returns the defaults if neither
// file exists. Returns an error only for parse errors, permission issues,
// or validation failures.
//
// NOTE: The file is decoded directly over the default configuration, so
// explicit zero values in the file override defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	homeDir, err := l.fs.UserHomeDir()
	if err == nil {
		dir := filepath.Join(homeDir, ".config", ConfigDir)
		if err := l.decodeFirst(cfg, dir); err != nil {
			return nil, err
		}
	}

	if model := strings.TrimSpace(l.fs.Getenv(ModelEnv)); model != "" {
		cfg.Model = model
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) decodeFirst(cfg *Config, dir string) error {
	yamlPath := filepath.Join(dir, ConfigFileYAML)
	data, err := l.fs.ReadFile(yamlPath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", yamlPath, err)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	jsonPath := filepath.Join(dir, ConfigFileJSON)
	data, err = l.fs.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", jsonPath, err)
	}
	return nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
