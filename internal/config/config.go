package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PolycodeConfig holds global configuration loaded from
// ~/.polycode/config.yaml.
type PolycodeConfig struct {
	OllamaURL    string `yaml:"ollama_url"`
	Model        string `yaml:"model"`
	TranslateURL string `yaml:"translate_url"`
	DataDir      string `yaml:"data_dir"`
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".polycode", "config.yaml")
}

// Load reads the YAML config file and sets environment variables.
// Environment variables already set take precedence over the config file.
func Load() (*PolycodeConfig, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom reads a specific YAML config file and sets environment variables.
func LoadFrom(path string) (*PolycodeConfig, error) {
	cfg := &PolycodeConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // No config file, not an error
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Set env vars only if not already set (env vars take precedence)
	setIfEmpty("OLLAMA_URL", cfg.OllamaURL)
	setIfEmpty("MODEL", cfg.Model)
	setIfEmpty("TRANSLATE_URL", cfg.TranslateURL)
	setIfEmpty("POLYCODE_DATA_DIR", cfg.DataDir)

	return cfg, nil
}

func setIfEmpty(key, value string) {
	if value != "" && os.Getenv(key) == "" {
		os.Setenv(key, value)
	}
}
