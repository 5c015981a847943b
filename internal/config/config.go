// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input     string `json:"input,omitempty"`      // Path to the CV to anonymize
	Output    string `json:"output,omitempty"`     // Path of the generated document
	AssetsDir string `json:"assets_dir,omitempty"` // Directory holding template logos

	// Rendering
	Style  string `json:"style,omitempty"`  // Template style: advanced or fastorgie
	Format string `json:"format,omitempty"` // Output format: pdf or word

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // Address the API server binds to
	JWTSecret  string `json:"jwt_secret,omitempty"`  // Secret for API token signing
	UploadDir  string `json:"upload_dir,omitempty"`  // Directory for uploaded and generated files
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Style {
	case "", "advanced", "fastorgie":
	default:
		return fmt.Errorf("config error: 'style' must be 'advanced' or 'fastorgie', got %q", c.Style)
	}

	switch c.Format {
	case "", "pdf", "word", "docx":
	default:
		return fmt.Errorf("config error: 'format' must be 'pdf' or 'word', got %q", c.Format)
	}

	// Validate file paths exist (if specified)
	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	if c.AssetsDir != "" {
		if _, err := os.Stat(c.AssetsDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: assets directory not found: %s", c.AssetsDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.AssetsDir == "" {
		result.AssetsDir = defaults.AssetsDir
	}
	if result.Style == "" {
		result.Style = defaults.Style
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
