package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDir is the workflow directory, relative to the working directory
	DefaultDir = "workflows"
	// DefaultExtension selects which directory entries are validated
	DefaultExtension = ".json"
	// DefaultConfigFile is picked up from the working directory when no --config is given
	DefaultConfigFile = ".workflowlint.yaml"
)

// Environment overrides, applied on top of the config file
const (
	EnvDir    = "WORKFLOWLINT_DIR"
	EnvSchema = "WORKFLOWLINT_SCHEMA"
	EnvReport = "WORKFLOWLINT_REPORT"
)

// Config holds the settings for a validation run
type Config struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"extension"`
	Schema    string `yaml:"schema,omitempty"`
	Report    string `yaml:"report,omitempty"`
	Strict    bool   `yaml:"strict"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Dir:       DefaultDir,
		Extension: DefaultExtension,
	}
}

// Load builds a configuration from the defaults, the YAML file at path and
// the environment. An empty path falls back to DefaultConfigFile when it
// exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadDotEnv loads a .env file from the working directory if there is one
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		// An empty file decodes to io.EOF and leaves the defaults untouched
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDir); v != "" {
		c.Dir = v
	}
	if v := os.Getenv(EnvSchema); v != "" {
		c.Schema = v
	}
	if v := os.Getenv(EnvReport); v != "" {
		c.Report = v
	}
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Dir) == "" {
		return fmt.Errorf("workflow directory is required")
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension must start with '.': %q", c.Extension)
	}
	if c.Schema != "" {
		info, err := os.Stat(c.Schema)
		if err != nil {
			return fmt.Errorf("schema file does not exist: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("schema must be a file, not a directory: %s", c.Schema)
		}
	}
	return nil
}
