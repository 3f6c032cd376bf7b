package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when --config is
// not given.
const DefaultConfigFile = ".pydocs.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML layout. Empty fields keep their defaults.
type File struct {
	DocsURL        string              `yaml:"docs_url"`
	PEPURL         string              `yaml:"pep_url"`
	BaseDir        string              `yaml:"base_dir"`
	CacheDir       string              `yaml:"cache_dir"`
	CacheTTL       string              `yaml:"cache_ttl"`
	LogDir         string              `yaml:"log_dir"`
	Timeout        string              `yaml:"timeout"`
	UserAgent      string              `yaml:"user_agent"`
	ExpectedStatus map[string][]string `yaml:"expected_status"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// FindConfigFile returns configPath if it exists, otherwise the default file
// in the working directory, otherwise "".
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Apply overlays the non-empty fields of f onto c.
func (f *File) Apply(c *Config) error {
	if f.DocsURL != "" {
		c.DocsURL = f.DocsURL
	}
	if f.PEPURL != "" {
		c.PEPURL = f.PEPURL
	}
	if f.BaseDir != "" {
		c.BaseDir = f.BaseDir
	}
	if f.CacheDir != "" {
		c.CacheDir = f.CacheDir
	}
	if f.LogDir != "" {
		c.LogDir = f.LogDir
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("timeout %q: %w", f.Timeout, err)
		}
		c.Timeout = d
	}
	if f.CacheTTL != "" {
		d, err := time.ParseDuration(f.CacheTTL)
		if err != nil {
			return fmt.Errorf("cache_ttl %q: %w", f.CacheTTL, err)
		}
		c.CacheTTL = d
	}
	if len(f.ExpectedStatus) > 0 {
		c.Expected = ExpectedStatus(f.ExpectedStatus)
	}
	return nil
}

// Load builds the configuration: defaults, then the config file if one is
// found. An explicitly requested file that does not exist is an error.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("%s: %w", configPath, ErrConfigNotFound)
		}
		return cfg, cfg.Validate()
	}

	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
