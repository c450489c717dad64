package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-txt2csv/internal/fileutil"
	"github.com/alnah/go-txt2csv/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits on config values.
const (
	MaxPathLength  = 4096    // PATH_MAX on Linux
	MaxWorkers     = 16      // matches the converter pool cap
	MinLineSize    = 1 << 10 // 1 KiB
	MaxLineSize    = 1 << 30 // 1 GiB
	MaxExtensions  = 32
	configDirName  = "go-txt2csv"
	defaultTimeout = "" // no timeout
)

// DefaultExtensions are the input extensions picked up when scanning a directory.
var DefaultExtensions = []string{".html", ".htm", ".txt"}

// Config holds all configuration for a conversion run.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Conversion ConversionConfig `yaml:"conversion"`
}

// InputConfig defines input source options.
type InputConfig struct {
	Path       string   `yaml:"path"`       // File or directory (empty = dataset.html)
	Extensions []string `yaml:"extensions"` // Directory scan filter (empty = DefaultExtensions)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Path string `yaml:"path"` // Output file for a single input (empty = derived from input)
	Dir  string `yaml:"dir"`  // Output directory (empty = next to each input)
}

// ConversionConfig defines conversion tuning.
type ConversionConfig struct {
	Workers     int    `yaml:"workers"`     // 0 = auto from GOMAXPROCS
	Timeout     string `yaml:"timeout"`     // Per-file timeout, e.g. "30s" (empty = none)
	MaxLineSize int    `yaml:"maxLineSize"` // Bytes (0 = library default)
}

// Validate checks value ranges and path lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.path", c.Input.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	if len(c.Input.Extensions) > MaxExtensions {
		return fmt.Errorf("%w: input.extensions has %d entries (max %d)", ErrInvalidValue, len(c.Input.Extensions), MaxExtensions)
	}
	for i, ext := range c.Input.Extensions {
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: input.extensions[%d]: %v", ErrInvalidValue, i, err)
		}
	}

	if c.Output.Path != "" && c.Output.Dir != "" {
		return fmt.Errorf("%w: output.path and output.dir are mutually exclusive", ErrInvalidValue)
	}

	if c.Conversion.Workers < 0 || c.Conversion.Workers > MaxWorkers {
		return fmt.Errorf("%w: conversion.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Conversion.Workers)
	}
	if c.Conversion.Timeout != "" {
		d, err := time.ParseDuration(c.Conversion.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: conversion.timeout must be a positive duration, got %q", ErrInvalidValue, c.Conversion.Timeout)
		}
	}
	if n := c.Conversion.MaxLineSize; n != 0 && (n < MinLineSize || n > MaxLineSize) {
		return fmt.Errorf("%w: conversion.maxLineSize must be between %d and %d, got %d", ErrInvalidValue, MinLineSize, MaxLineSize, n)
	}

	return nil
}

// TimeoutDuration returns the parsed conversion timeout, or 0 when unset or invalid.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Conversion.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Conversion.Timeout)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:       "",
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Output:     OutputConfig{Path: "", Dir: ""},
		Conversion: ConversionConfig{Workers: 0, Timeout: defaultTimeout},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	cfg.Input.Extensions = nil
	if err := yamlutil.LoadFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	if len(cfg.Input.Extensions) == 0 {
		cfg.Input.Extensions = append([]string(nil), DefaultExtensions...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// current directory, then the user config directory (.yaml before .yml).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
