package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-txt2csv/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // TXT2CSV_CONFIG: config file name or path
	Input      string        // TXT2CSV_INPUT: default input file or directory
	Output     string        // TXT2CSV_OUTPUT: default output file
	OutputDir  string        // TXT2CSV_OUTPUT_DIR: default output directory
	Workers    int           // TXT2CSV_WORKERS: parallel workers
	Timeout    time.Duration // TXT2CSV_TIMEOUT: per-file timeout
}

// knownEnvVars lists valid TXT2CSV_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TXT2CSV_CONFIG":     true,
	"TXT2CSV_INPUT":      true,
	"TXT2CSV_OUTPUT":     true,
	"TXT2CSV_OUTPUT_DIR": true,
	"TXT2CSV_WORKERS":    true,
	"TXT2CSV_TIMEOUT":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TXT2CSV_CONFIG"),
		Input:      os.Getenv("TXT2CSV_INPUT"),
		Output:     os.Getenv("TXT2CSV_OUTPUT"),
		OutputDir:  os.Getenv("TXT2CSV_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("TXT2CSV_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("TXT2CSV_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TXT2CSV_* variables.
// Helps catch typos like TXT2CSV_OUTDIR instead of TXT2CSV_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "TXT2CSV_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" && cfg.Input.Path == "" {
		cfg.Input.Path = env.Input
	}

	// output.path and output.dir are exclusive; the config file wins as a pair.
	if cfg.Output.Path == "" && cfg.Output.Dir == "" {
		switch {
		case env.Output != "":
			cfg.Output.Path = env.Output
		case env.OutputDir != "":
			cfg.Output.Dir = env.OutputDir
		}
	}

	if env.Workers > 0 && cfg.Conversion.Workers == 0 {
		cfg.Conversion.Workers = env.Workers
	}
	if env.Timeout > 0 && cfg.Conversion.Timeout == "" {
		cfg.Conversion.Timeout = env.Timeout.String()
	}
}
