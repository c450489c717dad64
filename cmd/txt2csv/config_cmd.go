package main

import (
	"fmt"

	"github.com/alnah/go-txt2csv/internal/yamlutil"
)

// runConfig prints the effective configuration (config file plus
// TXT2CSV_* overrides) as YAML.
func runConfig(args []string, env *Environment) error {
	flags, rest, err := parseCommonFlags("config", args, env.Stderr, printConfigUsage)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		printConfigUsage(env.Stderr)
		return fmt.Errorf("%w: config takes no arguments, got %q", ErrUsage, rest[0])
	}

	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadEffectiveConfig(flags.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return yamlutil.Encode(env.Stdout, cfg)
}
