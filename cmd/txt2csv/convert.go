package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	txt2csv "github.com/alnah/go-txt2csv"
	"github.com/alnah/go-txt2csv/internal/config"
	"github.com/alnah/go-txt2csv/internal/hints"
)

// Sentinel errors for the convert command.
var (
	ErrNoInput            = errors.New("no input files found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadEffectiveConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	undo := setMaxProcs(flags.common.verbose, env.Stderr)
	defer undo()

	files, err := resolveFiles(positional, cfg)
	if err != nil {
		return err
	}

	poolSize := txt2csv.ResolvePoolSize(cfg.Conversion.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := newConverterPool(poolSize, converterOptions(cfg)...)
	defer func() { _ = pool.Close() }()

	results := convertBatch(ctx, pool, files, env.Now)

	printer := newResultPrinter(env, flags.common.quiet, flags.common.verbose, cfg.Input.Extensions)
	summary := printer.print(results)
	if summary.Failed == 0 {
		return nil
	}

	first := firstError(results)
	if len(results) == 1 {
		return reportedError{first}
	}
	return reportedError{fmt.Errorf("%d conversion(s) failed: %w", summary.Failed, first)}
}

// loadEffectiveConfig loads the config named by the flag, falling back to
// TXT2CSV_CONFIG, then applies the remaining environment overrides.
func loadEffectiveConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	if flags.output != "" {
		if isCSVPath(flags.output) {
			cfg.Output.Path = flags.output
			cfg.Output.Dir = ""
		} else {
			cfg.Output.Dir = flags.output
			cfg.Output.Path = ""
		}
	}

	if flags.workers > 0 {
		cfg.Conversion.Workers = flags.workers
	}

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q (use a positive duration such as 30s or 2m)", ErrInvalidTimeout, flags.timeout)
		}
		cfg.Conversion.Timeout = flags.timeout
	}

	return nil
}

// converterOptions builds library options from the effective config.
func converterOptions(cfg *config.Config) []txt2csv.Option {
	var opts []txt2csv.Option
	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, txt2csv.WithTimeout(d))
	}
	if n := cfg.Conversion.MaxLineSize; n > 0 {
		opts = append(opts, txt2csv.WithMaxLineSize(n))
	}
	return opts
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > txt2csv.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, txt2csv.MaxPoolSize)
	}
	return nil
}

// setMaxProcs configures GOMAXPROCS from the container CPU quota.
// The adjustment is logged only in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) func() {
	logger := func(string, ...interface{}) {}
	if verbose {
		logger = func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}
	undo, _ := maxprocs.Set(maxprocs.Logger(logger))
	if undo == nil {
		return func() {}
	}
	return undo
}

// firstError returns the first failure in input order.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
