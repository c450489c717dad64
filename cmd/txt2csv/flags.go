package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show row counts, sizes and timing")
}

// newConvertFlagSet builds the convert FlagSet bound to f.
// Completion scripts are generated from the same set.
func newConvertFlagSet(f *convertFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVarP(&f.output, "output", "o", "", "output .csv file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(usage) }
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f, usage)

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// newCommonFlagSet builds a FlagSet holding only the common flags.
func newCommonFlagSet(name string, f *commonFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(usage)
	addCommonFlags(fs, f)
	return fs
}

// parseCommonFlags parses the flags shared by verify and config.
func parseCommonFlags(name string, args []string, usage io.Writer, printUsage func(io.Writer)) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newCommonFlagSet(name, f, usage)
	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// usageError tags flag parse failures so they map to ExitUsage.
// flag.ErrHelp passes through untouched.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUsage, err)
}
