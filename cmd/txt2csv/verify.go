package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"

	txt2csv "github.com/alnah/go-txt2csv"
)

// maxRowSize bounds a single CSV row: a maximal line with every byte a quote.
const maxRowSize = 2*txt2csv.DefaultMaxLineSize + 4

// verifyResult is the outcome of checking one CSV file.
type verifyResult struct {
	Path  string
	Rows  int
	Bytes int64
	Err   error
}

// runVerify checks that each CSV file parses back with ParseRow.
// Without arguments it checks dataset.csv.
func runVerify(args []string, env *Environment) error {
	flags, paths, err := parseCommonFlags("verify", args, env.Stderr, printVerifyUsage)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		paths = []string{txt2csv.DefaultOutputPath}
	}

	var firstErr error
	failed := 0
	for _, path := range paths {
		r := verifyFile(path)
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			if errors.Is(r.Err, txt2csv.ErrInputNotFound) {
				fmt.Fprintf(env.Stdout, "Error: Input file '%s' not found.\n", r.Path)
			} else {
				fmt.Fprintf(env.Stdout, "An error occurred: %v\n", r.Err)
			}
			continue
		}

		if flags.quiet {
			continue
		}
		if flags.verbose {
			fmt.Fprintf(env.Stdout, "%s: %d rows OK (%s)\n", r.Path, r.Rows, humanize.Bytes(uint64(r.Bytes)))
		} else {
			fmt.Fprintf(env.Stdout, "%s: %d rows OK\n", r.Path, r.Rows)
		}
	}

	if failed == 0 {
		return nil
	}
	if len(paths) == 1 {
		return reportedError{firstErr}
	}
	return reportedError{fmt.Errorf("%d file(s) failed verification: %w", failed, firstErr)}
}

// verifyFile parses every row of the file at path.
func verifyFile(path string) verifyResult {
	result := verifyResult{Path: path}

	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		kind := txt2csv.KindIOFailure
		if errors.Is(err, fs.ErrNotExist) {
			kind = txt2csv.KindInputNotFound
		}
		result.Err = &txt2csv.ConversionError{Kind: kind, Op: "open", Path: path, Err: err}
		return result
	}
	defer func() { _ = f.Close() }()

	if info, err := f.Stat(); err == nil {
		result.Bytes = info.Size()
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64<<10), maxRowSize)
	line := 0
	for scanner.Scan() {
		line++
		if _, err := txt2csv.ParseRow(scanner.Text()); err != nil {
			result.Err = fmt.Errorf("%s line %d: %w", path, line, err)
			return result
		}
		result.Rows++
	}
	if err := scanner.Err(); err != nil {
		result.Err = fmt.Errorf("reading %s: %w", path, err)
	}
	return result
}
