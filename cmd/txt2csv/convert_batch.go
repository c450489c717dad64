package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	txt2csv "github.com/alnah/go-txt2csv"
	"github.com/alnah/go-txt2csv/internal/hints"
)

// Sentinel errors for batch operations.
var (
	ErrConverterInit = errors.New("failed to acquire converter")
	ErrCreateDir     = txt2csv.ErrCreateDir
)

// ANSI sequences for failure lines on a terminal.
const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Stats      *txt2csv.ConvertResult
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Results are returned in input order. Durations are measured with now.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, now func() time.Time) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				// No converter available, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath:  files[idx].InputPath,
						OutputPath: files[idx].OutputPath,
						Err:        ErrConverterInit,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath:  files[idx].InputPath,
						OutputPath: files[idx].OutputPath,
						Err:        ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], now)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, now func() time.Time) ConversionResult {
	start := now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	result.Stats, result.Err = conv.ConvertFile(ctx, f.InputPath, f.OutputPath)
	result.Duration = now().Sub(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// resultPrinter writes per-file outcome lines and the batch summary.
type resultPrinter struct {
	w          io.Writer // outcome messages
	hintW      io.Writer // hints for failures; nil drops them
	quiet      bool
	verbose    bool
	color      bool
	extensions []string // for "did you mean" hints
}

func newResultPrinter(env *Environment, quiet, verbose bool, extensions []string) *resultPrinter {
	return &resultPrinter{
		w:          env.Stdout,
		hintW:      env.Stderr,
		quiet:      quiet,
		verbose:    verbose,
		color:      shouldColorize(env.Stdout),
		extensions: extensions,
	}
}

// print outputs every result and returns the tally. Failures are always shown,
// one message line each; their hints go to hintW.
func (p *resultPrinter) print(results []ConversionResult) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			p.printFailure(r)
			continue
		}

		if p.quiet {
			continue
		}

		if p.verbose && r.Stats != nil {
			fmt.Fprintf(p.w, "%s -> %s (%d rows, %d skipped, %s, %v)\n",
				r.InputPath, r.OutputPath, r.Stats.Rows, r.Stats.Skipped,
				humanize.Bytes(uint64(max(r.Stats.Bytes, 0))), r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(p.w, "Successfully converted '%s' to '%s' with character cleaning.\n", r.InputPath, r.OutputPath)
		}
	}

	if !p.quiet && len(results) > 1 {
		fmt.Fprintf(p.w, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary
}

func (p *resultPrinter) printFailure(r ConversionResult) {
	var msg string
	if errors.Is(r.Err, txt2csv.ErrInputNotFound) {
		msg = fmt.Sprintf("Error: Input file '%s' not found.", r.InputPath)
	} else {
		msg = fmt.Sprintf("An error occurred: %v", r.Err)
	}
	if p.color {
		msg = colorRed + msg + colorReset
	}
	fmt.Fprintln(p.w, msg)
	if hint := p.hintFor(r); hint != "" && p.hintW != nil {
		fmt.Fprintln(p.hintW, strings.TrimPrefix(hint, "\n"))
	}
}

// hintFor returns an actionable hint for a failed result, or "".
func (p *resultPrinter) hintFor(r ConversionResult) string {
	switch {
	case errors.Is(r.Err, txt2csv.ErrInputNotFound):
		return hints.ForInputNotFound(r.InputPath, p.extensions)
	case errors.Is(r.Err, txt2csv.ErrInvalidUTF8):
		return hints.ForInvalidUTF8()
	case errors.Is(r.Err, txt2csv.ErrLineTooLong):
		return hints.ForLineTooLong()
	case errors.Is(r.Err, txt2csv.ErrOutputLocked):
		return hints.ForOutputLocked(r.OutputPath)
	case errors.Is(r.Err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(r.Err, ErrCreateDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// shouldColorize reports whether w is a terminal that accepts ANSI colors.
// NO_COLOR disables colors regardless of the terminal.
func shouldColorize(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
