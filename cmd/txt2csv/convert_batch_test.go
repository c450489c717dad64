package main

// Notes:
// - convertBatch: we test ordering, concurrency bound by files, a nil
//   converter from the pool, and context cancellation, with a mock pool.
// - resultPrinter: we test the three message classes, quiet and verbose
//   modes, hints, and the batch summary. Colors are off for buffers.
// These are acceptable gaps: terminal detection needs a real tty.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	txt2csv "github.com/alnah/go-txt2csv"
)

// ---------------------------------------------------------------------------
// TestConvertBatch - Worker pool orchestration
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	files := []FileToConvert{
		{InputPath: "a.txt", OutputPath: "a.csv"},
		{InputPath: "b.txt", OutputPath: "b.csv"},
		{InputPath: "c.txt", OutputPath: "c.csv"},
	}
	clock := func() time.Time { return fixedTime }

	t.Run("results keep input order", func(t *testing.T) {
		t.Parallel()

		conv := &mockConverter{result: &txt2csv.ConvertResult{Rows: 1}}
		results := convertBatch(context.Background(), &mockPool{conv: conv, size: 2}, files, clock)

		if len(results) != len(files) {
			t.Fatalf("len(results) = %d, want %d", len(results), len(files))
		}
		for i, r := range results {
			if r.InputPath != files[i].InputPath || r.OutputPath != files[i].OutputPath {
				t.Errorf("result[%d] = %s -> %s", i, r.InputPath, r.OutputPath)
			}
			if r.Err != nil || r.Stats == nil || r.Stats.Rows != 1 {
				t.Errorf("result[%d] = %+v", i, r)
			}
		}
		if len(conv.calls) != len(files) {
			t.Errorf("converter called %d times, want %d", len(conv.calls), len(files))
		}
	})

	t.Run("converter errors are per file", func(t *testing.T) {
		t.Parallel()

		conv := &mockConverter{err: errors.New("boom")}
		results := convertBatch(context.Background(), &mockPool{conv: conv, size: 1}, files, clock)

		if got := countResults(results); got.Failed != 3 || got.Succeeded != 0 {
			t.Errorf("summary = %+v", got)
		}
	})

	t.Run("nil converter fails remaining jobs", func(t *testing.T) {
		t.Parallel()

		results := convertBatch(context.Background(), &mockPool{conv: nil, size: 2}, files, clock)
		for i, r := range results {
			if !errors.Is(r.Err, ErrConverterInit) {
				t.Errorf("result[%d].Err = %v, want ErrConverterInit", i, r.Err)
			}
		}
	})

	t.Run("canceled context skips conversions", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		conv := &mockConverter{result: &txt2csv.ConvertResult{}}
		results := convertBatch(ctx, &mockPool{conv: conv, size: 2}, files, clock)

		for i, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("result[%d].Err = %v, want context.Canceled", i, r.Err)
			}
		}
		if len(conv.calls) != 0 {
			t.Errorf("converter called %d times after cancel", len(conv.calls))
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		if results := convertBatch(context.Background(), &mockPool{size: 1}, nil, clock); results != nil {
			t.Errorf("results = %v, want nil", results)
		}
	})
}

func TestConvertFile_CreatesOutputDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "row\n")
	out := filepath.Join(dir, "deep", "er", "out.csv")

	conv := txt2csv.NewConverter()
	r := convertFile(context.Background(), conv, FileToConvert{InputPath: in, OutputPath: out}, time.Now)

	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if got := readFile(t, out); got != "\"row\",\n" {
		t.Errorf("output = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestResultPrinter - User-facing messages
// ---------------------------------------------------------------------------

func newTestPrinter(quiet, verbose bool) (*resultPrinter, *bytes.Buffer, *bytes.Buffer) {
	var buf, hintBuf bytes.Buffer
	return &resultPrinter{w: &buf, hintW: &hintBuf, quiet: quiet, verbose: verbose, extensions: []string{".html", ".txt"}}, &buf, &hintBuf
}

func TestResultPrinter(t *testing.T) {
	t.Parallel()

	ok := ConversionResult{
		InputPath:  "in.html",
		OutputPath: "in.csv",
		Stats:      &txt2csv.ConvertResult{Lines: 5, Rows: 3, Skipped: 2, Bytes: 2048},
		Duration:   1500 * time.Millisecond,
	}
	notFound := ConversionResult{
		InputPath:  "gone.html",
		OutputPath: "gone.csv",
		Err:        &txt2csv.ConversionError{Kind: txt2csv.KindInputNotFound, Op: "open", Path: "gone.html", Err: fs.ErrNotExist},
	}
	generic := ConversionResult{
		InputPath:  "bad.txt",
		OutputPath: "bad.csv",
		Err:        &txt2csv.ConversionError{Kind: txt2csv.KindIOFailure, Op: "decode", Path: "bad.txt", Err: fmt.Errorf("%w: line 1", txt2csv.ErrInvalidUTF8)},
	}

	tests := []struct {
		name       string
		results    []ConversionResult
		quiet      bool
		verbose    bool
		wantFailed int
		want       []string
		notWant    []string
		wantHint   string
	}{
		{
			name:    "success message",
			results: []ConversionResult{ok},
			want:    []string{"Successfully converted 'in.html' to 'in.csv' with character cleaning.\n"},
			notWant: []string{"succeeded"},
		},
		{
			name:    "verbose shows stats",
			results: []ConversionResult{ok},
			verbose: true,
			want:    []string{"in.html -> in.csv (3 rows, 2 skipped, 2.0 kB, 1.5s)"},
		},
		{
			name:    "quiet hides success",
			results: []ConversionResult{ok},
			quiet:   true,
			notWant: []string{"Successfully"},
		},
		{
			name:       "input not found",
			results:    []ConversionResult{notFound},
			wantFailed: 1,
			want:       []string{"Error: Input file 'gone.html' not found.\n"},
			notWant:    []string{"hint:"},
			wantHint:   "hint:",
		},
		{
			name:       "generic failure with hint",
			results:    []ConversionResult{generic},
			quiet:      true,
			wantFailed: 1,
			want:       []string{"An error occurred: decode bad.txt: input is not valid UTF-8: line 1\n"},
			wantHint:   "iconv",
		},
		{
			name:       "batch summary",
			results:    []ConversionResult{ok, notFound, generic},
			wantFailed: 2,
			want:       []string{"\n1 succeeded, 2 failed\n"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, buf, hintBuf := newTestPrinter(tt.quiet, tt.verbose)
			summary := p.print(tt.results)

			if summary.Failed != tt.wantFailed {
				t.Errorf("Failed = %d, want %d", summary.Failed, tt.wantFailed)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
			if !strings.Contains(hintBuf.String(), tt.wantHint) {
				t.Errorf("hints = %q, want %q", hintBuf.String(), tt.wantHint)
			}
		})
	}
}

func TestResultPrinter_Color(t *testing.T) {
	t.Parallel()

	p, buf, _ := newTestPrinter(false, false)
	p.color = true
	p.print([]ConversionResult{{InputPath: "x", Err: errors.New("boom")}})

	if !strings.HasPrefix(buf.String(), colorRed+"An error occurred: boom"+colorReset) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestShouldColorize_NonFile(t *testing.T) {
	t.Parallel()

	if shouldColorize(&bytes.Buffer{}) {
		t.Error("buffers must never be colorized")
	}
}
