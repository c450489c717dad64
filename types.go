package txt2csv

import (
	"time"

	"github.com/alnah/go-txt2csv/internal/pipeline"
)

// Default file names, matching the dataset the converter was written for.
const (
	DefaultInputPath  = "dataset.html"
	DefaultOutputPath = "dataset.csv"
)

// DefaultMaxLineSize bounds a single input line (16 MiB).
const DefaultMaxLineSize = 16 << 20

// filePermissions is applied to committed output files.
const filePermissions = 0o644 // rw-r--r--

// dirPermissions is applied to missing parent directories of an output file.
const dirPermissions = 0o750 // rwxr-x---

// ConvertResult holds per-conversion counters. Rows + Skipped == Lines.
type ConvertResult struct {
	Lines   int   // input lines read
	Rows    int   // rows written
	Skipped int   // lines empty after trimming and sanitizing
	Bytes   int64 // bytes written, terminators included
}

// Sanitizer removes unwanted characters from a line.
type Sanitizer = pipeline.LineSanitizer

// Formatter turns a cleaned line into a CSV row without a terminator.
type Formatter = pipeline.RowFormatter

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout     time.Duration // 0 = none
	maxLineSize int
}

// WithTimeout bounds the duration of each conversion.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("txt2csv: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithMaxLineSize sets the longest accepted input line in bytes.
// Panics if n <= 0.
func WithMaxLineSize(n int) Option {
	if n <= 0 {
		panic("txt2csv: WithMaxLineSize size must be positive")
	}
	return func(c *Converter) {
		c.cfg.maxLineSize = n
	}
}

// WithSanitizer replaces the default control character stripper.
func WithSanitizer(s Sanitizer) Option {
	return func(c *Converter) {
		if s != nil {
			c.sanitizer = s
		}
	}
}

// WithFormatter replaces the default quoted row formatter.
func WithFormatter(f Formatter) Option {
	return func(c *Converter) {
		if f != nil {
			c.formatter = f
		}
	}
}
