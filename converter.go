package txt2csv

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/alnah/go-txt2csv/internal/fileutil"
	"github.com/alnah/go-txt2csv/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.LineSanitizer = pipeline.ControlStripper{}
	_ pipeline.RowFormatter  = pipeline.QuotedRowFormatter{}
)

// initialBufferSize is the scanner buffer before it grows toward maxLineSize.
const initialBufferSize = 64 << 10

// terminatorSlack leaves room in the scan buffer for a \r\n after a line of
// exactly maxLineSize bytes.
const terminatorSlack = 2

// Converter runs the line-by-line text to CSV transform.
// A Converter holds no per-conversion state and is safe for concurrent use.
type Converter struct {
	cfg       converterConfig
	sanitizer pipeline.LineSanitizer
	formatter pipeline.RowFormatter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithMaxLineSize).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg:       converterConfig{maxLineSize: DefaultMaxLineSize},
		sanitizer: pipeline.ControlStripper{},
		formatter: pipeline.QuotedRowFormatter{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads lines from r and writes one row per non-blank line to w.
// Lines are trimmed, then sanitized; lines left empty are skipped.
// Every error is a *ConversionError of kind KindIOFailure. On error the
// returned result holds the counters reached so far and w may have received
// partial output; use ConvertFile for all-or-nothing output files.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) (result *ConvertResult, err error) {
	result = &ConvertResult{}
	defer func() {
		if rec := recover(); rec != nil {
			err = ioFailure("convert", "", fmt.Errorf("internal error: %v", rec))
		}
	}()

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	scanner := bufio.NewScanner(r)
	maxToken := c.cfg.maxLineSize + terminatorSlack
	scanner.Buffer(make([]byte, 0, min(initialBufferSize, maxToken)), maxToken)
	scanner.Split(pipeline.SplitLines)
	bw := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return result, ioFailure("convert", "", err)
		}
		result.Lines++

		line := scanner.Bytes()
		if len(line) > c.cfg.maxLineSize {
			return result, ioFailure("read", "", c.lineTooLong(result.Lines))
		}
		if !utf8.Valid(line) {
			return result, ioFailure("decode", "", fmt.Errorf("%w: line %d", ErrInvalidUTF8, result.Lines))
		}

		cleaned := c.sanitizer.Sanitize(pipeline.TrimLine(string(line)))
		if cleaned == "" {
			result.Skipped++
			continue
		}

		n, err := bw.WriteString(c.formatter.FormatRow(cleaned))
		if err == nil {
			err = bw.WriteByte('\n')
			n++
		}
		if err != nil {
			return result, ioFailure("write", "", err)
		}
		result.Rows++
		result.Bytes += int64(n)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = c.lineTooLong(result.Lines + 1)
		}
		return result, ioFailure("read", "", err)
	}

	if err := bw.Flush(); err != nil {
		return result, ioFailure("write", "", err)
	}
	return result, nil
}

func (c *Converter) lineTooLong(line int) error {
	return fmt.Errorf("%w: line %d is longer than %d bytes", ErrLineTooLong, line, c.cfg.maxLineSize)
}

// ConvertFile converts inputPath into outputPath.
//
// A missing input fails with KindInputNotFound before the output path is
// touched. Missing parent directories of outputPath are created once the
// input is open. The output is written to a locked temporary file next to
// outputPath and renamed over it only when the whole input converted; on any
// failure outputPath keeps its previous content (or stays absent).
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) (*ConvertResult, error) {
	in, err := os.Open(inputPath) // #nosec G304 -- caller-provided path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConversionError{Kind: KindInputNotFound, Op: "open", Path: inputPath, Err: err}
		}
		return nil, ioFailure("open", inputPath, err)
	}
	defer func() { _ = in.Close() }()

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, ioFailure("mkdir", outputPath, fmt.Errorf("%w: %w", ErrCreateDir, err))
		}
	}

	out, err := fileutil.CreateAtomic(outputPath, filePermissions)
	if err != nil {
		return nil, ioFailure("create", outputPath, err)
	}
	defer func() { _ = out.Abort() }()

	result, err := c.Convert(ctx, in, out)
	if err != nil {
		var ce *ConversionError
		if errors.As(err, &ce) && ce.Path == "" {
			ce.Path = pathForOp(ce.Op, inputPath, outputPath)
		}
		return result, err
	}

	if err := out.Commit(); err != nil {
		return result, ioFailure("commit", outputPath, err)
	}
	return result, nil
}

// pathForOp names the file an operation failed on.
func pathForOp(op, inputPath, outputPath string) string {
	if op == "write" {
		return outputPath
	}
	return inputPath
}

// Sanitize removes Unicode category C code points from s, except tab, line
// feed and carriage return.
func Sanitize(s string) string {
	return pipeline.Sanitize(s)
}

// FormatRow formats value as a single quoted CSV field followed by a comma.
// No record terminator is appended.
func FormatRow(value string) string {
	return pipeline.FormatRow(value)
}

// ParseRow reverses FormatRow. It fails with ErrMalformedRow when row does
// not have the "<field>", shape.
func ParseRow(row string) (string, error) {
	return pipeline.ParseRow(row)
}
