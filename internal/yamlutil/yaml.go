// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyData      = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// LoadFile reads path and decodes it into v, rejecting unknown fields.
// Open errors are returned as is, so errors.Is(err, os.ErrNotExist) holds.
func LoadFile(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return DecodeStrict(f, v)
}

// DecodeStrict reads at most MaxInputSize bytes from r and decodes them into v.
// Unknown fields are an error.
func DecodeStrict(r io.Reader, v any) error {
	if v == nil {
		return ErrNilDestination
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading: %w", err)
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, MaxInputSize)
	}
	if len(data) == 0 {
		return ErrEmptyData
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode writes v to w as YAML with two-space indentation.
func Encode(w io.Writer, v any) error {
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(2))
	if err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("yamlutil: writing: %w", err)
	}
	return nil
}
