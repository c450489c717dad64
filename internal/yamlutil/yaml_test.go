package yamlutil_test

// Notes:
// - Encode's marshal error branch is not tested: go-yaml only fails on
//   unmarshalable types (channels, functions), which no caller passes.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-txt2csv/internal/yamlutil"
)

type testConfig struct {
	Name    string   `yaml:"name"`
	Count   int      `yaml:"count"`
	Enabled bool     `yaml:"enabled"`
	Tags    []string `yaml:"tags,omitempty"`
}

// ---------------------------------------------------------------------------
// TestDecodeStrict - Parses YAML into Go structs
// ---------------------------------------------------------------------------

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		dest    any
		wantErr error
		wantAny bool
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: "name: test\ncount: 42\nenabled: true\ntags: [a, b]",
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Name != "test" || cfg.Count != 42 || !cfg.Enabled {
					t.Errorf("got %+v", cfg)
				}
				if len(cfg.Tags) != 2 || cfg.Tags[1] != "b" {
					t.Errorf("Tags = %v", cfg.Tags)
				}
			},
		},
		{
			name:    "empty data",
			data:    "",
			dest:    &testConfig{},
			wantErr: yamlutil.ErrEmptyData,
		},
		{
			name:    "nil destination",
			data:    "name: x",
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "unknown field rejected",
			data:    "name: x\nbogus: 1",
			dest:    &testConfig{},
			wantAny: true,
		},
		{
			name:    "invalid syntax",
			data:    "name: [unclosed",
			dest:    &testConfig{},
			wantAny: true,
		},
		{
			name:    "type mismatch",
			data:    "count: many",
			dest:    &testConfig{},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.DecodeStrict(strings.NewReader(tt.data), tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantAny:
				if err == nil {
					t.Fatal("DecodeStrict() expected error, got nil")
				}
			default:
				if err != nil {
					t.Fatalf("DecodeStrict() unexpected error: %v", err)
				}
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestDecodeStrict_TooLarge(t *testing.T) {
	// Not parallel: modifies the package-level MaxInputSize.
	orig := yamlutil.MaxInputSize
	yamlutil.MaxInputSize = 16
	defer func() { yamlutil.MaxInputSize = orig }()

	err := yamlutil.DecodeStrict(strings.NewReader("name: "+strings.Repeat("x", 32)), &testConfig{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("DecodeStrict() error = %v, want ErrInputTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadFile - Reads from disk
// ---------------------------------------------------------------------------

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "c.yaml")
	if err := os.WriteFile(path, []byte("name: disk\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	if err := yamlutil.LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Name != "disk" {
		t.Errorf("Name = %q, want %q", cfg.Name, "disk")
	}

	err := yamlutil.LoadFile(filepath.Join(dir, "missing.yaml"), &cfg)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestEncode - Round trip through YAML
// ---------------------------------------------------------------------------

func TestEncode(t *testing.T) {
	t.Parallel()

	in := testConfig{Name: "round", Count: 3, Enabled: true}

	var buf bytes.Buffer
	if err := yamlutil.Encode(&buf, in); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), "name: round") {
		t.Errorf("Encode() output = %q", buf.String())
	}
	if strings.Contains(buf.String(), "tags") {
		t.Errorf("omitempty field written: %q", buf.String())
	}

	var out testConfig
	if err := yamlutil.DecodeStrict(&buf, &out); err != nil {
		t.Fatalf("DecodeStrict() error = %v", err)
	}
	if out.Name != in.Name || out.Count != in.Count || out.Enabled != in.Enabled {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
