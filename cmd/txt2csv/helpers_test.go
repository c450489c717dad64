package main

// Notes:
// - This file contains test helpers shared across command tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	txt2csv "github.com/alnah/go-txt2csv"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment
// ---------------------------------------------------------------------------

// fixedTime is the clock used by testEnv.
var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// testEnv returns an Environment writing into buffers with a frozen clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return fixedTime },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// readFile returns the content of path, failing the test on error.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter and pool
// ---------------------------------------------------------------------------

// mockConverter records calls and returns a canned result.
type mockConverter struct {
	mu     sync.Mutex
	calls  []string
	result *txt2csv.ConvertResult
	err    error
}

func (m *mockConverter) ConvertFile(_ context.Context, inputPath, _ string) (*txt2csv.ConvertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, inputPath)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockPool hands out the same converter to every worker.
type mockPool struct {
	conv CLIConverter
	size int
}

func (p *mockPool) Acquire() CLIConverter  { return p.conv }
func (p *mockPool) Release(_ CLIConverter) {}
func (p *mockPool) Size() int              { return p.size }

// fileExists reports whether path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
