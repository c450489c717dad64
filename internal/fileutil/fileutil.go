// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionNoDot         = errors.New("extension must start with a dot")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// ValidateExtension checks that ext looks like ".html": a leading dot and no
// path separators or null bytes.
func ValidateExtension(ext string) error {
	if ext == "" {
		return ErrExtensionEmpty
	}
	if !strings.HasPrefix(ext, ".") || len(ext) == 1 {
		return fmt.Errorf("%w: %q", ErrExtensionNoDot, ext)
	}
	if strings.ContainsAny(ext, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// HasExtension reports whether path ends in one of exts. Comparison is case-insensitive.
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ReplaceExtension swaps the extension of path for ext.
//
// Examples:
//   - ("data/page.html", ".csv") -> "data/page.csv"
//   - ("notes", ".csv") -> "notes.csv"
//   - ("archive.tar.gz", ".csv") -> "archive.tar.csv"
func ReplaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "txt2csv" -> false (name)
//   - "./txt2csv.yaml" -> true (relative path)
//   - "/etc/txt2csv.yaml" -> true (absolute)
//   - "C:\config\txt2csv.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
