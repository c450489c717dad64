// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-txt2csv/internal/fileutil"
)

// ForInputNotFound returns hints for a missing input file.
// When a sibling file differs only by extension, it is suggested.
func ForInputNotFound(path string, extensions []string) string {
	base := fileutil.ReplaceExtension(path, "")
	for _, ext := range extensions {
		candidate := base + ext
		if candidate != path && fileutil.FileExists(candidate) {
			return format("did you mean " + candidate + "?")
		}
	}

	if !filepath.IsAbs(path) {
		return format("relative paths are resolved from the current directory; pass the input as an argument")
	}
	return format("pass the input file or directory as an argument")
}

// ForInvalidUTF8 returns a hint for input that is not UTF-8.
func ForInvalidUTF8() string {
	return format("input must be UTF-8; convert it first, e.g. iconv -f LATIN1 -t UTF-8")
}

// ForLineTooLong returns a hint for lines exceeding the scanner limit.
func ForLineTooLong() string {
	return format("raise conversion.maxLineSize in the config file")
}

// ForOutputLocked returns a hint for an output path held by another process.
func ForOutputLocked(path string) string {
	return format("another txt2csv run is writing " + path + "; wait for it or remove a stale " + path + ".lock")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large files, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-txt2csv/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-txt2csv/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
