package main

import (
	"errors"
	"os"

	txt2csv "github.com/alnah/go-txt2csv"
	"github.com/alnah/go-txt2csv/internal/config"
)

// Exit codes for txt2csv CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or malformed CSV rows
	ExitIO      = 3 // File not found, permission denied, output locked
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, txt2csv.ErrInputNotFound) ||
		errors.Is(err, txt2csv.ErrOutputLocked) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrOutputNotDir) ||
		errors.Is(err, ErrSameInputOutput) ||
		errors.Is(err, ErrOutputCollision) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, txt2csv.ErrMalformedRow) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) {
		return ExitUsage
	}

	return ExitGeneral
}
