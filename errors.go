package txt2csv

import (
	"errors"
	"fmt"

	"github.com/alnah/go-txt2csv/internal/fileutil"
	"github.com/alnah/go-txt2csv/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrInputNotFound matches any ConversionError of kind KindInputNotFound.
	ErrInputNotFound = errors.New("input file not found")
	// ErrIOFailure matches any ConversionError of kind KindIOFailure.
	ErrIOFailure = errors.New("conversion failed")

	ErrInvalidUTF8  = errors.New("input is not valid UTF-8")
	ErrLineTooLong  = errors.New("line exceeds maximum size")
	ErrCreateDir    = errors.New("failed to create output directory")
	ErrOutputLocked = fileutil.ErrLocked
	ErrMalformedRow = pipeline.ErrMalformedRow
)

// ErrorKind tags why a conversion failed.
type ErrorKind int

// Error kinds. The zero value is not a valid kind.
const (
	KindInputNotFound ErrorKind = iota + 1
	KindIOFailure
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindInputNotFound:
		return "InputNotFound"
	case KindIOFailure:
		return "IOFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ConversionError is returned by every failing Convert and ConvertFile call.
// Every failure aborts the conversion; none is retried.
type ConversionError struct {
	Kind ErrorKind
	Op   string // "open", "mkdir", "create", "read", "decode", "write", "commit"
	Path string // empty for stream conversions
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ConversionError) Is(target error) bool {
	switch target {
	case ErrInputNotFound:
		return e.Kind == KindInputNotFound
	case ErrIOFailure:
		return e.Kind == KindIOFailure
	}
	return false
}

// KindOf returns the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

func ioFailure(op, path string, err error) *ConversionError {
	return &ConversionError{Kind: KindIOFailure, Op: op, Path: path, Err: err}
}
