package txt2csv

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestConversionError_Is(t *testing.T) {
	t.Parallel()

	notFound := &ConversionError{Kind: KindInputNotFound, Op: "open", Path: "a.html", Err: os.ErrNotExist}
	failure := &ConversionError{Kind: KindIOFailure, Op: "read", Path: "a.html", Err: errors.New("eio")}

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"not found matches its sentinel", notFound, ErrInputNotFound, true},
		{"not found does not match io failure", notFound, ErrIOFailure, false},
		{"not found unwraps to os error", notFound, os.ErrNotExist, true},
		{"io failure matches its sentinel", failure, ErrIOFailure, true},
		{"io failure does not match not found", failure, ErrInputNotFound, false},
		{"wrapped not found", fmt.Errorf("batch: %w", notFound), ErrInputNotFound, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConversionError_Error(t *testing.T) {
	t.Parallel()

	withPath := &ConversionError{Kind: KindIOFailure, Op: "read", Path: "in.txt", Err: errors.New("boom")}
	if got := withPath.Error(); got != "read in.txt: boom" {
		t.Errorf("Error() = %q", got)
	}

	noPath := &ConversionError{Kind: KindIOFailure, Op: "write", Err: errors.New("boom")}
	if got := noPath.Error(); got != "write: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind ErrorKind
		wantOK   bool
	}{
		{"nil", nil, 0, false},
		{"plain error", errors.New("x"), 0, false},
		{"not found", &ConversionError{Kind: KindInputNotFound, Err: os.ErrNotExist}, KindInputNotFound, true},
		{"wrapped failure", fmt.Errorf("ctx: %w", ioFailure("read", "", errors.New("x"))), KindIOFailure, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kind, ok := KindOf(tt.err)
			if kind != tt.wantKind || ok != tt.wantOK {
				t.Errorf("KindOf() = (%v, %v), want (%v, %v)", kind, ok, tt.wantKind, tt.wantOK)
			}
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindInputNotFound, "InputNotFound"},
		{KindIOFailure, "IOFailure"},
		{ErrorKind(0), "ErrorKind(0)"},
	}
	for _, tt := range tests {
		tt := tt
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
