package pipeline

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// assigned holds every code point that has a general category other than Cn.
// Cn has no table of its own, so it is the complement of this union.
var assigned = rangetable.Merge(
	unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C,
)

// LineSanitizer defines the contract for removing unwanted characters from a line.
type LineSanitizer interface {
	Sanitize(line string) string
}

// ControlStripper removes code points in Unicode category C (Cc, Cf, Cs, Co, Cn).
// Tab, line feed and carriage return are always kept.
type ControlStripper struct{}

// Sanitize returns line without control, format, private-use and unassigned code points.
func (ControlStripper) Sanitize(line string) string {
	return Sanitize(line)
}

// Sanitize removes every category C code point from s except \t, \n and \r.
// The relative order of the remaining code points is unchanged.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		if IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// IsControl reports whether r is dropped by Sanitize.
func IsControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return unicode.Is(unicode.C, r) || !unicode.Is(assigned, r)
}
