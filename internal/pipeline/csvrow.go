package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRow is returned when a row is not of the form "<field>",.
var ErrMalformedRow = errors.New("malformed row")

// rowSuffix closes the quoted field and leaves an empty second field.
const rowSuffix = `",`

// RowFormatter defines the contract for turning a cleaned line into a CSV row.
// The returned row carries no record terminator.
type RowFormatter interface {
	FormatRow(value string) string
}

// QuotedRowFormatter always quotes its single field and appends a trailing comma.
type QuotedRowFormatter struct{}

// FormatRow formats value as a quoted single-field row.
func (QuotedRowFormatter) FormatRow(value string) string {
	return FormatRow(value)
}

// FormatRow wraps value in double quotes, doubles embedded quotes and appends a comma.
//
//	he said "hi"  ->  "he said ""hi""",
func FormatRow(value string) string {
	var b strings.Builder
	b.Grow(len(value) + len(rowSuffix) + 1 + strings.Count(value, `"`))
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		if value[i] == '"' {
			b.WriteByte('"')
		}
		b.WriteByte(value[i])
	}
	b.WriteString(rowSuffix)
	return b.String()
}

// ParseRow reverses FormatRow. Surrounding \r and \n are ignored.
func ParseRow(row string) (string, error) {
	row = strings.TrimRight(row, "\r\n")
	if len(row) < len(`"`)+len(rowSuffix) || row[0] != '"' || !strings.HasSuffix(row, rowSuffix) {
		return "", fmt.Errorf("%w: %q", ErrMalformedRow, truncate(row))
	}

	body := row[1 : len(row)-len(rowSuffix)]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != '"' {
			b.WriteByte(body[i])
			continue
		}
		if i+1 >= len(body) || body[i+1] != '"' {
			return "", fmt.Errorf("%w: unescaped quote at offset %d", ErrMalformedRow, i+1)
		}
		b.WriteByte('"')
		i++
	}
	return b.String(), nil
}

// maxQuotedRow bounds how much of a bad row ends up in an error message.
const maxQuotedRow = 40

func truncate(s string) string {
	if len(s) <= maxQuotedRow {
		return s
	}
	return s[:maxQuotedRow] + "..."
}
