package pipeline

import (
	"bytes"
	"strings"
	"unicode"
)

// SplitLines is a bufio.SplitFunc that recognizes \n, \r\n and a lone \r as
// line endings. Returned tokens never contain the terminator. A final line
// without a terminator is still returned.
func SplitLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// \r at the end of the buffer may be the first half of \r\n.
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// TrimLine removes leading and trailing white space. The file, group, record
// and unit separators (U+001C to U+001F) count as white space here, as they
// do for most line-oriented text tools.
func TrimLine(s string) string {
	return strings.TrimFunc(s, isLineSpace)
}

func isLineSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
