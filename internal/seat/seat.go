// Package seat converts between human seat labels and zero-based grid
// positions.  A label is an uppercase row letter followed by a
// one-based column number: grid position (1, 16) is "B17".  The codec
// performs no bounds checking against any particular venue; callers
// must ensure a decoded position fits the venue's seat grid.
package seat

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrFormat is wrapped by all label parse failures.
var ErrFormat = errors.New("seat label must be a letter followed by digits")

// ParseLabel decodes a seat label into a zero-based (row, col) grid
// position.  The row is the letter's offset from 'A'; the column is
// the numeric remainder minus one.
func ParseLabel(label string) (row, col int, err error) {
	if len(label) < 2 {
		return 0, 0, fmt.Errorf("parse seat %q: %w", label, ErrFormat)
	}
	r := label[0]
	if r < 'A' || r > 'Z' {
		return 0, 0, fmt.Errorf("parse seat %q: %w", label, ErrFormat)
	}
	n, convErr := strconv.Atoi(label[1:])
	if convErr != nil || n < 1 {
		return 0, 0, fmt.Errorf("parse seat %q: %w", label, ErrFormat)
	}
	return int(r - 'A'), n - 1, nil
}

// FormatLabel is the inverse of ParseLabel: it encodes a zero-based
// (row, col) grid position as a seat label.
func FormatLabel(row, col int) string {
	return string(rune('A'+row)) + strconv.Itoa(col+1)
}
