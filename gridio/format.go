// SPDX-License-Identifier: MIT

package gridio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the value delimiter.
type Format int

const (
	// FormatAuto detects the delimiter from the first data line when reading
	// and writes whitespace-separated values.
	FormatAuto Format = iota
	// FormatWhitespace separates values with spaces (tabs accepted on read).
	FormatWhitespace
	// FormatCSV separates values with commas.
	FormatCSV
)

// String returns the config name of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatWhitespace:
		return "whitespace"
	case FormatCSV:
		return "csv"
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps "auto", "whitespace" or "csv" to a Format.
// Errors: ErrUnknownFormat.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "whitespace", "ws", "txt":
		return FormatWhitespace, nil
	case "csv":
		return FormatCSV, nil
	}

	return FormatAuto, fmt.Errorf("gridio: %q: %w", s, ErrUnknownFormat)
}

// FormatForPath resolves FormatAuto from a file extension: ".csv" means
// FormatCSV, anything else leaves f unchanged.
func FormatForPath(path string, f Format) Format {
	if f == FormatAuto && strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}

	return f
}
