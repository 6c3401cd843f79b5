package output

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned by ParseFormat for unknown format names.
var ErrInvalidFormat = errors.New("invalid format")

// Format represents the output format type.
type Format string

const (
	// FormatCSV is the default tabular output.
	FormatCSV Format = "csv"

	// FormatJSON is the JSON output format, flattened or hierarchical.
	FormatJSON Format = "json"
)

// DefaultFormat is the default output format when none is specified.
const DefaultFormat = FormatCSV

// ParseFormat parses a format string into a Format value.
// Accepts: "csv", "json" (case-insensitive)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (expected csv or json)", ErrInvalidFormat, s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension for the format, with the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// SupportsTree reports whether the format can encode the unflattened tree.
func (f Format) SupportsTree() bool {
	return f == FormatJSON
}
