package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/archaeo-tools/archaeo/internal/row"
	"github.com/archaeo-tools/archaeo/internal/space"
)

// ErrTreeUnsupported is returned when a format cannot encode the space tree.
var ErrTreeUnsupported = errors.New("format cannot encode the space tree")

// Formatter writes metrics in one output format.
type Formatter interface {
	// WriteRows writes a flattened row set.
	WriteRows(w io.Writer, set *row.Set) error

	// WriteTree writes the unflattened space tree rooted at root.
	WriteTree(w io.Writer, root *space.Space) error
}

// CSVFormatter formats rows as CSV with a header line.
type CSVFormatter struct{}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// WriteRows writes the header followed by one record per row. An empty set
// produces the header alone.
func (f *CSVFormatter) WriteRows(w io.Writer, set *row.Set) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(set.Header()); err != nil {
		return err
	}
	// WriteAll flushes and reports any buffered error.
	return cw.WriteAll(set.Records())
}

// WriteTree always fails: the tree has no tabular form.
func (f *CSVFormatter) WriteTree(w io.Writer, root *space.Space) error {
	return ErrTreeUnsupported
}

// JSONFormatter formats rows and trees as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// WriteRows writes the rows as a JSON array, "[]" when empty.
func (f *JSONFormatter) WriteRows(w io.Writer, set *row.Set) error {
	return f.encode(w, set.Rows())
}

// WriteTree writes the space tree as a nested JSON object.
func (f *JSONFormatter) WriteTree(w io.Writer, root *space.Space) error {
	return f.encode(w, root)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// GetFormatter returns the formatter for the given format.
func GetFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatCSV:
		return NewCSVFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}
}
