package store

import (
	"fmt"
	"strings"

	"github.com/archaeo-tools/archaeo/internal/row"
)

const (
	regularTable  = "regular_rows"
	extendedTable = "extended_rows"
)

// filesSQL tracks every stored file. variant names the table holding its rows.
const filesSQL = `
CREATE TABLE IF NOT EXISTS files (
    source_file TEXT PRIMARY KEY,
    language TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    variant TEXT NOT NULL,
    row_count INTEGER NOT NULL
);
`

// sqlNames maps columns whose names differ from another column only by case.
// SQLite identifiers are case-insensitive.
var sqlNames = map[string]string{
	"halstead_N1": "halstead_total_n1",
	"halstead_N2": "halstead_total_n2",
}

// ColumnName returns the SQL column storing a row column.
func ColumnName(column string) string {
	if name, ok := sqlNames[column]; ok {
		return name
	}
	return column
}

// tableSQL returns the DDL of a row table. Rows keep their pre-order
// position in ordinal.
func tableSQL(table string, columns []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", table)
	b.WriteString("    ordinal INTEGER NOT NULL,\n")
	for i, col := range columns {
		b.WriteString("    ")
		b.WriteString(ColumnName(col))
		switch {
		case col == "start_line" || col == "end_line":
			b.WriteString(" INTEGER NOT NULL")
		case col == "source_file" || col == "kind":
			b.WriteString(" TEXT NOT NULL")
		case i < row.IdentityColumns():
			b.WriteString(" TEXT")
		default:
			b.WriteString(" REAL NOT NULL")
		}
		b.WriteString(",\n")
	}
	b.WriteString("    PRIMARY KEY (source_file, ordinal)\n);\n")
	fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS idx_%s_kind ON %s(kind);\n", table, table)
	return b.String()
}

// insertSQL returns the parameterized INSERT statement of a row table.
func insertSQL(table string, columns []string) string {
	names := make([]string, 0, len(columns)+1)
	names = append(names, "ordinal")
	for _, col := range columns {
		names = append(names, ColumnName(col))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(names, ", "), placeholders)
}

func tableFor(v row.Variant) (string, []string) {
	if v == row.VariantExtended {
		return extendedTable, row.ExtendedColumns
	}
	return regularTable, row.RegularColumns
}

// initSchema creates the database tables and indexes if they don't exist.
func (s *Store) initSchema() error {
	ddl := filesSQL +
		tableSQL(regularTable, row.RegularColumns) +
		tableSQL(extendedTable, row.ExtendedColumns)
	_, err := s.db.Exec(ddl)
	return err
}
