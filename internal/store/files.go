package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/archaeo-tools/archaeo/internal/row"
)

// FileEntry describes a stored file.
type FileEntry struct {
	SourceFile  string
	Language    string
	ContentHash string
	Variant     string
	RowCount    int
}

// ReplaceFile stores the rows of one file, replacing any rows previously
// stored for the same file in either schema.
func (s *Store) ReplaceFile(ctx context.Context, entry FileEntry, set *row.Set) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{regularTable, extendedTable} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE source_file = ?", entry.SourceFile); err != nil {
			return fmt.Errorf("clear %s for %s: %w", table, entry.SourceFile, err)
		}
	}

	table, columns := tableFor(set.Variant)
	stmt, err := tx.PrepareContext(ctx, insertSQL(table, columns))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < set.Len(); i++ {
		id, values := set.Values(i)
		args := make([]any, 0, len(columns)+1)
		args = append(args,
			i,
			nullable(id.Name),
			entry.SourceFile,
			id.StartLine,
			id.EndLine,
			id.Kind,
			nullable(id.ParentName),
		)
		for _, v := range values {
			args = append(args, v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d of %s: %w", i, entry.SourceFile, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO files (source_file, language, content_hash, variant, row_count)
		VALUES (?, ?, ?, ?, ?)`,
		entry.SourceFile, entry.Language, entry.ContentHash, set.Variant.String(), set.Len(),
	)
	if err != nil {
		return fmt.Errorf("record file %s: %w", entry.SourceFile, err)
	}

	return tx.Commit()
}

// GetFile retrieves a stored file entry.
// Returns sql.ErrNoRows if the file has not been stored.
func (s *Store) GetFile(ctx context.Context, sourceFile string) (*FileEntry, error) {
	var entry FileEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT source_file, language, content_hash, variant, row_count
		FROM files WHERE source_file = ?`, sourceFile,
	).Scan(&entry.SourceFile, &entry.Language, &entry.ContentHash, &entry.Variant, &entry.RowCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get file %s: %w", sourceFile, err)
	}
	return &entry, nil
}

// Stats summarizes the database contents.
type Stats struct {
	Files        int64
	RegularRows  int64
	ExtendedRows int64
}

// GetStats returns statistics about the database contents.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	counts := []struct {
		table string
		dst   *int64
	}{
		{"files", &stats.Files},
		{regularTable, &stats.RegularRows},
		{extendedTable, &stats.ExtendedRows},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return &stats, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// ContentHash returns the hex SHA-256 of a file's content.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
