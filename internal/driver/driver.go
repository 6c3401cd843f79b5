// Package driver runs the source command: it resolves the input files,
// analyzes each one and writes its metrics to the output directory.
package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/archaeo-tools/archaeo/internal/analyze"
	"github.com/archaeo-tools/archaeo/internal/discover"
	"github.com/archaeo-tools/archaeo/internal/exclude"
	"github.com/archaeo-tools/archaeo/internal/logging"
	"github.com/archaeo-tools/archaeo/internal/output"
	"github.com/archaeo-tools/archaeo/internal/parser"
	"github.com/archaeo-tools/archaeo/internal/row"
	"github.com/archaeo-tools/archaeo/internal/space"
	"github.com/archaeo-tools/archaeo/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DirMode is the permission of created output directories.
const DirMode = 0o755

// Engine computes the space tree of one source file. A nil space with a nil
// error means the engine found nothing to measure.
type Engine interface {
	Analyze(ctx context.Context, lang parser.Language, source []byte, path string) (*space.Space, error)
}

// Options configures Run.
type Options struct {
	// Path is the file or directory to scan.
	Path string
	// OutputPath is the directory receiving one output file per input.
	OutputPath string
	// Format selects CSV or JSON output.
	Format output.Format
	// NoFlatten writes the space tree instead of rows. Requires JSON.
	NoFlatten bool
	// Extended selects the extended row schema.
	Extended bool
	// WithUnit also emits a row for the translation unit itself.
	WithUnit bool
	// Workers bounds the number of files processed at once.
	// Zero means runtime.NumCPU().
	Workers int
	// Exclude holds gitignore-style patterns applied to directory scans.
	Exclude []string
	// Database is the path of a SQLite database that also receives every
	// file's rows. Empty disables it.
	Database string
	// Engine computes metrics. Nil uses the tree-sitter engine.
	Engine Engine
	// Log receives progress and diagnostics. Nil discards them.
	Log logrus.FieldLogger
}

// Run processes every input file. Files are handled concurrently; once a
// file fails, files not yet started are skipped and the first error is
// returned after in-flight files finish.
func Run(ctx context.Context, opts Options) error {
	opts = normalize(opts)
	log := opts.Log

	files, err := inputs(opts)
	if err != nil {
		return err
	}

	if _, err := os.Stat(opts.OutputPath); os.IsNotExist(err) {
		log.WithField("path", opts.OutputPath).Info("output path does not exist, creating")
	}
	if err := os.MkdirAll(opts.OutputPath, DirMode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputDirCreation, opts.OutputPath, err)
	}

	formatter, err := output.GetFormatter(opts.Format)
	if err != nil {
		return err
	}

	p := &processor{opts: opts, formatter: formatter, log: log}
	if opts.Database != "" {
		db, err := store.Open(opts.Database)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDatabase, opts.Database, err)
		}
		defer db.Close()
		p.db = db
	}

	var failed atomic.Bool
	g := new(errgroup.Group)
	g.SetLimit(opts.Workers)
	for _, path := range files {
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			if err := p.process(ctx, path); err != nil {
				failed.Store(true)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fields := logrus.Fields{
		"files":  len(files),
		"output": opts.OutputPath,
	}
	if p.db != nil {
		stats, err := p.db.GetStats(ctx)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDatabase, opts.Database, err)
		}
		fields["stored_files"] = stats.Files
		fields["stored_rows"] = stats.RegularRows + stats.ExtendedRows
	}
	log.WithFields(fields).Info("source metrics written")
	return nil
}

// normalize fills defaults and resolves unsupported option combinations.
func normalize(opts Options) Options {
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	if opts.Format == "" {
		opts.Format = output.DefaultFormat
	}
	if opts.NoFlatten && !opts.Format.SupportsTree() {
		opts.Log.Warnf("output format %s cannot hold unflattened metrics, writing %s instead",
			opts.Format, output.FormatJSON)
		opts.Format = output.FormatJSON
	}
	if opts.NoFlatten && opts.Extended {
		opts.Log.Debug("extended metrics only apply to flattened output, ignoring")
		opts.Extended = false
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Engine == nil {
		opts.Engine = analyze.New(opts.Log)
	}
	return opts
}

// inputs returns the files to process: the input itself when it is a file,
// otherwise the source files found beneath it.
func inputs(opts Options) ([]string, error) {
	info, err := os.Stat(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInputPath, opts.Path, err)
	}

	switch {
	case info.Mode().IsRegular():
		opts.Log.WithField("path", opts.Path).Info("single file found")
		return []string{opts.Path}, nil
	case info.IsDir():
		files, err := discover.Files(opts.Path, discover.Options{
			Exclude: exclude.New(opts.Exclude),
			Log:     opts.Log,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInputPath, opts.Path, err)
		}
		opts.Log.WithFields(logrus.Fields{"path": opts.Path, "files": len(files)}).Info("source files found")
		return files, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidInputPath, opts.Path)
	}
}

// OutputName returns the output file name for an input path:
// the input's stem, "-extended" for the extended schema, then the format
// extension.
func OutputName(path string, format output.Format, extended bool) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	if extended {
		stem += "-extended"
	}
	return stem + format.Extension()
}

type processor struct {
	opts      Options
	formatter output.Formatter
	db        *store.Store
	log       logrus.FieldLogger
}

func (p *processor) process(ctx context.Context, path string) error {
	log := p.log.WithField("path", path)
	log.Info("analyzing")

	source, err := os.ReadFile(path)
	if err != nil {
		return fileError(path, "read", ErrFailedProcessing, err)
	}

	lang, err := parser.GuessLanguage(source, path)
	if err != nil {
		return fileError(path, "guess", ErrFailedGuessLang, err)
	}
	log.WithFields(logrus.Fields{"bytes": len(source), "language": lang}).Debug("language detected")

	root, err := p.opts.Engine.Analyze(ctx, lang, source, path)
	if err != nil {
		return fileError(path, "analyze", ErrFailedProcessing, err)
	}
	if root == nil {
		log.Error("no metrics extracted")
		return nil
	}

	set := p.flatten(root, path)
	write := func(w io.Writer) error {
		return p.formatter.WriteRows(w, &set)
	}
	if p.opts.NoFlatten {
		write = func(w io.Writer) error {
			return p.formatter.WriteTree(w, root)
		}
	}

	dest := filepath.Join(p.opts.OutputPath, OutputName(path, p.opts.Format, p.opts.Extended))
	if err := output.WriteFile(dest, write); err != nil {
		return fileError(path, "write", ErrSerialization, err)
	}
	log.WithField("output", dest).Debug("metrics written")

	if p.db != nil {
		return p.record(ctx, log, store.FileEntry{
			SourceFile:  path,
			Language:    lang.String(),
			ContentHash: store.ContentHash(source),
		}, &set)
	}
	return nil
}

// record stores the file's rows, leaving the database untouched when it
// already holds the same content flattened the same way.
func (p *processor) record(ctx context.Context, log logrus.FieldLogger, entry store.FileEntry, set *row.Set) error {
	prev, err := p.db.GetFile(ctx, entry.SourceFile)
	switch {
	case err == nil && prev.ContentHash == entry.ContentHash &&
		prev.Variant == set.Variant.String() && prev.RowCount == set.Len():
		log.Debug("stored metrics unchanged")
		return nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return fileError(entry.SourceFile, "store", ErrDatabase, err)
	}

	if err := p.db.ReplaceFile(ctx, entry, set); err != nil {
		return fileError(entry.SourceFile, "store", ErrDatabase, err)
	}
	return nil
}

// flatten projects the tree into rows of the configured variant.
func (p *processor) flatten(root *space.Space, path string) row.Set {
	set := row.FlattenTree(root, path, row.VariantFor(p.opts.Extended), p.opts.WithUnit)
	if set.Len() == 0 {
		p.log.WithField("path", path).Debug("no function metrics extracted")
	}
	return set
}
