package cmd

import (
	"errors"

	"github.com/archaeo-tools/archaeo/internal/analyze"
	"github.com/archaeo-tools/archaeo/internal/driver"
	"github.com/archaeo-tools/archaeo/internal/output"
	"github.com/spf13/cobra"
)

var (
	errPathRequired       = errors.New("required flag \"path\" not set")
	errOutputPathRequired = errors.New("required flag \"output-path\" not set")
)

func newSourceCmd(a *app) *cobra.Command {
	sourceCmd := &cobra.Command{
		Use:   "source",
		Short: "Compute metrics for C and C++ source files",
		Long: `Compute source code metrics for a file or every C/C++ file in a directory.

Each input file produces one output file in the output directory, named after
the input's stem: <stem>.csv, <stem>.json, or <stem>-extended.<ext> with
--extended. Inputs that share a stem overwrite each other.

Directories are walked recursively following symbolic links. Files with the
extensions c, h, cpp, cc and hpp (any case) are analyzed. Paths matching an
--exclude pattern (gitignore syntax, relative to --path) are skipped.

Rows are written in pre-order, one per function, closure, class, struct,
union and namespace. --with-unit adds a first row for the file itself.
--no-flatten writes the whole space tree instead, and always uses JSON.

Non-finite values (NaN, infinities) are written as 0.

--db also stores every file's rows in a SQLite database, replacing the rows
stored by earlier runs for the same file.`,
		Example: `  archaeo source -p src/ -o metrics/
  archaeo source -p main.cpp -o out/ -f json
  archaeo source -p src/ -o out/ --extended --exclude third_party/
  archaeo source -p src/ -o out/ --no-flatten
  archaeo source -p src/ -o out/ --db metrics.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSource(cmd)
		},
	}

	f := sourceCmd.Flags()
	f.StringP("path", "p", "", "File or directory to analyze (required)")
	f.StringP("output-path", "o", "", "Directory receiving the output files (required)")
	f.StringP("fmt", "f", string(output.DefaultFormat), "Output format (csv|json)")
	f.Bool("no-flatten", false, "Write the hierarchical space tree as JSON")
	f.Bool("extended", false, "Write the extended schema with subtree aggregates")
	f.Bool("with-unit", false, "Also write a row for the translation unit")
	f.IntP("workers", "w", 0, "Number of files processed concurrently (default: number of CPUs)")
	f.StringSlice("exclude", nil, "Gitignore-style pattern of paths to skip (repeatable)")
	f.String("db", "", "SQLite database that also receives the rows")

	return sourceCmd
}

func (a *app) runSource(cmd *cobra.Command) error {
	v, err := settings(cmd, map[string]any{
		"workers":   a.cfg.Source.Workers,
		"exclude":   a.cfg.Source.Exclude,
		"with-unit": a.cfg.Source.IncludeUnit,
		"db":        a.cfg.Source.Database,
	})
	if err != nil {
		return err
	}

	path := v.GetString("path")
	if path == "" {
		return errPathRequired
	}
	outputPath := v.GetString("output-path")
	if outputPath == "" {
		return errOutputPathRequired
	}
	format, err := output.ParseFormat(v.GetString("fmt"))
	if err != nil {
		return err
	}

	return driver.Run(commandContext(cmd), driver.Options{
		Path:       path,
		OutputPath: outputPath,
		Format:     format,
		NoFlatten:  v.GetBool("no-flatten"),
		Extended:   v.GetBool("extended"),
		WithUnit:   v.GetBool("with-unit"),
		Workers:    v.GetInt("workers"),
		Exclude:    v.GetStringSlice("exclude"),
		Database:   v.GetString("db"),
		Engine:     analyze.New(a.log),
		Log:        a.log,
	})
}
