// Package discover finds C and C++ source files under a directory.
package discover

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/archaeo-tools/archaeo/internal/exclude"
	"github.com/archaeo-tools/archaeo/internal/logging"
	"github.com/archaeo-tools/archaeo/internal/parser"
	"github.com/sirupsen/logrus"
)

var errNotDir = errors.New("not a directory")

// Options configures a directory scan.
type Options struct {
	// Exclude skips matching paths, relative to the scan root.
	Exclude *exclude.Matcher
	// Log receives skipped entries at debug level. Nil discards them.
	Log logrus.FieldLogger
}

// Files returns the source files under root, sorted. Symbolic links are
// followed; a directory reached twice through links is walked once.
// Entries that cannot be read are skipped.
func Files(root string, opts Options) ([]string, error) {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "scan", Path: root, Err: errNotDir}
	}

	w := &walker{
		root:    root,
		exclude: opts.Exclude,
		log:     log,
		visited: make(map[string]struct{}),
	}
	w.walk(root)

	sort.Strings(w.files)
	return w.files, nil
}

type walker struct {
	root    string
	exclude *exclude.Matcher
	log     logrus.FieldLogger
	visited map[string]struct{}
	files   []string
}

func (w *walker) walk(dir string) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		w.log.WithError(err).WithField("path", dir).Debug("skipping unresolvable directory")
		return
	}
	if _, seen := w.visited[resolved]; seen {
		w.log.WithField("path", dir).Debug("skipping directory already visited")
		return
	}
	w.visited[resolved] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.log.WithError(err).WithField("path", dir).Debug("skipping unreadable directory")
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				w.log.WithError(err).WithField("path", path).Debug("skipping broken symlink")
				continue
			}
			mode = target.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if !w.excluded(path, true) {
				w.walk(path)
			}
		case mode.IsRegular() && parser.HasSourceExtension(path):
			if !w.excluded(path, false) {
				w.files = append(w.files, path)
			}
		}
	}
}

// excluded matches path relative to the root. Directories carry a trailing
// slash so that "dir/" patterns prune them.
func (w *walker) excluded(path string, dir bool) bool {
	if w.exclude == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	if dir {
		rel += "/"
	}
	excluded, pattern := w.exclude.Match(rel)
	if excluded {
		w.log.WithFields(logrus.Fields{"path": path, "pattern": pattern}).Debug("excluded")
	}
	return excluded
}
