package output

import (
	"bufio"
	"io"
	"path/filepath"

	"github.com/google/renameio"
)

// FileMode is the permission of written output files.
const FileMode = 0o644

// WriteFile atomically replaces path with the bytes produced by write.
// Nothing is left behind at path, or next to it, when write fails.
func WriteFile(path string, write func(io.Writer) error) error {
	t, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return err
	}
	defer t.Cleanup()

	if err := t.Chmod(FileMode); err != nil {
		return err
	}

	bw := bufio.NewWriter(t)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return t.CloseAtomicallyReplace()
}
