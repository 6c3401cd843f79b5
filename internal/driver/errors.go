package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputPath is returned when the input is neither a regular
	// file nor a directory.
	ErrInvalidInputPath = errors.New("input path is not a file or a directory")

	// ErrOutputDirCreation is returned when the output directory cannot be
	// created.
	ErrOutputDirCreation = errors.New("cannot create output directory")

	// ErrFailedProcessing is returned when a file cannot be read or analyzed.
	ErrFailedProcessing = errors.New("failed to process")

	// ErrFailedGuessLang is returned when the language of a file cannot be
	// determined.
	ErrFailedGuessLang = errors.New("failed to guess language")

	// ErrSerialization is returned when an output file cannot be written.
	ErrSerialization = errors.New("failed to write output")

	// ErrDatabase is returned when the metrics database cannot be opened or
	// written.
	ErrDatabase = errors.New("metrics database error")
)

// FileError records a failure to handle one input file.
type FileError struct {
	Path string
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

func fileError(path, op string, kind, cause error) error {
	return &FileError{
		Path: path,
		Op:   op,
		Err:  fmt.Errorf("%w: %w", kind, cause),
	}
}
