package parser

import "fmt"

// ParseError is returned when tree-sitter gives up on a source, which only
// happens on cancellation or timeout. Syntax errors are kept in the tree.
type ParseError struct {
	Language Language
	Message  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s source: %s", e.Language, e.Message)
}

// UnsupportedLanguageError is returned when attempting to parse an unsupported language.
type UnsupportedLanguageError struct {
	Language string
}

// Error implements the error interface.
func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Language)
}

// GuessError is returned when neither a modeline nor the file extension
// identifies the language of a file.
type GuessError struct {
	Path string
}

// Error implements the error interface.
func (e *GuessError) Error() string {
	return fmt.Sprintf("cannot guess language of %s", e.Path)
}
