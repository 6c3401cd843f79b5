// Package parser provides tree-sitter based parsing for C and C++ sources.
//
// The parser package wraps the tree-sitter library to provide a unified
// interface over the two grammars the metrics engine understands, plus the
// language detection used to pick between them.
package parser

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language represents a supported programming language.
type Language string

const (
	// C represents the C programming language.
	C Language = "c"
	// Cpp represents the C++ programming language.
	Cpp Language = "cpp"
)

// String returns the language name.
func (l Language) String() string {
	return string(l)
}

// Parser wraps tree-sitter for code parsing.
// A Parser is not safe for concurrent use; each goroutine needs its own.
type Parser struct {
	parser *sitter.Parser
	lang   Language
}

// ParseResult contains the parsed AST and metadata.
type ParseResult struct {
	// Tree is the complete tree-sitter parse tree.
	Tree *sitter.Tree
	// Root is the root node of the AST.
	Root *sitter.Node
	// Source is the original source code that was parsed.
	Source []byte
	// Language is the programming language of the source.
	Language Language
}

// NewParser creates a parser for the given language.
// Returns an UnsupportedLanguageError if the language is not supported.
func NewParser(lang Language) (*Parser, error) {
	var (
		p   *sitter.Parser
		err error
	)

	switch lang {
	case C:
		p, err = newCParser()
	case Cpp:
		p, err = newCppParser()
	default:
		return nil, &UnsupportedLanguageError{Language: string(lang)}
	}

	if err != nil {
		return nil, err
	}

	return &Parser{
		parser: p,
		lang:   lang,
	}, nil
}

// ParseCtx parses source code, aborting when ctx is cancelled.
func (p *Parser) ParseCtx(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, &ParseError{
			Language: p.lang,
			Message:  err.Error(),
		}
	}

	return &ParseResult{
		Tree:     tree,
		Root:     tree.RootNode(),
		Source:   source,
		Language: p.lang,
	}, nil
}

// Close releases parser resources.
// After calling Close, the parser should not be used.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// Close releases the parse tree resources.
func (r *ParseResult) Close() {
	if r.Tree != nil {
		r.Tree.Close()
		r.Tree = nil
		r.Root = nil
	}
}

// HasErrors returns true if the parse tree contains syntax errors.
func (r *ParseResult) HasErrors() bool {
	if r.Root == nil {
		return false
	}
	return r.Root.HasError()
}

// LanguageFromExtension returns the language for a file extension.
// The comparison is case-insensitive. Returns empty string if the
// extension is not recognized. Headers (".h") are reported as C; use
// GuessLanguage to disambiguate C++ headers by content.
func LanguageFromExtension(ext string) Language {
	switch strings.ToLower(ext) {
	case ".c", ".h":
		return C
	case ".cpp", ".cc", ".cxx", ".c++", ".hpp", ".hh", ".hxx", ".h++":
		return Cpp
	default:
		return ""
	}
}

// SourceExtensions returns the file extensions scanned when walking a
// directory, without the leading dot.
func SourceExtensions() []string {
	return []string{"c", "h", "cpp", "cc", "hpp"}
}

// HasSourceExtension reports whether path ends in one of SourceExtensions,
// ignoring case.
func HasSourceExtension(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	for _, valid := range SourceExtensions() {
		if strings.EqualFold(ext, valid) {
			return true
		}
	}
	return false
}
