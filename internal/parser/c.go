package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// newCParser creates a tree-sitter parser configured for C.
func newCParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	return parser, nil
}

// CSpaceNodeTypes maps tree-sitter node types to the kind of space they open.
// Aggregate types only open a space when they carry a body.
var CSpaceNodeTypes = map[string]string{
	"function_definition": "function",
	"struct_specifier":    "struct",
	"union_specifier":     "union",
}
