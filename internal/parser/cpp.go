package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// newCppParser creates a tree-sitter parser configured for C++.
func newCppParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())
	return parser, nil
}

// CppSpaceNodeTypes maps tree-sitter node types to the kind of space they open.
// Aggregate types only open a space when they carry a body.
var CppSpaceNodeTypes = map[string]string{
	"function_definition":  "function",
	"lambda_expression":    "closure",
	"class_specifier":      "class",
	"struct_specifier":     "struct",
	"union_specifier":      "union",
	"namespace_definition": "namespace",
}

// SpaceKind returns the kind of space opened by node in the given language,
// or an empty string if the node does not open one.
func SpaceKind(lang Language, node *sitter.Node) string {
	if node == nil {
		return ""
	}

	var kinds map[string]string
	switch lang {
	case C:
		kinds = CSpaceNodeTypes
	case Cpp:
		kinds = CppSpaceNodeTypes
	default:
		return ""
	}

	kind, ok := kinds[node.Type()]
	if !ok {
		return ""
	}

	switch node.Type() {
	case "class_specifier", "struct_specifier", "union_specifier":
		// "struct Node *next" is a reference, not a definition
		if node.ChildByFieldName("body") == nil {
			return ""
		}
	}
	return kind
}
