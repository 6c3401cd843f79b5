package analyze

import (
	"strings"

	"github.com/archaeo-tools/archaeo/internal/space"
	sitter "github.com/smacker/go-tree-sitter"
)

// spaceName returns the name of the space opened by node, or nil when the
// construct is anonymous.
func (w *walker) spaceName(node *sitter.Node, kind space.Kind) *string {
	var name string
	switch kind {
	case space.KindFunction:
		name = w.declaratorName(node.ChildByFieldName("declarator"))
	case space.KindClass, space.KindStruct, space.KindUnion, space.KindNamespace:
		if n := node.ChildByFieldName("name"); n != nil {
			name = n.Content(w.src)
		}
	}
	if name == "" {
		return nil
	}
	return &name
}

// declaratorName descends a declarator chain down to the declared name.
func (w *walker) declaratorName(node *sitter.Node) string {
	for node != nil {
		switch node.Type() {
		case "identifier", "field_identifier", "qualified_identifier",
			"destructor_name", "operator_name", "template_function", "operator_cast":
			return strings.TrimSpace(node.Content(w.src))
		}

		next := node.ChildByFieldName("declarator")
		if next == nil {
			// reference_declarator has no field for its inner declarator
			next = firstNamedChild(node, "parameter_list")
		}
		node = next
	}
	return ""
}

// paramCount returns the number of parameters declared by a function or
// lambda node. A lone "void" parameter counts as none.
func (w *walker) paramCount(node *sitter.Node) int {
	params := w.parameterList(node)
	if params == nil {
		return 0
	}

	count := 0
	var only *sitter.Node
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		count++
		only = child
	}
	if count == 1 && only.Type() == "parameter_declaration" &&
		strings.TrimSpace(only.Content(w.src)) == "void" {
		return 0
	}
	return count
}

func (w *walker) parameterList(node *sitter.Node) *sitter.Node {
	decl := node.ChildByFieldName("declarator")
	for decl != nil {
		if decl.Type() == "function_declarator" || decl.Type() == "abstract_function_declarator" {
			return decl.ChildByFieldName("parameters")
		}
		next := decl.ChildByFieldName("declarator")
		if next == nil {
			next = firstNamedChild(decl, "parameter_list")
		}
		decl = next
	}
	return nil
}

// firstNamedChild returns the first named child of node whose type is not
// skip.
func firstNamedChild(node *sitter.Node, skip string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != skip {
			return child
		}
	}
	return nil
}
