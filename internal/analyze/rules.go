package analyze

import sitter "github.com/smacker/go-tree-sitter"

// opaqueOperandTypes are literals counted as a single operand; their inner
// tokens (quotes, escapes, string content) are not walked.
var opaqueOperandTypes = map[string]bool{
	"string_literal":       true,
	"raw_string_literal":   true,
	"char_literal":         true,
	"concatenated_string":  true,
	"system_lib_string":    true,
	"number_literal":       true,
	"user_defined_literal": true,
}

// statementTypes are the node types counted as logical lines.
var statementTypes = map[string]bool{
	"declaration":          true,
	"expression_statement": true,
	"return_statement":     true,
	"if_statement":         true,
	"for_statement":        true,
	"for_range_loop":       true,
	"while_statement":      true,
	"do_statement":         true,
	"switch_statement":     true,
	"break_statement":      true,
	"continue_statement":   true,
	"goto_statement":       true,
	"labeled_statement":    true,
	"throw_statement":      true,
	"try_statement":        true,
	"co_return_statement":  true,
	"co_yield_statement":   true,
}

// nestingTypes are the structures that add a cognitive increment weighted by
// the current nesting level and nest the code they contain. if_statement is
// handled separately because of else-if chains.
var nestingTypes = map[string]bool{
	"switch_statement":       true,
	"for_statement":          true,
	"for_range_loop":         true,
	"while_statement":        true,
	"do_statement":           true,
	"catch_clause":           true,
	"conditional_expression": true,
}

// decisionTypes each add one path to the cyclomatic complexity.
var decisionTypes = map[string]bool{
	"if_statement":           true,
	"for_statement":          true,
	"for_range_loop":         true,
	"while_statement":        true,
	"do_statement":           true,
	"catch_clause":           true,
	"conditional_expression": true,
}

func isOpaqueOperand(node *sitter.Node) bool {
	return node.IsNamed() && opaqueOperandTypes[node.Type()]
}

func isStatement(nodeType string) bool {
	return statementTypes[nodeType]
}

func increasesNesting(nodeType string) bool {
	return nestingTypes[nodeType]
}

func isClosingBracket(tok string) bool {
	switch tok {
	case ")", "]", "}":
		return true
	}
	return false
}

// isDecision reports whether node is a cyclomatic decision point.
func isDecision(node *sitter.Node) bool {
	switch node.Type() {
	case "case_statement":
		// "default:" shares the node type
		first := node.Child(0)
		return first != nil && first.Type() == "case"
	case "binary_expression":
		return isLogicalOperator(binaryOperator(node))
	}
	return decisionTypes[node.Type()]
}

// cognitiveIncrement returns the cognitive complexity added by node itself,
// if statements and else clauses excepted.
func cognitiveIncrement(node *sitter.Node, sc scope) int {
	if increasesNesting(node.Type()) {
		return 1 + sc.nesting
	}
	if node.Type() != "binary_expression" {
		return 0
	}

	op := binaryOperator(node)
	if !isLogicalOperator(op) {
		return 0
	}
	// a run of the same operator counts once
	if parent := node.Parent(); parent != nil && parent.Type() == "binary_expression" &&
		sameLogicalOperator(binaryOperator(parent), op) {
		return 0
	}
	return 1
}

func binaryOperator(node *sitter.Node) string {
	op := node.ChildByFieldName("operator")
	if op == nil {
		return ""
	}
	return op.Type()
}

func isLogicalOperator(op string) bool {
	switch op {
	case "&&", "||", "and", "or":
		return true
	}
	return false
}

func sameLogicalOperator(a, b string) bool {
	return normalizeLogical(a) == normalizeLogical(b)
}

func normalizeLogical(op string) string {
	switch op {
	case "and":
		return "&&"
	case "or":
		return "||"
	}
	return op
}
