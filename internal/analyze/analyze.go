// Package analyze computes the metrics tree of a C or C++ source file.
//
// The engine parses the source with tree-sitter and walks the syntax tree
// once. Every function, lambda, aggregate type and namespace opens a nested
// space; tokens, statements and decision points are charged to the innermost
// open space. A space is finalized when the walk leaves it and is then merged
// into its parent, so the returned root carries whole-file aggregates.
package analyze

import (
	"bytes"
	"context"

	"github.com/archaeo-tools/archaeo/internal/logging"
	"github.com/archaeo-tools/archaeo/internal/parser"
	"github.com/archaeo-tools/archaeo/internal/space"
	"github.com/sirupsen/logrus"
	sitter "github.com/smacker/go-tree-sitter"
)

// Engine computes space trees. An Engine holds no per-file state and is safe
// for concurrent use; every call to Analyze creates its own parser.
type Engine struct {
	log logrus.FieldLogger
}

// New creates an engine. A nil logger discards engine diagnostics.
func New(log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logging.Discard()
	}
	return &Engine{log: log}
}

// Analyze parses source as lang and returns the translation unit space,
// named after path. A nil space with a nil error means the source produced
// no syntax tree.
func (e *Engine) Analyze(ctx context.Context, lang parser.Language, source []byte, path string) (*space.Space, error) {
	p, err := parser.NewParser(lang)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	result, err := p.ParseCtx(ctx, source)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	if result.Root == nil {
		return nil, nil
	}
	if result.HasErrors() {
		e.log.WithField("path", path).Debug("source has syntax errors, metrics are approximate")
	}

	name := path
	unit := space.New(space.KindUnit, &name, 1, lineCount(source))

	w := &walker{
		lang:  lang,
		src:   source,
		stack: []*space.Space{unit},
	}
	w.visitChildren(result.Root, scope{})
	unit.Finalize()

	return unit, nil
}

// lineCount returns the number of lines in source, at least one. A trailing
// newline does not start a new line.
func lineCount(source []byte) int {
	n := bytes.Count(source, []byte{'\n'})
	if len(source) > 0 && source[len(source)-1] != '\n' {
		n++
	}
	if n < 1 {
		return 1
	}
	return n
}

// scope carries the walk state that depends on the position in the tree.
type scope struct {
	// nesting is the cognitive nesting level, reset by each function.
	nesting int
	// elseIf marks an if statement that continues an else branch.
	elseIf bool
}

func (s scope) nested() scope {
	return scope{nesting: s.nesting + 1}
}

type walker struct {
	lang  parser.Language
	src   []byte
	stack []*space.Space
}

func (w *walker) top() *space.Space {
	return w.stack[len(w.stack)-1]
}

func (w *walker) visit(node *sitter.Node, sc scope) {
	if node == nil || node.IsMissing() {
		return
	}

	if kind := parser.SpaceKind(w.lang, node); kind != "" {
		w.visitSpace(node, space.ParseKind(kind), sc)
		return
	}

	cur := w.top()
	m := &cur.Metrics

	if node.Type() == "comment" {
		first, last := lines(node)
		m.Loc.AddCommentLines(first, last)
		return
	}

	if isOpaqueOperand(node) {
		first, last := lines(node)
		m.Loc.AddCodeLines(first, last)
		m.Halstead.AddOperand(node.Content(w.src))
		return
	}

	if node.ChildCount() == 0 {
		w.visitLeaf(node)
		return
	}

	if isStatement(node.Type()) {
		m.Loc.AddStatement()
	}
	if node.Type() == "return_statement" {
		m.NExits.AddExit()
	}
	if isDecision(node) {
		m.Cyclomatic.AddDecision()
	}

	switch node.Type() {
	case "if_statement":
		w.visitIf(node, sc)
	case "else_clause":
		w.visitElse(node, sc)
	default:
		if inc := cognitiveIncrement(node, sc); inc > 0 {
			m.Cognitive.Increment(inc)
		}
		child := sc
		if increasesNesting(node.Type()) {
			child = sc.nested()
		} else {
			child.elseIf = false
		}
		w.visitChildren(node, child)
	}
}

func (w *walker) visitChildren(node *sitter.Node, sc scope) {
	for i := 0; i < int(node.ChildCount()); i++ {
		w.visit(node.Child(i), sc)
	}
}

// visitSpace opens a new space for node, walks its subtree and merges the
// finalized space into the enclosing one.
func (w *walker) visitSpace(node *sitter.Node, kind space.Kind, sc scope) {
	first, last := lines(node)
	sp := space.New(kind, w.spaceName(node, kind), first, last)
	if kind.IsFuncLike() {
		sp.Metrics.NArgs.SetArgs(w.paramCount(node))
		sc = scope{}
	}

	w.stack = append(w.stack, sp)
	w.visitChildren(node, sc)
	w.stack = w.stack[:len(w.stack)-1]

	sp.Finalize()
	w.top().AddChild(sp)
}

func (w *walker) visitLeaf(node *sitter.Node) {
	m := &w.top().Metrics
	first, last := lines(node)
	m.Loc.AddCodeLines(first, last)

	if !node.IsNamed() {
		if !isClosingBracket(node.Type()) {
			m.Halstead.AddOperator(node.Type())
		}
		if node.Type() == "goto" {
			m.Cognitive.Increment(1)
		}
		return
	}
	m.Halstead.AddOperand(node.Content(w.src))
}

// visitIf handles both else encodings of the C grammars: a dedicated
// else_clause node, or a bare "else" token followed by the alternative.
func (w *walker) visitIf(node *sitter.Node, sc scope) {
	m := &w.top().Metrics
	if !sc.elseIf {
		m.Cognitive.Increment(1 + sc.nesting)
	}

	alternative := node.ChildByFieldName("alternative")
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch {
		case !child.IsNamed() && child.Type() == "else":
			m.Cognitive.Increment(1)
			w.visit(child, sc)
		case sameNode(child, alternative) && child.Type() == "else_clause":
			w.visit(child, sc)
		case sameNode(child, alternative) && child.Type() == "if_statement":
			w.visit(child, scope{nesting: sc.nesting, elseIf: true})
		default:
			w.visit(child, sc.nested())
		}
	}
}

func (w *walker) visitElse(node *sitter.Node, sc scope) {
	w.top().Metrics.Cognitive.Increment(1)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "if_statement" {
			w.visit(child, scope{nesting: sc.nesting, elseIf: true})
			continue
		}
		w.visit(child, sc.nested())
	}
}

// lines returns the 1-based first and last line of node.
func lines(node *sitter.Node) (int, int) {
	return int(node.StartPoint().Row) + 1, int(node.EndPoint().Row) + 1
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
