// Package space defines the metrics tree produced for one source file.
//
// A Space is a lexical scope (translation unit, function, closure, class,
// namespace, ...) with its metrics and nested scopes. The tree is built
// bottom-up by the analyze package: every space is finalized before it is
// merged into its parent, so aggregate statistics of a space always cover
// its whole subtree.
package space

import "encoding/json"

// Kind identifies the type of a space.
type Kind string

const (
	// KindUnit is the translation unit at the root of a file.
	KindUnit Kind = "unit"
	// KindFunction is a free function or method definition.
	KindFunction Kind = "function"
	// KindClosure is a lambda expression.
	KindClosure Kind = "closure"
	// KindClass is a C++ class definition.
	KindClass Kind = "class"
	// KindStruct is a struct definition.
	KindStruct Kind = "struct"
	// KindUnion is a union definition.
	KindUnion Kind = "union"
	// KindNamespace is a C++ namespace definition.
	KindNamespace Kind = "namespace"
	// KindUnknown is used for node kinds the engine does not classify.
	KindUnknown Kind = "unknown"
)

// ParseKind maps a short label back to a Kind. Unrecognized labels map to
// KindUnknown.
func ParseKind(s string) Kind {
	switch k := Kind(s); k {
	case KindUnit, KindFunction, KindClosure, KindClass, KindStruct, KindUnion, KindNamespace:
		return k
	default:
		return KindUnknown
	}
}

// String returns the short human label of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsFuncLike reports whether the kind is a function or a closure.
func (k Kind) IsFuncLike() bool {
	return k == KindFunction || k == KindClosure
}

// Space is one node of the metrics tree.
type Space struct {
	// Name is nil for anonymous scopes such as lambdas.
	Name      *string
	StartLine int
	EndLine   int
	Kind      Kind
	Metrics   Metrics
	Spaces    []*Space
}

// New creates an empty space covering lines start through end.
func New(kind Kind, name *string, start, end int) *Space {
	if end < start {
		end = start
	}
	return &Space{
		Name:      name,
		StartLine: start,
		EndLine:   end,
		Kind:      kind,
		Metrics:   newMetrics(start, end),
	}
}

// NameOr returns the space name, or fallback when the space is anonymous.
func (s *Space) NameOr(fallback string) string {
	if s.Name == nil {
		return fallback
	}
	return *s.Name
}

// Count returns the number of spaces in the tree rooted at s.
func (s *Space) Count() int {
	n := 1
	for _, child := range s.Spaces {
		n += child.Count()
	}
	return n
}

// Finalize computes the space's own statistics and derived metrics.
// It must be called once, after every child has been added with AddChild.
func (s *Space) Finalize() {
	s.Metrics.finalize(s.Kind)
}

// AddChild appends a finalized child space and merges its metrics into s.
func (s *Space) AddChild(child *Space) {
	s.Spaces = append(s.Spaces, child)
	s.Metrics.merge(&child.Metrics)
}

// MarshalJSON encodes the space with a stable field order. Children are
// always encoded as an array, never null.
func (s *Space) MarshalJSON() ([]byte, error) {
	spaces := s.Spaces
	if spaces == nil {
		spaces = []*Space{}
	}
	return json.Marshal(struct {
		Name      *string  `json:"name"`
		StartLine int      `json:"start_line"`
		EndLine   int      `json:"end_line"`
		Kind      Kind     `json:"kind"`
		Spaces    []*Space `json:"spaces"`
		Metrics   *Metrics `json:"metrics"`
	}{
		Name:      s.Name,
		StartLine: s.StartLine,
		EndLine:   s.EndLine,
		Kind:      s.Kind,
		Spaces:    spaces,
		Metrics:   &s.Metrics,
	})
}
