package space

import (
	"encoding/json"

	"github.com/archaeo-tools/archaeo/internal/numeric"
)

// Nom counts the methods (functions and closures) of a subtree. Each space
// contributes one observation per statistic: 1 when the space itself is a
// function (or closure), 0 otherwise.
type Nom struct {
	fnSt      stat
	closureSt stat
}

func (n *Nom) finalize(kind Kind) {
	var fn, closure float64
	switch kind {
	case KindFunction:
		fn = 1
	case KindClosure:
		closure = 1
	}
	n.fnSt.observe(fn)
	n.closureSt.observe(closure)
}

func (n *Nom) merge(o *Nom) {
	n.fnSt.merge(&o.fnSt)
	n.closureSt.merge(&o.closureSt)
}

// Functions returns the number of functions in the subtree, the space included.
func (n *Nom) Functions() float64 { return n.fnSt.sum }

// Closures returns the number of closures in the subtree, the space included.
func (n *Nom) Closures() float64 { return n.closureSt.sum }

// Total returns Functions plus Closures.
func (n *Nom) Total() float64 { return n.fnSt.sum + n.closureSt.sum }

// FunctionsAverage returns functions per space in the subtree.
func (n *Nom) FunctionsAverage() float64 { return n.fnSt.average() }

// ClosuresAverage returns closures per space in the subtree.
func (n *Nom) ClosuresAverage() float64 { return n.closureSt.average() }

// Average returns methods per space in the subtree.
func (n *Nom) Average() float64 { return numeric.Ratio(n.Total(), n.fnSt.n) }

// FunctionsMin returns the smallest per-space function count.
func (n *Nom) FunctionsMin() float64 { return n.fnSt.minimum() }

// FunctionsMax returns the largest per-space function count.
func (n *Nom) FunctionsMax() float64 { return n.fnSt.maximum() }

// ClosuresMin returns the smallest per-space closure count.
func (n *Nom) ClosuresMin() float64 { return n.closureSt.minimum() }

// ClosuresMax returns the largest per-space closure count.
func (n *Nom) ClosuresMax() float64 { return n.closureSt.maximum() }

// MarshalJSON implements json.Marshaler.
func (n *Nom) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Functions        float64 `json:"functions"`
		Closures         float64 `json:"closures"`
		FunctionsAverage float64 `json:"functions_average"`
		ClosuresAverage  float64 `json:"closures_average"`
		Total            float64 `json:"total"`
		Average          float64 `json:"average"`
		FunctionsMin     float64 `json:"functions_min"`
		FunctionsMax     float64 `json:"functions_max"`
		ClosuresMin      float64 `json:"closures_min"`
		ClosuresMax      float64 `json:"closures_max"`
	}{
		Functions:        finite(n.Functions()),
		Closures:         finite(n.Closures()),
		FunctionsAverage: finite(n.FunctionsAverage()),
		ClosuresAverage:  finite(n.ClosuresAverage()),
		Total:            finite(n.Total()),
		Average:          finite(n.Average()),
		FunctionsMin:     finite(n.FunctionsMin()),
		FunctionsMax:     finite(n.FunctionsMax()),
		ClosuresMin:      finite(n.ClosuresMin()),
		ClosuresMax:      finite(n.ClosuresMax()),
	})
}
