package space

import (
	"encoding/json"

	"github.com/archaeo-tools/archaeo/internal/numeric"
)

// NArgs counts the parameters of functions and closures. Function and
// closure statistics are kept apart.
type NArgs struct {
	args      float64
	fn        float64
	closure   float64
	fnSt      stat
	closureSt stat
}

// SetArgs records the parameter count of the space.
func (a *NArgs) SetArgs(n int) { a.args = float64(n) }

func (a *NArgs) finalize(kind Kind) {
	switch kind {
	case KindFunction:
		a.fn = a.args
		a.fnSt.observe(a.fn)
	case KindClosure:
		a.closure = a.args
		a.closureSt.observe(a.closure)
	}
}

func (a *NArgs) merge(o *NArgs) {
	a.fnSt.merge(&o.fnSt)
	a.closureSt.merge(&o.closureSt)
}

// FnArgs returns the parameter count when the space is a function.
func (a *NArgs) FnArgs() float64 { return a.fn }

// ClosureArgs returns the parameter count when the space is a closure.
func (a *NArgs) ClosureArgs() float64 { return a.closure }

// FnArgsSum returns the parameters summed over the functions of the subtree.
func (a *NArgs) FnArgsSum() float64 { return a.fnSt.sum }

// ClosureArgsSum returns the parameters summed over the closures of the subtree.
func (a *NArgs) ClosureArgsSum() float64 { return a.closureSt.sum }

// FnArgsAverage returns the mean parameter count per function.
func (a *NArgs) FnArgsAverage() float64 { return a.fnSt.average() }

// ClosureArgsAverage returns the mean parameter count per closure.
func (a *NArgs) ClosureArgsAverage() float64 { return a.closureSt.average() }

// NArgsTotal returns the parameters summed over functions and closures.
func (a *NArgs) NArgsTotal() float64 { return a.fnSt.sum + a.closureSt.sum }

// NArgsAverage returns the mean parameter count over functions and closures.
func (a *NArgs) NArgsAverage() float64 {
	return numeric.Ratio(a.NArgsTotal(), a.fnSt.n+a.closureSt.n)
}

// FnArgsMin returns the smallest function parameter count.
func (a *NArgs) FnArgsMin() float64 { return a.fnSt.minimum() }

// FnArgsMax returns the largest function parameter count.
func (a *NArgs) FnArgsMax() float64 { return a.fnSt.maximum() }

// ClosureArgsMin returns the smallest closure parameter count.
func (a *NArgs) ClosureArgsMin() float64 { return a.closureSt.minimum() }

// ClosureArgsMax returns the largest closure parameter count.
func (a *NArgs) ClosureArgsMax() float64 { return a.closureSt.maximum() }

// MarshalJSON implements json.Marshaler.
func (a *NArgs) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalFunctions   float64 `json:"total_functions"`
		TotalClosures    float64 `json:"total_closures"`
		AverageFunctions float64 `json:"average_functions"`
		AverageClosures  float64 `json:"average_closures"`
		Total            float64 `json:"total"`
		Average          float64 `json:"average"`
		FunctionsMin     float64 `json:"functions_min"`
		FunctionsMax     float64 `json:"functions_max"`
		ClosuresMin      float64 `json:"closures_min"`
		ClosuresMax      float64 `json:"closures_max"`
	}{
		TotalFunctions:   finite(a.FnArgsSum()),
		TotalClosures:    finite(a.ClosureArgsSum()),
		AverageFunctions: finite(a.FnArgsAverage()),
		AverageClosures:  finite(a.ClosureArgsAverage()),
		Total:            finite(a.NArgsTotal()),
		Average:          finite(a.NArgsAverage()),
		FunctionsMin:     finite(a.FnArgsMin()),
		FunctionsMax:     finite(a.FnArgsMax()),
		ClosuresMin:      finite(a.ClosureArgsMin()),
		ClosuresMax:      finite(a.ClosureArgsMax()),
	})
}
