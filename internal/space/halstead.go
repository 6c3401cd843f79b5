package space

import (
	"encoding/json"
	"math"

	"github.com/archaeo-tools/archaeo/internal/numeric"
)

// Halstead holds the operator and operand multisets of a subtree and derives
// the Halstead measures from them. Derived values are not guarded against
// zero denominators; a space without operands has an infinite difficulty.
type Halstead struct {
	operators map[string]int
	operands  map[string]int
	n1Total   float64
	n2Total   float64
}

func newHalstead() Halstead {
	return Halstead{
		operators: make(map[string]int),
		operands:  make(map[string]int),
	}
}

// AddOperator records one occurrence of an operator.
func (h *Halstead) AddOperator(op string) {
	if h.operators == nil {
		h.operators = make(map[string]int)
	}
	h.operators[op]++
	h.n1Total++
}

// AddOperand records one occurrence of an operand.
func (h *Halstead) AddOperand(operand string) {
	if h.operands == nil {
		h.operands = make(map[string]int)
	}
	h.operands[operand]++
	h.n2Total++
}

func (h *Halstead) merge(o *Halstead) {
	for op, count := range o.operators {
		if h.operators == nil {
			h.operators = make(map[string]int)
		}
		h.operators[op] += count
	}
	for operand, count := range o.operands {
		if h.operands == nil {
			h.operands = make(map[string]int)
		}
		h.operands[operand] += count
	}
	h.n1Total += o.n1Total
	h.n2Total += o.n2Total
}

// UOperators returns n1, the number of distinct operators.
func (h *Halstead) UOperators() float64 { return float64(len(h.operators)) }

// Operators returns N1, the total number of operators.
func (h *Halstead) Operators() float64 { return h.n1Total }

// UOperands returns n2, the number of distinct operands.
func (h *Halstead) UOperands() float64 { return float64(len(h.operands)) }

// Operands returns N2, the total number of operands.
func (h *Halstead) Operands() float64 { return h.n2Total }

// Length returns N1 + N2.
func (h *Halstead) Length() float64 { return h.n1Total + h.n2Total }

// EstimatedProgramLength returns n1*log2(n1) + n2*log2(n2).
func (h *Halstead) EstimatedProgramLength() float64 {
	n1, n2 := h.UOperators(), h.UOperands()
	return n1*math.Log2(n1) + n2*math.Log2(n2)
}

// PurityRatio returns EstimatedProgramLength / Length.
func (h *Halstead) PurityRatio() float64 {
	return numeric.Ratio(h.EstimatedProgramLength(), h.Length())
}

// Vocabulary returns n1 + n2.
func (h *Halstead) Vocabulary() float64 { return h.UOperators() + h.UOperands() }

// Volume returns Length * log2(Vocabulary).
func (h *Halstead) Volume() float64 { return h.Length() * math.Log2(h.Vocabulary()) }

// Difficulty returns n1/2 * N2/n2.
func (h *Halstead) Difficulty() float64 {
	return h.UOperators() / 2 * numeric.Ratio(h.n2Total, h.UOperands())
}

// Level returns 1 / Difficulty.
func (h *Halstead) Level() float64 { return numeric.Ratio(1, h.Difficulty()) }

// Effort returns Difficulty * Volume.
func (h *Halstead) Effort() float64 { return h.Difficulty() * h.Volume() }

// Time returns the estimated programming time in seconds, Effort / 18.
func (h *Halstead) Time() float64 { return h.Effort() / 18 }

// Bugs returns the estimated number of delivered bugs, Effort^(2/3) / 3000.
func (h *Halstead) Bugs() float64 { return math.Pow(h.Effort(), 2.0/3.0) / 3000 }

// MarshalJSON implements json.Marshaler.
func (h *Halstead) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		N1Unique               float64 `json:"n1"`
		N1                     float64 `json:"N1"`
		N2Unique               float64 `json:"n2"`
		N2                     float64 `json:"N2"`
		Length                 float64 `json:"length"`
		EstimatedProgramLength float64 `json:"estimated_program_length"`
		PurityRatio            float64 `json:"purity_ratio"`
		Vocabulary             float64 `json:"vocabulary"`
		Volume                 float64 `json:"volume"`
		Difficulty             float64 `json:"difficulty"`
		Level                  float64 `json:"level"`
		Effort                 float64 `json:"effort"`
		Time                   float64 `json:"time"`
		Bugs                   float64 `json:"bugs"`
	}{
		N1Unique:               finite(h.UOperators()),
		N1:                     finite(h.Operators()),
		N2Unique:               finite(h.UOperands()),
		N2:                     finite(h.Operands()),
		Length:                 finite(h.Length()),
		EstimatedProgramLength: finite(h.EstimatedProgramLength()),
		PurityRatio:            finite(h.PurityRatio()),
		Vocabulary:             finite(h.Vocabulary()),
		Volume:                 finite(h.Volume()),
		Difficulty:             finite(h.Difficulty()),
		Level:                  finite(h.Level()),
		Effort:                 finite(h.Effort()),
		Time:                   finite(h.Time()),
		Bugs:                   finite(h.Bugs()),
	})
}
