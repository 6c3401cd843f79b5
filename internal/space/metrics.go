package space

import (
	"encoding/json"

	"github.com/archaeo-tools/archaeo/internal/numeric"
)

// Metrics bundles every metric family computed for a space.
type Metrics struct {
	NArgs      NArgs
	NExits     NExits
	Cognitive  Cognitive
	Cyclomatic Cyclomatic
	Halstead   Halstead
	Loc        Loc
	Nom        Nom
	Mi         Mi
}

func newMetrics(start, end int) Metrics {
	return Metrics{
		Cyclomatic: Cyclomatic{own: 1},
		Halstead:   newHalstead(),
		Loc:        newLoc(start, end),
	}
}

// finalize records the space's own values into the subtree statistics and
// derives the maintainability index from the merged totals.
func (m *Metrics) finalize(kind Kind) {
	m.NArgs.finalize(kind)
	m.NExits.finalize(kind)
	m.Cognitive.finalize(kind)
	m.Cyclomatic.finalize()
	m.Loc.finalize()
	m.Nom.finalize(kind)
	m.Mi.compute(&m.Loc, &m.Cyclomatic, &m.Halstead)
}

// merge folds a finalized child's statistics into m.
func (m *Metrics) merge(child *Metrics) {
	m.NArgs.merge(&child.NArgs)
	m.NExits.merge(&child.NExits)
	m.Cognitive.merge(&child.Cognitive)
	m.Cyclomatic.merge(&child.Cyclomatic)
	m.Halstead.merge(&child.Halstead)
	m.Loc.merge(&child.Loc)
	m.Nom.merge(&child.Nom)
}

// MarshalJSON encodes the families in a fixed order.
func (m *Metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NArgs      *NArgs      `json:"nargs"`
		NExits     *NExits     `json:"nexits"`
		Cognitive  *Cognitive  `json:"cognitive"`
		Cyclomatic *Cyclomatic `json:"cyclomatic"`
		Halstead   *Halstead   `json:"halstead"`
		Loc        *Loc        `json:"loc"`
		Nom        *Nom        `json:"nom"`
		Mi         *Mi         `json:"mi"`
	}{&m.NArgs, &m.NExits, &m.Cognitive, &m.Cyclomatic, &m.Halstead, &m.Loc, &m.Nom, &m.Mi})
}

// finite is shorthand for the JSON encoders below; encoding/json rejects
// NaN and infinities.
func finite(v float64) float64 {
	return numeric.Finite(v)
}
