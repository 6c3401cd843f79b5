package space

import (
	"encoding/json"
	"math"
)

// Mi is the maintainability index in its three common variants.
type Mi struct {
	original float64
	sei      float64
	vs       float64
}

// compute derives the index from the subtree totals. Zero volume or sloc
// yields non-finite values, which are kept.
func (m *Mi) compute(loc *Loc, cyc *Cyclomatic, hal *Halstead) {
	volume := hal.Volume()
	cc := cyc.CyclomaticSum()
	sloc := loc.Sloc()
	comments := loc.Cloc() / sloc

	m.original = 171 - 5.2*math.Log(volume) - 0.23*cc - 16.2*math.Log(sloc)
	m.sei = 171 - 5.2*math.Log2(volume) - 0.23*cc - 16.2*math.Log2(sloc) +
		50*math.Sin(math.Sqrt(comments*2.4))
	m.vs = math.Max(0, m.original*100/171)
}

// MiOriginal returns the original maintainability index.
func (m *Mi) MiOriginal() float64 { return m.original }

// MiSei returns the Software Engineering Institute variant.
func (m *Mi) MiSei() float64 { return m.sei }

// MiVisualStudio returns the Visual Studio variant, clamped at zero.
func (m *Mi) MiVisualStudio() float64 { return m.vs }

// MarshalJSON implements json.Marshaler.
func (m *Mi) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Original     float64 `json:"mi_original"`
		Sei          float64 `json:"mi_sei"`
		VisualStudio float64 `json:"mi_visual_studio"`
	}{finite(m.original), finite(m.sei), finite(m.vs)})
}
