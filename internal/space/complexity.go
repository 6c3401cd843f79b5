package space

import "encoding/json"

// Cyclomatic is McCabe's cyclomatic complexity. The own value of a space is
// one plus its decision points; statistics cover every space in the subtree.
type Cyclomatic struct {
	own float64
	st  stat
}

// AddDecision records one decision point in the space.
func (c *Cyclomatic) AddDecision() { c.own++ }

func (c *Cyclomatic) finalize()            { c.st.observe(c.own) }
func (c *Cyclomatic) merge(o *Cyclomatic) { c.st.merge(&o.st) }

// Cyclomatic returns the complexity of the space itself.
func (c *Cyclomatic) Cyclomatic() float64 { return c.own }

// CyclomaticSum returns the complexity summed over the subtree.
func (c *Cyclomatic) CyclomaticSum() float64 { return c.st.sum }

// CyclomaticAverage returns the mean complexity per space in the subtree.
func (c *Cyclomatic) CyclomaticAverage() float64 { return c.st.average() }

// CyclomaticMin returns the smallest per-space complexity in the subtree.
func (c *Cyclomatic) CyclomaticMin() float64 { return c.st.minimum() }

// CyclomaticMax returns the largest per-space complexity in the subtree.
func (c *Cyclomatic) CyclomaticMax() float64 { return c.st.maximum() }

// MarshalJSON implements json.Marshaler.
func (c *Cyclomatic) MarshalJSON() ([]byte, error) {
	return json.Marshal(sumStats{
		Sum:     finite(c.CyclomaticSum()),
		Average: finite(c.CyclomaticAverage()),
		Min:     finite(c.CyclomaticMin()),
		Max:     finite(c.CyclomaticMax()),
	})
}

// Cognitive is the SonarSource cognitive complexity. Statistics cover the
// function and closure spaces of the subtree.
type Cognitive struct {
	own float64
	st  stat
}

// Increment adds n to the space's cognitive complexity.
func (c *Cognitive) Increment(n int) { c.own += float64(n) }

func (c *Cognitive) finalize(kind Kind) {
	if kind.IsFuncLike() {
		c.st.observe(c.own)
	}
}

func (c *Cognitive) merge(o *Cognitive) { c.st.merge(&o.st) }

// Cognitive returns the complexity of the space itself.
func (c *Cognitive) Cognitive() float64 { return c.own }

// CognitiveSum returns the complexity summed over the functions of the subtree.
func (c *Cognitive) CognitiveSum() float64 { return c.st.sum }

// CognitiveAverage returns the mean complexity per function.
func (c *Cognitive) CognitiveAverage() float64 { return c.st.average() }

// CognitiveMin returns the smallest per-function complexity.
func (c *Cognitive) CognitiveMin() float64 { return c.st.minimum() }

// CognitiveMax returns the largest per-function complexity.
func (c *Cognitive) CognitiveMax() float64 { return c.st.maximum() }

// MarshalJSON implements json.Marshaler.
func (c *Cognitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(sumStats{
		Sum:     finite(c.CognitiveSum()),
		Average: finite(c.CognitiveAverage()),
		Min:     finite(c.CognitiveMin()),
		Max:     finite(c.CognitiveMax()),
	})
}

// NExits counts the exit points (return statements) of a function.
// Statistics cover the function and closure spaces of the subtree.
type NExits struct {
	own float64
	st  stat
}

// AddExit records one exit point.
func (e *NExits) AddExit() { e.own++ }

func (e *NExits) finalize(kind Kind) {
	if kind.IsFuncLike() {
		e.st.observe(e.own)
	}
}

func (e *NExits) merge(o *NExits) { e.st.merge(&o.st) }

// Exit returns the exit points of the space itself.
func (e *NExits) Exit() float64 { return e.own }

// ExitSum returns the exit points summed over the functions of the subtree.
func (e *NExits) ExitSum() float64 { return e.st.sum }

// ExitAverage returns the mean exit points per function.
func (e *NExits) ExitAverage() float64 { return e.st.average() }

// ExitMin returns the smallest per-function exit count.
func (e *NExits) ExitMin() float64 { return e.st.minimum() }

// ExitMax returns the largest per-function exit count.
func (e *NExits) ExitMax() float64 { return e.st.maximum() }

// MarshalJSON implements json.Marshaler.
func (e *NExits) MarshalJSON() ([]byte, error) {
	return json.Marshal(sumStats{
		Sum:     finite(e.ExitSum()),
		Average: finite(e.ExitAverage()),
		Min:     finite(e.ExitMin()),
		Max:     finite(e.ExitMax()),
	})
}

type sumStats struct {
	Sum     float64 `json:"sum"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}
