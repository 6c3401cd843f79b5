package row

import "github.com/archaeo-tools/archaeo/internal/space"

// Regular is one row of the regular schema.
type Regular struct {
	Identity

	FnArgs      float64 `json:"fn_args"`
	ClosureArgs float64 `json:"closure_args"`
	NExits      float64 `json:"nexits"`
	Cognitive   float64 `json:"cognitive"`
	Cyclomatic  float64 `json:"cyclomatic"`

	Halstead

	Loc

	NomFunctions float64 `json:"nom_functions"`
	NomClosures  float64 `json:"nom_closures"`
	NomTotal     float64 `json:"nom_total"`

	Mi
}

// NewRegular projects sp into a regular row. Non-finite values are replaced
// with zero.
func NewRegular(sp *space.Space, parentName, sourceFile *string) Regular {
	m := &sp.Metrics
	r := Regular{
		Identity: newIdentity(sp, parentName, sourceFile),

		FnArgs:      m.NArgs.FnArgs(),
		ClosureArgs: m.NArgs.ClosureArgs(),
		NExits:      m.NExits.Exit(),
		Cognitive:   m.Cognitive.Cognitive(),
		Cyclomatic:  m.Cyclomatic.Cyclomatic(),

		Halstead: newHalstead(&m.Halstead),
		Loc:      newLoc(&m.Loc),

		NomFunctions: m.Nom.Functions(),
		NomClosures:  m.Nom.Closures(),
		NomTotal:     m.Nom.Total(),

		Mi: newMi(&m.Mi),
	}
	r.sanitize()
	return r
}

// floats returns the numeric columns in schema order.
func (r *Regular) floats() []*float64 {
	cols := []*float64{&r.FnArgs, &r.ClosureArgs, &r.NExits, &r.Cognitive, &r.Cyclomatic}
	cols = append(cols, r.Halstead.floats()...)
	cols = append(cols, r.Loc.floats()...)
	cols = append(cols, &r.NomFunctions, &r.NomClosures, &r.NomTotal)
	return append(cols, r.Mi.floats()...)
}

func (r *Regular) sanitize() { sanitizeAll(r.floats()) }

// Header returns the regular schema columns.
func (r *Regular) Header() []string { return RegularColumns }

// Record returns the row as CSV cells in schema order.
func (r *Regular) Record() []string {
	return appendFloats(r.Identity.record(len(RegularColumns)), r.floats())
}
