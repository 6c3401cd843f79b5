package row

import "github.com/archaeo-tools/archaeo/internal/space"

// Extended is one row of the extended schema: the regular columns plus the
// subtree aggregates of every family that has them.
type Extended struct {
	Identity

	FnArgs                float64 `json:"fn_args"`
	ClosureArgs           float64 `json:"closure_args"`
	NArgsTotalFunctions   float64 `json:"nargs_total_functions"`
	NArgsTotalClosures    float64 `json:"nargs_total_closures"`
	NArgsAverageFunctions float64 `json:"nargs_average_functions"`
	NArgsAverageClosures  float64 `json:"nargs_average_closures"`
	NArgsTotal            float64 `json:"nargs_total"`
	NArgsAverage          float64 `json:"nargs_average"`
	NArgsFunctionsMin     float64 `json:"nargs_functions_min"`
	NArgsFunctionsMax     float64 `json:"nargs_functions_max"`
	NArgsClosuresMin      float64 `json:"nargs_closures_min"`
	NArgsClosuresMax      float64 `json:"nargs_closures_max"`

	NExits        float64 `json:"nexits"`
	NExitsSum     float64 `json:"nexits_sum"`
	NExitsAverage float64 `json:"nexits_average"`
	NExitsMin     float64 `json:"nexits_min"`
	NExitsMax     float64 `json:"nexits_max"`

	Cognitive        float64 `json:"cognitive"`
	CognitiveSum     float64 `json:"cognitive_sum"`
	CognitiveAverage float64 `json:"cognitive_average"`
	CognitiveMin     float64 `json:"cognitive_min"`
	CognitiveMax     float64 `json:"cognitive_max"`

	Cyclomatic        float64 `json:"cyclomatic"`
	CyclomaticSum     float64 `json:"cyclomatic_sum"`
	CyclomaticAverage float64 `json:"cyclomatic_average"`
	CyclomaticMin     float64 `json:"cyclomatic_min"`
	CyclomaticMax     float64 `json:"cyclomatic_max"`

	Halstead

	Loc

	NomFunctions    float64 `json:"nom_functions"`
	NomClosures     float64 `json:"nom_closures"`
	NomTotal        float64 `json:"nom_total"`
	NomFunctionsMin float64 `json:"nom_functions_min"`
	NomFunctionsMax float64 `json:"nom_functions_max"`
	NomClosuresMin  float64 `json:"nom_closures_min"`
	NomClosuresMax  float64 `json:"nom_closures_max"`

	Mi
}

// NewExtended projects sp into an extended row. Non-finite values are
// replaced with zero.
func NewExtended(sp *space.Space, parentName, sourceFile *string) Extended {
	m := &sp.Metrics
	r := Extended{
		Identity: newIdentity(sp, parentName, sourceFile),

		FnArgs:                m.NArgs.FnArgs(),
		ClosureArgs:           m.NArgs.ClosureArgs(),
		NArgsTotalFunctions:   m.NArgs.FnArgsSum(),
		NArgsTotalClosures:    m.NArgs.ClosureArgsSum(),
		NArgsAverageFunctions: m.NArgs.FnArgsAverage(),
		NArgsAverageClosures:  m.NArgs.ClosureArgsAverage(),
		NArgsTotal:            m.NArgs.NArgsTotal(),
		NArgsAverage:          m.NArgs.NArgsAverage(),
		NArgsFunctionsMin:     m.NArgs.FnArgsMin(),
		NArgsFunctionsMax:     m.NArgs.FnArgsMax(),
		NArgsClosuresMin:      m.NArgs.ClosureArgsMin(),
		NArgsClosuresMax:      m.NArgs.ClosureArgsMax(),

		NExits:        m.NExits.Exit(),
		NExitsSum:     m.NExits.ExitSum(),
		NExitsAverage: m.NExits.ExitAverage(),
		NExitsMin:     m.NExits.ExitMin(),
		NExitsMax:     m.NExits.ExitMax(),

		Cognitive:        m.Cognitive.Cognitive(),
		CognitiveSum:     m.Cognitive.CognitiveSum(),
		CognitiveAverage: m.Cognitive.CognitiveAverage(),
		CognitiveMin:     m.Cognitive.CognitiveMin(),
		CognitiveMax:     m.Cognitive.CognitiveMax(),

		Cyclomatic:        m.Cyclomatic.Cyclomatic(),
		CyclomaticSum:     m.Cyclomatic.CyclomaticSum(),
		CyclomaticAverage: m.Cyclomatic.CyclomaticAverage(),
		CyclomaticMin:     m.Cyclomatic.CyclomaticMin(),
		CyclomaticMax:     m.Cyclomatic.CyclomaticMax(),

		Halstead: newHalstead(&m.Halstead),
		Loc:      newLoc(&m.Loc),

		NomFunctions:    m.Nom.Functions(),
		NomClosures:     m.Nom.Closures(),
		NomTotal:        m.Nom.Total(),
		NomFunctionsMin: m.Nom.FunctionsMin(),
		NomFunctionsMax: m.Nom.FunctionsMax(),
		NomClosuresMin:  m.Nom.ClosuresMin(),
		NomClosuresMax:  m.Nom.ClosuresMax(),

		Mi: newMi(&m.Mi),
	}
	r.sanitize()
	return r
}

func (r *Extended) floats() []*float64 {
	cols := []*float64{
		&r.FnArgs, &r.ClosureArgs,
		&r.NArgsTotalFunctions, &r.NArgsTotalClosures,
		&r.NArgsAverageFunctions, &r.NArgsAverageClosures,
		&r.NArgsTotal, &r.NArgsAverage,
		&r.NArgsFunctionsMin, &r.NArgsFunctionsMax,
		&r.NArgsClosuresMin, &r.NArgsClosuresMax,
		&r.NExits, &r.NExitsSum, &r.NExitsAverage, &r.NExitsMin, &r.NExitsMax,
		&r.Cognitive, &r.CognitiveSum, &r.CognitiveAverage, &r.CognitiveMin, &r.CognitiveMax,
		&r.Cyclomatic, &r.CyclomaticSum, &r.CyclomaticAverage, &r.CyclomaticMin, &r.CyclomaticMax,
	}
	cols = append(cols, r.Halstead.floats()...)
	cols = append(cols, r.Loc.floats()...)
	cols = append(cols,
		&r.NomFunctions, &r.NomClosures, &r.NomTotal,
		&r.NomFunctionsMin, &r.NomFunctionsMax,
		&r.NomClosuresMin, &r.NomClosuresMax,
	)
	return append(cols, r.Mi.floats()...)
}

func (r *Extended) sanitize() { sanitizeAll(r.floats()) }

// Header returns the extended schema columns.
func (r *Extended) Header() []string { return ExtendedColumns }

// Record returns the row as CSV cells in schema order.
func (r *Extended) Record() []string {
	return appendFloats(r.Identity.record(len(ExtendedColumns)), r.floats())
}
