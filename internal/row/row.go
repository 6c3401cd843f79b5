// Package row flattens space trees into fixed-schema records.
//
// Two schemas exist: Regular carries the per-space values of every metric
// family, Extended adds the subtree aggregates (sum, average, min, max).
// Column names and their order are an external contract shared by the CSV
// header, the CSV records and the JSON object keys.
package row

import (
	"strconv"

	"github.com/archaeo-tools/archaeo/internal/numeric"
)

// NoNameFound is the parent_name written for anonymous spaces.
const NoNameFound = "no_name_found"

var identityColumns = []string{
	"name", "source_file", "start_line", "end_line", "kind", "parent_name",
}

var halsteadColumns = []string{
	"halstead_n1", "halstead_N1", "halstead_n2", "halstead_N2",
	"halstead_length", "halstead_estimated_program_length",
	"halstead_purity_ratio", "halstead_vocabulary", "halstead_volume",
	"halstead_difficulty", "halstead_level", "halstead_effort",
	"halstead_time", "halstead_bugs",
}

var locColumns = []string{
	"loc_sloc", "loc_ploc", "loc_lloc", "loc_cloc", "loc_blank",
}

var miColumns = []string{"mi_original", "mi_sei", "mi_visual_studio"}

// RegularColumns is the ordered header of the regular schema.
var RegularColumns = concat(
	identityColumns,
	[]string{"fn_args", "closure_args", "nexits", "cognitive", "cyclomatic"},
	halsteadColumns,
	locColumns,
	[]string{"nom_functions", "nom_closures", "nom_total"},
	miColumns,
)

// ExtendedColumns is the ordered header of the extended schema.
var ExtendedColumns = concat(
	identityColumns,
	[]string{
		"fn_args", "closure_args",
		"nargs_total_functions", "nargs_total_closures",
		"nargs_average_functions", "nargs_average_closures",
		"nargs_total", "nargs_average",
		"nargs_functions_min", "nargs_functions_max",
		"nargs_closures_min", "nargs_closures_max",
		"nexits", "nexits_sum", "nexits_average", "nexits_min", "nexits_max",
		"cognitive", "cognitive_sum", "cognitive_average", "cognitive_min", "cognitive_max",
		"cyclomatic", "cyclomatic_sum", "cyclomatic_average", "cyclomatic_min", "cyclomatic_max",
	},
	halsteadColumns,
	locColumns,
	[]string{
		"nom_functions", "nom_closures", "nom_total",
		"nom_functions_min", "nom_functions_max",
		"nom_closures_min", "nom_closures_max",
	},
	miColumns,
)

func concat(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Identity holds the columns shared by both schemas.
type Identity struct {
	Name       *string `json:"name"`
	SourceFile *string `json:"source_file"`
	StartLine  int     `json:"start_line"`
	EndLine    int     `json:"end_line"`
	Kind       string  `json:"kind"`
	ParentName *string `json:"parent_name"`
}

func (id *Identity) record(n int) []string {
	rec := make([]string, 0, n)
	return append(rec,
		optional(id.Name),
		optional(id.SourceFile),
		strconv.Itoa(id.StartLine),
		strconv.Itoa(id.EndLine),
		id.Kind,
		optional(id.ParentName),
	)
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatFloat renders a column value with the shortest exact representation.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// sanitizeAll replaces every non-finite value with zero.
func sanitizeAll(cols []*float64) {
	for _, c := range cols {
		*c = numeric.Finite(*c)
	}
}

func appendFloats(rec []string, cols []*float64) []string {
	for _, c := range cols {
		rec = append(rec, FormatFloat(*c))
	}
	return rec
}
