package row

import (
	"fmt"

	"github.com/archaeo-tools/archaeo/internal/space"
)

// Variant selects the row schema.
type Variant int

const (
	// VariantRegular selects the Regular schema.
	VariantRegular Variant = iota
	// VariantExtended selects the Extended schema.
	VariantExtended
)

// VariantFor returns VariantExtended when extended is set and VariantRegular
// otherwise.
func VariantFor(extended bool) Variant {
	if extended {
		return VariantExtended
	}
	return VariantRegular
}

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantRegular:
		return "regular"
	case VariantExtended:
		return "extended"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Set is an ordered sequence of rows of a single variant. Exactly one of
// Regular and Extended is used, as selected by Variant.
type Set struct {
	Variant  Variant
	Regular  []Regular
	Extended []Extended
}

// Len returns the number of rows.
func (s *Set) Len() int {
	if s.Variant == VariantExtended {
		return len(s.Extended)
	}
	return len(s.Regular)
}

// Header returns the column names of the set's schema.
func (s *Set) Header() []string {
	if s.Variant == VariantExtended {
		return ExtendedColumns
	}
	return RegularColumns
}

// Records returns every row as CSV cells.
func (s *Set) Records() [][]string {
	records := make([][]string, 0, s.Len())
	if s.Variant == VariantExtended {
		for i := range s.Extended {
			records = append(records, s.Extended[i].Record())
		}
		return records
	}
	for i := range s.Regular {
		records = append(records, s.Regular[i].Record())
	}
	return records
}

// Values returns row i as its identity and its metric columns, in schema
// order after the identity columns.
func (s *Set) Values(i int) (Identity, []float64) {
	var (
		id   Identity
		cols []*float64
	)
	if s.Variant == VariantExtended {
		id, cols = s.Extended[i].Identity, s.Extended[i].floats()
	} else {
		id, cols = s.Regular[i].Identity, s.Regular[i].floats()
	}
	values := make([]float64, len(cols))
	for j, c := range cols {
		values[j] = *c
	}
	return id, values
}

// IdentityColumns returns the number of leading identity columns of every
// schema.
func IdentityColumns() int { return len(identityColumns) }

// Rows returns the rows for JSON encoding. The result is never nil so an
// empty set encodes as an empty array.
func (s *Set) Rows() any {
	if s.Variant == VariantExtended {
		if s.Extended == nil {
			return []Extended{}
		}
		return s.Extended
	}
	if s.Regular == nil {
		return []Regular{}
	}
	return s.Regular
}

// Flatten walks spaces in pre-order and builds one row per visited space.
// Every row carries sourceFile, and its parent_name is the space's own name
// or NoNameFound.
func Flatten(spaces []*space.Space, sourceFile string, v Variant) Set {
	set := Set{Variant: v}
	var walk func(sp *space.Space)
	walk = func(sp *space.Space) {
		parent := sp.NameOr(NoNameFound)
		switch v {
		case VariantExtended:
			set.Extended = append(set.Extended, NewExtended(sp, &parent, &sourceFile))
		default:
			set.Regular = append(set.Regular, NewRegular(sp, &parent, &sourceFile))
		}
		for _, child := range sp.Spaces {
			walk(child)
		}
	}
	for _, sp := range spaces {
		walk(sp)
	}
	return set
}

// FlattenTree projects a unit tree into rows: the unit's children by default,
// the unit itself and its whole subtree when withUnit is set.
func FlattenTree(root *space.Space, sourceFile string, v Variant, withUnit bool) Set {
	spaces := root.Spaces
	if withUnit {
		spaces = []*space.Space{root}
	}
	return Flatten(spaces, sourceFile, v)
}
