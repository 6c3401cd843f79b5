package row

import "github.com/archaeo-tools/archaeo/internal/space"

// Halstead holds the halstead columns, identical in both schemas.
type Halstead struct {
	HalsteadN1                     float64 `json:"halstead_n1"`
	HalsteadBigN1                  float64 `json:"halstead_N1"`
	HalsteadN2                     float64 `json:"halstead_n2"`
	HalsteadBigN2                  float64 `json:"halstead_N2"`
	HalsteadLength                 float64 `json:"halstead_length"`
	HalsteadEstimatedProgramLength float64 `json:"halstead_estimated_program_length"`
	HalsteadPurityRatio            float64 `json:"halstead_purity_ratio"`
	HalsteadVocabulary             float64 `json:"halstead_vocabulary"`
	HalsteadVolume                 float64 `json:"halstead_volume"`
	HalsteadDifficulty             float64 `json:"halstead_difficulty"`
	HalsteadLevel                  float64 `json:"halstead_level"`
	HalsteadEffort                 float64 `json:"halstead_effort"`
	HalsteadTime                   float64 `json:"halstead_time"`
	HalsteadBugs                   float64 `json:"halstead_bugs"`
}

func newHalstead(h *space.Halstead) Halstead {
	return Halstead{
		HalsteadN1:                     h.UOperators(),
		HalsteadBigN1:                  h.Operators(),
		HalsteadN2:                     h.UOperands(),
		HalsteadBigN2:                  h.Operands(),
		HalsteadLength:                 h.Length(),
		HalsteadEstimatedProgramLength: h.EstimatedProgramLength(),
		HalsteadPurityRatio:            h.PurityRatio(),
		HalsteadVocabulary:             h.Vocabulary(),
		HalsteadVolume:                 h.Volume(),
		HalsteadDifficulty:             h.Difficulty(),
		HalsteadLevel:                  h.Level(),
		HalsteadEffort:                 h.Effort(),
		HalsteadTime:                   h.Time(),
		HalsteadBugs:                   h.Bugs(),
	}
}

func (h *Halstead) floats() []*float64 {
	return []*float64{
		&h.HalsteadN1, &h.HalsteadBigN1, &h.HalsteadN2, &h.HalsteadBigN2,
		&h.HalsteadLength, &h.HalsteadEstimatedProgramLength,
		&h.HalsteadPurityRatio, &h.HalsteadVocabulary, &h.HalsteadVolume,
		&h.HalsteadDifficulty, &h.HalsteadLevel, &h.HalsteadEffort,
		&h.HalsteadTime, &h.HalsteadBugs,
	}
}

// Loc holds the lines-of-code columns, identical in both schemas.
type Loc struct {
	LocSloc  float64 `json:"loc_sloc"`
	LocPloc  float64 `json:"loc_ploc"`
	LocLloc  float64 `json:"loc_lloc"`
	LocCloc  float64 `json:"loc_cloc"`
	LocBlank float64 `json:"loc_blank"`
}

func newLoc(l *space.Loc) Loc {
	return Loc{
		LocSloc:  l.Sloc(),
		LocPloc:  l.Ploc(),
		LocLloc:  l.Lloc(),
		LocCloc:  l.Cloc(),
		LocBlank: l.Blank(),
	}
}

func (l *Loc) floats() []*float64 {
	return []*float64{&l.LocSloc, &l.LocPloc, &l.LocLloc, &l.LocCloc, &l.LocBlank}
}

// Mi holds the maintainability index columns, identical in both schemas.
type Mi struct {
	MiOriginal     float64 `json:"mi_original"`
	MiSei          float64 `json:"mi_sei"`
	MiVisualStudio float64 `json:"mi_visual_studio"`
}

func newMi(m *space.Mi) Mi {
	return Mi{
		MiOriginal:     m.MiOriginal(),
		MiSei:          m.MiSei(),
		MiVisualStudio: m.MiVisualStudio(),
	}
}

func (m *Mi) floats() []*float64 {
	return []*float64{&m.MiOriginal, &m.MiSei, &m.MiVisualStudio}
}

func newIdentity(sp *space.Space, parentName, sourceFile *string) Identity {
	return Identity{
		Name:       sp.Name,
		SourceFile: sourceFile,
		StartLine:  sp.StartLine,
		EndLine:    sp.EndLine,
		Kind:       sp.Kind.String(),
		ParentName: parentName,
	}
}
