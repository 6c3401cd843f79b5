package space

import "encoding/json"

// Loc holds the line counts of a space.
//
//   - sloc: physical lines spanned by the space
//   - ploc: lines holding at least one code token
//   - cloc: lines holding a comment
//   - lloc: logical lines (statements)
//   - blank: spanned lines with neither code nor comments
type Loc struct {
	start, end int
	code       map[int]struct{}
	comment    map[int]struct{}
	logical    float64

	slocSt, plocSt, llocSt, clocSt, blankSt stat
}

func newLoc(start, end int) Loc {
	return Loc{
		start:   start,
		end:     end,
		code:    make(map[int]struct{}),
		comment: make(map[int]struct{}),
	}
}

// AddCodeLines marks lines first through last as holding code.
func (l *Loc) AddCodeLines(first, last int) {
	if l.code == nil {
		l.code = make(map[int]struct{})
	}
	for line := first; line <= last; line++ {
		l.code[line] = struct{}{}
	}
}

// AddCommentLines marks lines first through last as holding a comment.
func (l *Loc) AddCommentLines(first, last int) {
	if l.comment == nil {
		l.comment = make(map[int]struct{})
	}
	for line := first; line <= last; line++ {
		l.comment[line] = struct{}{}
	}
}

// AddStatement records one logical line.
func (l *Loc) AddStatement() { l.logical++ }

func (l *Loc) finalize() {
	l.slocSt.observe(l.Sloc())
	l.plocSt.observe(l.Ploc())
	l.llocSt.observe(l.Lloc())
	l.clocSt.observe(l.Cloc())
	l.blankSt.observe(l.Blank())
}

func (l *Loc) merge(o *Loc) {
	if l.code == nil {
		l.code = make(map[int]struct{})
	}
	for line := range o.code {
		l.code[line] = struct{}{}
	}
	if l.comment == nil {
		l.comment = make(map[int]struct{})
	}
	for line := range o.comment {
		l.comment[line] = struct{}{}
	}
	l.logical += o.logical

	l.slocSt.merge(&o.slocSt)
	l.plocSt.merge(&o.plocSt)
	l.llocSt.merge(&o.llocSt)
	l.clocSt.merge(&o.clocSt)
	l.blankSt.merge(&o.blankSt)
}

// Sloc returns the number of physical lines spanned by the space.
func (l *Loc) Sloc() float64 { return float64(l.end - l.start + 1) }

// Ploc returns the number of lines with code.
func (l *Loc) Ploc() float64 { return float64(l.countInSpan(l.code)) }

// Lloc returns the number of statements.
func (l *Loc) Lloc() float64 { return l.logical }

// Cloc returns the number of lines with comments.
func (l *Loc) Cloc() float64 { return float64(l.countInSpan(l.comment)) }

// Blank returns the number of lines with neither code nor comments.
func (l *Loc) Blank() float64 {
	used := l.countInSpan(l.code)
	for line := range l.comment {
		if _, ok := l.code[line]; !ok && l.inSpan(line) {
			used++
		}
	}
	return l.Sloc() - float64(used)
}

func (l *Loc) inSpan(line int) bool {
	return line >= l.start && line <= l.end
}

func (l *Loc) countInSpan(lines map[int]struct{}) int {
	n := 0
	for line := range lines {
		if l.inSpan(line) {
			n++
		}
	}
	return n
}

// MarshalJSON implements json.Marshaler.
func (l *Loc) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Sloc         float64 `json:"sloc"`
		Ploc         float64 `json:"ploc"`
		Lloc         float64 `json:"lloc"`
		Cloc         float64 `json:"cloc"`
		Blank        float64 `json:"blank"`
		SlocAverage  float64 `json:"sloc_average"`
		PlocAverage  float64 `json:"ploc_average"`
		LlocAverage  float64 `json:"lloc_average"`
		ClocAverage  float64 `json:"cloc_average"`
		BlankAverage float64 `json:"blank_average"`
		SlocMin      float64 `json:"sloc_min"`
		SlocMax      float64 `json:"sloc_max"`
		ClocMin      float64 `json:"cloc_min"`
		ClocMax      float64 `json:"cloc_max"`
		PlocMin      float64 `json:"ploc_min"`
		PlocMax      float64 `json:"ploc_max"`
		LlocMin      float64 `json:"lloc_min"`
		LlocMax      float64 `json:"lloc_max"`
		BlankMin     float64 `json:"blank_min"`
		BlankMax     float64 `json:"blank_max"`
	}{
		Sloc:         finite(l.Sloc()),
		Ploc:         finite(l.Ploc()),
		Lloc:         finite(l.Lloc()),
		Cloc:         finite(l.Cloc()),
		Blank:        finite(l.Blank()),
		SlocAverage:  finite(l.slocSt.average()),
		PlocAverage:  finite(l.plocSt.average()),
		LlocAverage:  finite(l.llocSt.average()),
		ClocAverage:  finite(l.clocSt.average()),
		BlankAverage: finite(l.blankSt.average()),
		SlocMin:      finite(l.slocSt.minimum()),
		SlocMax:      finite(l.slocSt.maximum()),
		ClocMin:      finite(l.clocSt.minimum()),
		ClocMax:      finite(l.clocSt.maximum()),
		PlocMin:      finite(l.plocSt.minimum()),
		PlocMax:      finite(l.plocSt.maximum()),
		LlocMin:      finite(l.llocSt.minimum()),
		LlocMax:      finite(l.llocSt.maximum()),
		BlankMin:     finite(l.blankSt.minimum()),
		BlankMax:     finite(l.blankSt.maximum()),
	})
}
