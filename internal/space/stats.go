package space

import "github.com/archaeo-tools/archaeo/internal/numeric"

// stat accumulates sum, count, minimum and maximum of a per-space value
// over a subtree.
type stat struct {
	sum float64
	n   float64
	min float64
	max float64
}

func (s *stat) observe(v float64) {
	if s.n == 0 || v < s.min {
		s.min = v
	}
	if s.n == 0 || v > s.max {
		s.max = v
	}
	s.sum += v
	s.n++
}

func (s *stat) merge(o *stat) {
	if o.n == 0 {
		return
	}
	if s.n == 0 || o.min < s.min {
		s.min = o.min
	}
	if s.n == 0 || o.max > s.max {
		s.max = o.max
	}
	s.sum += o.sum
	s.n += o.n
}

// average is NaN when nothing was observed.
func (s *stat) average() float64 {
	return numeric.Ratio(s.sum, s.n)
}

func (s *stat) minimum() float64 {
	if s.n == 0 {
		return 0
	}
	return s.min
}

func (s *stat) maximum() float64 {
	if s.n == 0 {
		return 0
	}
	return s.max
}
