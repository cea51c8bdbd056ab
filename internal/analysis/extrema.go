package analysis

import "github.com/user/touchstone_go/internal/parser"

// Extrema tracks the running bounds of frequency and of the first matrix entry's
// two components. Values stay in the file's native unit and representation.
type Extrema struct {
	MinFreq float64
	MaxFreq float64
	MinLHS  float64
	MaxLHS  float64
	MinRHS  float64
	MaxRHS  float64

	count    int
	hasPairs bool
}

// Update folds one point into the bounds. The first point seeds every value.
func (e *Extrema) Update(p parser.DataPoint) {
	if e.count == 0 {
		e.MinFreq, e.MaxFreq = p.Frequency, p.Frequency
	} else {
		if p.Frequency < e.MinFreq {
			e.MinFreq = p.Frequency
		}
		if p.Frequency > e.MaxFreq {
			e.MaxFreq = p.Frequency
		}
	}
	e.count++

	if len(p.Measurements) == 0 {
		return
	}
	m := p.Measurements[0]
	if !e.hasPairs {
		e.MinLHS, e.MaxLHS = m.LHS, m.LHS
		e.MinRHS, e.MaxRHS = m.RHS, m.RHS
		e.hasPairs = true
		return
	}
	if m.LHS < e.MinLHS {
		e.MinLHS = m.LHS
	}
	if m.LHS > e.MaxLHS {
		e.MaxLHS = m.LHS
	}
	if m.RHS < e.MinRHS {
		e.MinRHS = m.RHS
	}
	if m.RHS > e.MaxRHS {
		e.MaxRHS = m.RHS
	}
}

// Empty reports whether no point has been folded in yet.
func (e *Extrema) Empty() bool { return e.count == 0 }

// Count is the number of points folded in.
func (e *Extrema) Count() int { return e.count }

// ComputeExtrema folds every point in order.
func ComputeExtrema(points []parser.DataPoint) Extrema {
	var e Extrema
	for _, p := range points {
		e.Update(p)
	}
	return e
}
