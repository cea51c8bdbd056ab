package analysis

import "github.com/user/touchstone_go/internal/parser"

// ParamStats holds the magnitude statistics of one matrix entry across all frequencies.
type ParamStats struct {
	Param     int    // index into DataPoint.Measurements
	Label     string // e.g. "S21"
	NumValid  int    // points with a finite dB magnitude
	MeanDB    float64
	StdDevDB  float64
	MinDB     float64
	MinFreqHz float64 // frequency at which MinDB occurs
	MaxDB     float64
	MaxFreqHz float64
}

// RankedParam is used for ordering matrix entries by a single value.
type RankedParam struct {
	Param int
	Label string
	Value float64
}

// Summary is the per-file analysis shown in reports.
type Summary struct {
	Options      parser.Options
	NumPorts     int
	NumPoints    int
	StartFreqHz  float64
	StopFreqHz   float64
	Params       []ParamStats
	RankedByPeak []RankedParam // sorted by MaxDB, descending
	Warnings     []string
}

func NewSummary(opts parser.Options, numPorts int) *Summary {
	return &Summary{
		Options:      opts,
		NumPorts:     numPorts,
		Params:       make([]ParamStats, 0),
		RankedByPeak: make([]RankedParam, 0),
		Warnings:     make([]string, 0),
	}
}
