// Package touchstone is the entry point for reading Touchstone (.sNp) files.
//
// A File owns the points of the last successfully opened file together with its
// option line settings and running extrema. It is not safe for concurrent use;
// callers that share a File across goroutines must synchronize Open and queries.
package touchstone

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/user/touchstone_go/internal/analysis"
	"github.com/user/touchstone_go/internal/parser"
)

// Re-exported so callers can select a component without importing parser.
const (
	LHS = parser.LHS
	RHS = parser.RHS
)

// File is an opened Touchstone dataset. The zero value is not usable; call New.
type File struct {
	cfg parser.Config

	name     string
	options  parser.Options
	points   []parser.DataPoint
	extrema  analysis.Extrema
	numPorts int
	warnings []string
}

// New returns an empty File with default options.
func New(cfg parser.Config) *File {
	return &File{
		cfg:     cfg,
		options: parser.DefaultOptions(),
		points:  make([]parser.DataPoint, 0),
	}
}

// Open parses the file at path. On success the previous dataset is replaced as a
// whole; on failure the File is left exactly as it was.
func (f *File) Open(path string) error {
	parsed, err := parser.ParseFile(path, f.cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	f.load(filepath.Base(path), parsed)
	return nil
}

// OpenReader is Open for data that does not live on disk. name is only used for display.
func (f *File) OpenReader(r io.Reader, name string) error {
	parsed, err := parser.Parse(r, f.cfg)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	f.load(name, parsed)
	return nil
}

func (f *File) load(name string, parsed *parser.ParsedTouchstone) {
	extrema := analysis.ComputeExtrema(parsed.Points)

	f.name = name
	f.options = parsed.Options
	f.points = parsed.Points
	f.extrema = extrema
	f.numPorts = parsed.NumPorts
	f.warnings = parsed.Warnings
}

// Name is the base name of the opened file.
func (f *File) Name() string { return f.name }

// Options returns the option line settings in effect.
func (f *File) Options() parser.Options { return f.options }

// NumPoints is the number of parsed data points.
func (f *File) NumPoints() int { return len(f.points) }

// NumPorts is the configured or inferred port count, 0 if unknown.
func (f *File) NumPorts() int { return f.numPorts }

// NumParams is the number of matrix entries in the first point.
func (f *File) NumParams() int {
	if len(f.points) == 0 {
		return 0
	}
	return len(f.points[0].Measurements)
}

// Warnings lists non-fatal issues found while parsing.
func (f *File) Warnings() []string {
	out := make([]string, len(f.warnings))
	copy(out, f.warnings)
	return out
}

func (f *File) pair(index int, param int) (parser.Pair, error) {
	if index < 0 || index >= len(f.points) {
		return parser.Pair{}, fmt.Errorf("%w: %d (have %d points)", ErrIndexOutOfRange, index, len(f.points))
	}
	m := f.points[index].Measurements
	if param < 0 || param >= len(m) {
		return parser.Pair{}, fmt.Errorf("%w: %d (point %d has %d)", ErrParamOutOfRange, param, index, len(m))
	}
	return m[param], nil
}

// At returns the param-th pair of point index, ordered so that the component on
// side comes first and its complement second. For "1.0 0.5 -10.0",
// At(0, LHS, 0) is (0.5, -10.0) and At(0, RHS, 0) is (-10.0, 0.5).
func (f *File) At(index int, side parser.Side, param int) (float64, float64, error) {
	p, err := f.pair(index, param)
	if err != nil {
		return 0, 0, err
	}
	return p.Get(side), p.Complement(side), nil
}

// Sample returns the frequency of point index (in the file's unit) and one component of
// its param-th pair, ready for plotting.
func (f *File) Sample(index int, side parser.Side, param int) (float64, float64, error) {
	p, err := f.pair(index, param)
	if err != nil {
		return 0, 0, err
	}
	return f.points[index].Frequency, p.Get(side), nil
}

// Frequency returns the frequency of point index as written in the file.
func (f *File) Frequency(index int) (float64, error) {
	if index < 0 || index >= len(f.points) {
		return 0, fmt.Errorf("%w: %d (have %d points)", ErrIndexOutOfRange, index, len(f.points))
	}
	return f.points[index].Frequency, nil
}

// FrequencyHz returns the frequency of point index converted to Hz.
func (f *File) FrequencyHz(index int) (float64, error) {
	freq, err := f.Frequency(index)
	if err != nil {
		return 0, err
	}
	return analysis.ToHz(freq, f.options.FrequencyUnit), nil
}

// Points returns a copy of every parsed point.
func (f *File) Points() []parser.DataPoint {
	out := make([]parser.DataPoint, len(f.points))
	for i, p := range f.points {
		m := make([]parser.Pair, len(p.Measurements))
		copy(m, p.Measurements)
		out[i] = parser.DataPoint{Frequency: p.Frequency, Measurements: m}
	}
	return out
}

// Summarize computes per-entry statistics for the opened dataset.
func (f *File) Summarize() (*analysis.Summary, error) {
	if len(f.points) == 0 {
		return nil, ErrEmptyDataset
	}
	return analysis.Summarize(f.points, f.options, f.numPorts)
}

func (f *File) bound(v float64) (float64, error) {
	if f.extrema.Empty() {
		return 0, ErrEmptyDataset
	}
	return v, nil
}

func (f *File) MaxFreq() (float64, error) { return f.bound(f.extrema.MaxFreq) }
func (f *File) MinFreq() (float64, error) { return f.bound(f.extrema.MinFreq) }
func (f *File) MaxLHS() (float64, error)  { return f.bound(f.extrema.MaxLHS) }
func (f *File) MinLHS() (float64, error)  { return f.bound(f.extrema.MinLHS) }
func (f *File) MaxRHS() (float64, error)  { return f.bound(f.extrema.MaxRHS) }
func (f *File) MinRHS() (float64, error)  { return f.bound(f.extrema.MinRHS) }
