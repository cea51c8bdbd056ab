// Package export writes an opened Touchstone dataset to spreadsheet formats.
package export

import (
	"fmt"

	"github.com/user/touchstone_go/internal/analysis"
	"github.com/user/touchstone_go/internal/parser"
)

// Dataset is what the exporters read from an opened file.
type Dataset interface {
	Name() string
	Options() parser.Options
	NumPorts() int
	NumPoints() int
	NumParams() int
	Frequency(index int) (float64, error)
	At(index int, side parser.Side, param int) (float64, float64, error)
}

// header is the Data table header: frequency, then both components of every entry.
func header(ds Dataset) []string {
	opts := ds.Options()
	cols := make([]string, 0, 1+2*ds.NumParams())
	cols = append(cols, fmt.Sprintf("Frequency (%s)", opts.FrequencyUnit))
	for param := 0; param < ds.NumParams(); param++ {
		label := analysis.ParamLabel(opts.ParameterType, ds.NumPorts(), param)
		cols = append(cols,
			label+" "+opts.SideLabel(parser.LHS),
			label+" "+opts.SideLabel(parser.RHS),
		)
	}
	return cols
}

// row returns the values of point index in header order.
func row(ds Dataset, index int) ([]float64, error) {
	freq, err := ds.Frequency(index)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, 1+2*ds.NumParams())
	values = append(values, freq)
	for param := 0; param < ds.NumParams(); param++ {
		lhs, rhs, err := ds.At(index, parser.LHS, param)
		if err != nil {
			return nil, err
		}
		values = append(values, lhs, rhs)
	}
	return values, nil
}
