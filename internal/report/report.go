// Package report renders plots and PDF reports for an opened Touchstone dataset.
package report

import (
	"bytes"
	"fmt"

	"github.com/user/touchstone_go/internal/analysis"
	"github.com/user/touchstone_go/internal/parser"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Dataset is the read side of an opened Touchstone file.
type Dataset interface {
	Name() string
	Options() parser.Options
	NumPorts() int
	NumPoints() int
	NumParams() int
	Warnings() []string
	Sample(index int, side parser.Side, param int) (float64, float64, error)
	MinFreq() (float64, error)
	MaxFreq() (float64, error)
	MinLHS() (float64, error)
	MaxLHS() (float64, error)
	MinRHS() (float64, error)
	MaxRHS() (float64, error)
}

// PlotSize is the rendered size of a PNG plot.
type PlotSize struct {
	Width, Height vg.Length
}

// DefaultPlotSize matches the REPORT_PLOT_WIDTH/HEIGHT defaults.
var DefaultPlotSize = PlotSize{Width: vg.Points(800), Height: vg.Points(400)}

// NewPlotSize converts configured sizes, given in points.
func NewPlotSize(width, height int) PlotSize {
	return PlotSize{Width: vg.Points(float64(width)), Height: vg.Points(float64(height))}
}

// Plot image keys understood by BuildPDFReport.
const (
	KeyLineLHS    = "line_lhs"
	KeyLineRHS    = "line_rhs"
	KeyHeatmapLHS = "heatmap_lhs"
	KeyHeatmapRHS = "heatmap_rhs"
)

func paramLabel(ds Dataset, param int) string {
	return analysis.ParamLabel(ds.Options().ParameterType, ds.NumPorts(), param)
}

func renderPNG(p *plot.Plot, size PlotSize) ([]byte, error) {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultPlotSize
	}
	writer, err := p.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}
