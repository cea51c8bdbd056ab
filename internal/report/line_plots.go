package report

import (
	"fmt"

	"github.com/user/touchstone_go/internal/parser"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Past this many matrix entries the legend would cover the data.
const maxLegendEntries = 16

// CreateLinePlot draws one component of every matrix entry against frequency.
func CreateLinePlot(ds Dataset, side parser.Side, title string, size PlotSize) ([]byte, error) {
	if ds == nil || ds.NumPoints() == 0 {
		return nil, fmt.Errorf("no data points to plot")
	}

	opts := ds.Options()
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = fmt.Sprintf("Frequency (%s)", opts.FrequencyUnit)
	p.Y.Label.Text = opts.SideLabel(side)
	p.Add(plotter.NewGrid())

	numParams := ds.NumParams()
	for param := 0; param < numParams; param++ {
		pts := make(plotter.XYs, 0, ds.NumPoints())
		for i := 0; i < ds.NumPoints(); i++ {
			x, y, err := ds.Sample(i, side, param)
			if err != nil {
				return nil, fmt.Errorf("failed to read point %d: %w", i, err)
			}
			pts = append(pts, plotter.XY{X: x, Y: y})
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %s: %w", paramLabel(ds, param), err)
		}
		line.Color = plotutil.Color(param)
		line.Width = vg.Points(1.5)
		p.Add(line)
		if numParams <= maxLegendEntries {
			p.Legend.Add(paramLabel(ds, param), line)
		}
	}

	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)

	return renderPNG(p, size)
}
