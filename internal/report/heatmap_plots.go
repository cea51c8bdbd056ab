package report

import (
	"fmt"
	"image/color"
	"math"

	"github.com/user/touchstone_go/internal/parser"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
)

// sampleGrid lays a dataset out for plotter.HeatMap: columns are points, rows are matrix entries.
type sampleGrid struct {
	z [][]float64 // [param][point]
}

func (g *sampleGrid) Dims() (c, r int) {
	if len(g.z) == 0 {
		return 0, 0
	}
	return len(g.z[0]), len(g.z)
}

func (g *sampleGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g *sampleGrid) X(c int) float64    { return float64(c) }
func (g *sampleGrid) Y(r int) float64    { return float64(r) }

// CreateHeatmapPlot renders one component of every matrix entry, point by point.
func CreateHeatmapPlot(ds Dataset, side parser.Side, title string, size PlotSize) ([]byte, error) {
	if ds == nil || ds.NumPoints() == 0 || ds.NumParams() == 0 {
		return nil, fmt.Errorf("no data points to plot heatmap")
	}

	numCols, numRows := ds.NumPoints(), ds.NumParams()
	grid := &sampleGrid{z: make([][]float64, numRows)}
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for r := 0; r < numRows; r++ {
		grid.z[r] = make([]float64, numCols)
		for c := 0; c < numCols; c++ {
			_, v, err := ds.Sample(c, side, r)
			if err != nil {
				v = math.NaN()
			}
			grid.z[r][c] = v
			if !math.IsNaN(v) {
				minZ = math.Min(minZ, v)
				maxZ = math.Max(maxZ, v)
			}
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Point Index"
	p.Y.Label.Text = "Matrix Entry"

	yTicks := make([]plot.Tick, numRows)
	for r := range yTicks {
		yTicks[r] = plot.Tick{Value: float64(r), Label: paramLabel(ds, r)}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.Y.Min = -0.5
	p.Y.Max = float64(numRows) - 0.5
	p.X.Min = -0.5
	p.X.Max = float64(numCols) - 0.5

	hm := plotter.NewHeatMap(grid, moreland.ExtendedBlackBody().Palette(255))
	if math.IsInf(minZ, 1) {
		hm.Min, hm.Max = 0, 1
	} else {
		hm.Min, hm.Max = minZ, maxZ
		if hm.Min == hm.Max {
			hm.Max = hm.Min + 1
		}
	}
	hm.NaN = color.Gray{Y: 200}
	p.Add(hm)

	return renderPNG(p, size)
}
