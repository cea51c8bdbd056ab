package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/touchstone_go/internal/analysis"
	"github.com/user/touchstone_go/internal/parser"
	"github.com/user/touchstone_go/internal/touchstone"
)

const twoPort = `! two-port sample
# MHZ S DB R 50
100 -0.5 10 -20 45 -20 45 -0.6 -10
200 -0.7 20 -18 50 -18 50 -0.8 -20
300 -1.1 30 -15 55 -15 55 -1.2 -30
`

var pngMagic = []byte("\x89PNG")

func openDataset(t *testing.T, content string) *touchstone.File {
	t.Helper()
	f := touchstone.New(parser.DefaultConfig())
	require.NoError(t, f.OpenReader(strings.NewReader(content), "amp.s2p"))
	return f
}

func TestCreateLinePlot(t *testing.T) {
	ds := openDataset(t, twoPort)

	for _, side := range []parser.Side{parser.LHS, parser.RHS} {
		img, err := CreateLinePlot(ds, side, "amp", DefaultPlotSize)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(img, pngMagic))
	}
}

func TestCreateLinePlot_Empty(t *testing.T) {
	_, err := CreateLinePlot(touchstone.New(parser.DefaultConfig()), parser.LHS, "empty", DefaultPlotSize)
	assert.Error(t, err)
}

func TestCreateHeatmapPlot(t *testing.T) {
	ds := openDataset(t, twoPort)

	img, err := CreateHeatmapPlot(ds, parser.LHS, "amp", PlotSize{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestCreateHeatmapPlot_SinglePointConstant(t *testing.T) {
	ds := openDataset(t, "# GHZ S MA\n1.0 0.5 -10\n")

	img, err := CreateHeatmapPlot(ds, parser.RHS, "flat", DefaultPlotSize)
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestBuildPDFReport(t *testing.T) {
	ds := openDataset(t, twoPort)
	summary, err := ds.Summarize()
	require.NoError(t, err)

	line, err := CreateLinePlot(ds, parser.LHS, "amp", DefaultPlotSize)
	require.NoError(t, err)
	heat, err := CreateHeatmapPlot(ds, parser.RHS, "amp", DefaultPlotSize)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.pdf")
	err = BuildPDFReport(path, ds, summary, map[string][]byte{
		KeyLineLHS:    line,
		KeyHeatmapRHS: heat,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBuildPDFReport_WithoutSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, BuildPDFReport(path, touchstone.New(parser.DefaultConfig()), nil, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestReportWarnings_IncludesParseWarnings(t *testing.T) {
	ds := openDataset(t, "1 0 0\n# MHZ\n")
	require.Len(t, ds.Warnings(), 2)

	summary, err := ds.Summarize()
	require.NoError(t, err)
	require.Len(t, summary.Warnings, 1)

	got := reportWarnings(ds, summary)
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "no option line before data")
	assert.Contains(t, got[1], "additional option line ignored")
	assert.Equal(t, summary.Warnings[0], got[2])

	assert.Equal(t, ds.Warnings(), reportWarnings(ds, nil))

	for _, sum := range []*analysis.Summary{summary, nil} {
		path := filepath.Join(t.TempDir(), "warned.pdf")
		require.NoError(t, BuildPDFReport(path, ds, sum, nil))
		assert.FileExists(t, path)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "n/a", formatValue(math.NaN()))
	assert.Equal(t, "-10", formatValue(-10))
	assert.Equal(t, "1.5e+09", formatValue(1.5e9))
}
