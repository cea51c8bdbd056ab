package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/touchstone_go/internal/config"
	"github.com/user/touchstone_go/internal/touchstone"
)

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Env:     "test",
		Logging: config.LoggingConfig{Level: "debug"},
		Parser:  config.ParserConfig{ValidatePortCount: true},
		Report:  config.ReportConfig{OutputDir: dir, PlotWidth: 400, PlotHeight: 200},
	}
	return NewApp(cfg, zerolog.Nop()), dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestApp_OpenFile(t *testing.T) {
	app, dir := newTestApp(t)
	path := writeFile(t, dir, "example.s1p", "# GHZ S MA R 50\n1.0 0.5 -10.0\n2.0 0.8 -15.0\n")

	s, err := app.OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "example.s1p", s.Name)
	assert.Equal(t, "GHz", s.FrequencyUnit)
	assert.Equal(t, "MA", s.ParameterFormat)
	assert.Equal(t, 1, s.NumPorts)
	assert.Equal(t, 2, s.NumPoints)
	assert.Equal(t, "Magnitude", s.LHSLabel)
	assert.Equal(t, 1.0, s.MinFreq)
	assert.Equal(t, 2.0, s.MaxFreq)
	assert.Equal(t, -15.0, s.MinRHS)
	assert.Equal(t, -10.0, s.MaxRHS)
	assert.Empty(t, s.Warnings)
}

func TestApp_OpenFileErrorKeepsDataset(t *testing.T) {
	app, dir := newTestApp(t)
	good := writeFile(t, dir, "good.s1p", "1 0.5 -10\n")
	bad := writeFile(t, dir, "bad.s1p", "1.0 abc 2.0\n")

	_, err := app.OpenFile(good)
	require.NoError(t, err)
	_, err = app.OpenFile(bad)
	assert.ErrorIs(t, err, touchstone.ErrInvalidNumericToken)
	assert.Equal(t, 1, app.file.NumPoints())
}

func TestApp_GenerateReportWithoutData(t *testing.T) {
	app, _ := newTestApp(t)
	_, err := app.GenerateReport("")
	assert.ErrorIs(t, err, touchstone.ErrEmptyDataset)
}

func TestApp_BuildReportAndExports(t *testing.T) {
	app, dir := newTestApp(t)
	path := writeFile(t, dir, "amp.s2p",
		"# MHZ S DB\n100 -0.5 10 -20 45 -20 45 -0.6 -10\n200 -0.7 20 -18 50 -18 50 -0.8 -20\n")
	_, err := app.OpenFile(path)
	require.NoError(t, err)

	out, err := app.buildReport("test-report", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "amp_report.pdf"), out)
	assert.FileExists(t, out)

	xlsx, err := app.ExportXLSX("data.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.xlsx"), xlsx)
	assert.FileExists(t, xlsx)

	tsvPath := filepath.Join(t.TempDir(), "abs.tsv")
	tsv, err := app.ExportTSV(tsvPath)
	require.NoError(t, err)
	assert.Equal(t, tsvPath, tsv)
	assert.FileExists(t, tsv)
}
