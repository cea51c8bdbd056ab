package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/user/touchstone_go/internal/config"
	"github.com/user/touchstone_go/internal/export"
	"github.com/user/touchstone_go/internal/parser"
	"github.com/user/touchstone_go/internal/report"
	"github.com/user/touchstone_go/internal/touchstone"
)

const appTitle = "Touchstone Viewer"

// FileSummary is what the frontend shows after a file is opened.
type FileSummary struct {
	Name                string   `json:"name"`
	FrequencyUnit       string   `json:"frequencyUnit"`
	ParameterType       string   `json:"parameterType"`
	ParameterFormat     string   `json:"parameterFormat"`
	ReferenceResistance float64  `json:"referenceResistance"`
	NumPorts            int      `json:"numPorts"`
	NumPoints           int      `json:"numPoints"`
	NumParams           int      `json:"numParams"`
	LHSLabel            string   `json:"lhsLabel"`
	RHSLabel            string   `json:"rhsLabel"`
	MinFreq             float64  `json:"minFreq"`
	MaxFreq             float64  `json:"maxFreq"`
	MinLHS              float64  `json:"minLHS"`
	MaxLHS              float64  `json:"maxLHS"`
	MinRHS              float64  `json:"minRHS"`
	MaxRHS              float64  `json:"maxRHS"`
	Warnings            []string `json:"warnings"`
}

// App struct
type App struct {
	ctx    context.Context
	cfg    *config.Config
	logger zerolog.Logger

	// mu guards file; report generation reads it from a goroutine.
	mu   sync.Mutex
	file *touchstone.File
}

// NewApp creates a new App application struct
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	a := &App{cfg: cfg, logger: logger}
	a.file = touchstone.New(cfg.ToParserConfig(&a.logger))
	return a
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	runtime.WindowSetTitle(a.ctx, appTitle)
}

func (a *App) sendStatus(message string) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "statusUpdate", message)
	}
	a.logger.Info().Msg(message)
}

func (a *App) emit(event string, data ...interface{}) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, event, data...)
	}
}

// OpenFileDialog asks the user for a Touchstone file and opens it.
func (a *App) OpenFileDialog() (*FileSummary, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Open Touchstone File",
		Filters: []runtime.FileFilter{
			{DisplayName: "Touchstone (*.s1p;*.s2p;*.s3p;*.s4p)", Pattern: "*.s1p;*.s2p;*.s3p;*.s4p"},
			{DisplayName: "All Files", Pattern: "*"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to show open dialog: %w", err)
	}
	if path == "" {
		return nil, nil // cancelled
	}
	return a.OpenFile(path)
}

// OpenFile parses path and replaces the current dataset. On error the previous
// dataset stays loaded.
func (a *App) OpenFile(path string) (*FileSummary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.file.Open(path); err != nil {
		a.logger.Error().Err(err).Str("path", path).Msg("open failed")
		return nil, err
	}
	a.sendStatus(fmt.Sprintf("Opened %s: %d points", a.file.Name(), a.file.NumPoints()))
	if a.ctx != nil {
		runtime.WindowSetTitle(a.ctx, appTitle+" - "+a.file.Name())
	}
	return newFileSummary(a.file)
}

func newFileSummary(f *touchstone.File) (*FileSummary, error) {
	opts := f.Options()
	s := &FileSummary{
		Name:                f.Name(),
		FrequencyUnit:       opts.FrequencyUnit.String(),
		ParameterType:       opts.ParameterType.String(),
		ParameterFormat:     opts.ParameterFormat.String(),
		ReferenceResistance: opts.ReferenceResistance,
		NumPorts:            f.NumPorts(),
		NumPoints:           f.NumPoints(),
		NumParams:           f.NumParams(),
		LHSLabel:            opts.SideLabel(parser.LHS),
		RHSLabel:            opts.SideLabel(parser.RHS),
		Warnings:            f.Warnings(),
	}
	if f.NumPoints() == 0 {
		return s, nil
	}

	bounds := []struct {
		dst *float64
		get func() (float64, error)
	}{
		{&s.MinFreq, f.MinFreq}, {&s.MaxFreq, f.MaxFreq},
		{&s.MinLHS, f.MinLHS}, {&s.MaxLHS, f.MaxLHS},
		{&s.MinRHS, f.MinRHS}, {&s.MaxRHS, f.MaxRHS},
	}
	for _, b := range bounds {
		v, err := b.get()
		if err != nil {
			return nil, err
		}
		*b.dst = v
	}
	return s, nil
}

// resolveOutput places relative paths under the configured report directory and
// falls back to <name><suffix> when path is empty.
func (a *App) resolveOutput(path, suffix string) string {
	if path == "" {
		base := strings.TrimSuffix(a.file.Name(), filepath.Ext(a.file.Name()))
		if base == "" {
			base = "touchstone"
		}
		path = base + suffix
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.cfg.Report.OutputDir, path)
}

// GenerateReport starts building a PDF report in the background and returns
// its id. Progress is reported through statusUpdate events tagged with the id.
func (a *App) GenerateReport(pdfPath string) (string, error) {
	a.mu.Lock()
	empty := a.file.NumPoints() == 0
	a.mu.Unlock()
	if empty {
		return "", touchstone.ErrEmptyDataset
	}

	reportID := uuid.NewString()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errMsg := fmt.Sprintf("PANIC recovered: %v", r)
				a.sendStatus(errMsg)
				a.emit("generationComplete", reportID, false, errMsg)
			}
		}()

		a.emit("generationStart", reportID)
		out, err := a.buildReport(reportID, pdfPath)
		if err != nil {
			errMsg := fmt.Sprintf("Error generating PDF report: %v", err)
			a.sendStatus(errMsg)
			a.emit("generationComplete", reportID, false, errMsg)
			return
		}
		successMsg := fmt.Sprintf("PDF report successfully generated: %s", out)
		a.sendStatus(successMsg)
		a.emit("generationComplete", reportID, true, successMsg)
	}()

	return reportID, nil
}

func (a *App) buildReport(reportID, pdfPath string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	logger := a.logger.With().Str("report_id", reportID).Logger()
	out := a.resolveOutput(pdfPath, "_report.pdf")

	summary, err := a.file.Summarize()
	if err != nil {
		return "", err
	}

	a.sendStatus("Generating plots...")
	size := report.NewPlotSize(a.cfg.Report.PlotWidth, a.cfg.Report.PlotHeight)
	plotImages := make(map[string][]byte)
	plotConfigs := []struct {
		Key     string
		Heatmap bool
		Side    parser.Side
	}{
		{report.KeyLineLHS, false, parser.LHS},
		{report.KeyLineRHS, false, parser.RHS},
		{report.KeyHeatmapLHS, true, parser.LHS},
		{report.KeyHeatmapRHS, true, parser.RHS},
	}
	for _, pc := range plotConfigs {
		title := fmt.Sprintf("%s: %s", a.file.Name(), a.file.Options().SideLabel(pc.Side))
		var img []byte
		var errPlt error
		if pc.Heatmap {
			img, errPlt = report.CreateHeatmapPlot(a.file, pc.Side, title, size)
		} else {
			img, errPlt = report.CreateLinePlot(a.file, pc.Side, title, size)
		}
		if errPlt != nil {
			logger.Warn().Err(errPlt).Str("plot", pc.Key).Msg("plot skipped")
			a.sendStatus(fmt.Sprintf("Error generating plot %s: %v", pc.Key, errPlt))
			continue
		}
		plotImages[pc.Key] = img
	}

	a.sendStatus(fmt.Sprintf("Generating PDF: %s...", out))
	if err := report.BuildPDFReport(out, a.file, summary, plotImages); err != nil {
		return "", err
	}
	logger.Debug().Str("path", out).Int("plots", len(plotImages)).Msg("report written")
	return out, nil
}

// ExportXLSX writes the opened dataset to an Excel workbook and returns the path used.
func (a *App) ExportXLSX(path string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.resolveOutput(path, ".xlsx")
	if err := export.SaveToXLSX(out, a.file); err != nil {
		return "", fmt.Errorf("failed to export %s: %w", out, err)
	}
	a.sendStatus(fmt.Sprintf("Exported %s", out))
	return out, nil
}

// ExportTSV writes the opened dataset as tab separated values and returns the path used.
func (a *App) ExportTSV(path string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.resolveOutput(path, ".tsv")
	if err := export.SaveToTSV(out, a.file); err != nil {
		return "", fmt.Errorf("failed to export %s: %w", out, err)
	}
	a.sendStatus(fmt.Sprintf("Exported %s", out))
	return out, nil
}
