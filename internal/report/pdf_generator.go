package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/touchstone_go/internal/analysis"
	"github.com/user/touchstone_go/internal/parser"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)

	maxRankedRows = 10
)

// pdfStyler holds reusable styling and state for PDF generation
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64 // manually tracked Y position for flowing content
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6,
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["warning"] = func() {
		s.pdf.SetFont("Arial", "I", 9)
		s.pdf.SetTextColor(160, 80, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	lines := s.pdf.SplitLines([]byte(text), pdfContentWidth)
	s.checkAddPage(float64(max(len(lines), 1)) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// writeTable draws headers and rows with relative column widths, repeating the
// header after each page break.
func (s *pdfStyler) writeTable(headers []string, widthsRel []float64, rows [][]string) {
	widths := make([]float64, len(widthsRel))
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
	}

	drawHeader := func() {
		s.applyStyle("tableHeader")
		x := pdfMargin
		for i, header := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, header, "1", 0, "C", true, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	drawHeader()
	for _, row := range rows {
		if s.currentY+s.lineHeight > s.pageHeight {
			s.newPage()
			drawHeader()
		}
		s.applyStyle("tableCell")
		x := pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width float64, height float64, caption string) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.Image(imageName, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// extremaRows reads the dataset bounds. An empty dataset yields no rows.
func extremaRows(ds Dataset) [][]string {
	opts := ds.Options()
	getters := []struct {
		label    string
		min, max func() (float64, error)
	}{
		{fmt.Sprintf("Frequency (%s)", opts.FrequencyUnit), ds.MinFreq, ds.MaxFreq},
		{opts.SideLabel(parser.LHS), ds.MinLHS, ds.MaxLHS},
		{opts.SideLabel(parser.RHS), ds.MinRHS, ds.MaxRHS},
	}
	rows := make([][]string, 0, len(getters))
	for _, g := range getters {
		lo, err := g.min()
		if err != nil {
			return nil
		}
		hi, err := g.max()
		if err != nil {
			return nil
		}
		rows = append(rows, []string{g.label, formatValue(lo), formatValue(hi)})
	}
	return rows
}

// reportWarnings lists parse warnings first, then analysis warnings.
func reportWarnings(ds Dataset, summary *analysis.Summary) []string {
	warnings := ds.Warnings()
	if summary != nil {
		warnings = append(warnings, summary.Warnings...)
	}
	return warnings
}

// BuildPDFReport writes a landscape report covering the option line, dataset
// bounds, per-entry magnitude statistics and any plots in plotImages.
func BuildPDFReport(path string, ds Dataset, summary *analysis.Summary, plotImages map[string][]byte) error {
	if ds == nil {
		return fmt.Errorf("no dataset to report")
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)
	opts := ds.Options()

	styler.writeParagraph(fmt.Sprintf("Touchstone Report: %s", ds.Name()), "h1", "C")
	styler.addSpacer(5)

	styler.writeParagraph("Option Line", "h2", "L")
	ports := "unknown"
	if ds.NumPorts() > 0 {
		ports = strconv.Itoa(ds.NumPorts())
	}
	styler.writeTable(
		[]string{"Frequency Unit", "Parameter", "Format", "Reference (Ohm)", "Ports", "Points"},
		[]float64{1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6},
		[][]string{{
			opts.FrequencyUnit.String(),
			opts.ParameterType.String(),
			opts.ParameterFormat.String(),
			formatValue(opts.ReferenceResistance),
			ports,
			strconv.Itoa(ds.NumPoints()),
		}},
	)
	styler.addSpacer(5)

	styler.writeParagraph("Dataset Bounds", "h2", "L")
	if rows := extremaRows(ds); len(rows) > 0 {
		styler.writeTable([]string{"Quantity", "Min", "Max"}, []float64{0.4, 0.3, 0.3}, rows)
	} else {
		styler.writeParagraph("The dataset has no points.", "normal", "L")
	}
	styler.addSpacer(5)

	if summary == nil {
		styler.writeParagraph("No statistics available.", "normal", "L")
		for _, w := range reportWarnings(ds, nil) {
			styler.writeParagraph(w, "warning", "L")
		}
		return pdf.OutputFileAndClose(path)
	}

	scale := analysis.FrequencyMultiplier(opts.FrequencyUnit)
	unit := opts.FrequencyUnit.String()

	styler.writeParagraph("Magnitude Statistics (dB)", "h2", "L")
	statRows := make([][]string, 0, len(summary.Params))
	for _, ps := range summary.Params {
		statRows = append(statRows, []string{
			ps.Label,
			strconv.Itoa(ps.NumValid),
			formatValue(ps.MeanDB),
			formatValue(ps.StdDevDB),
			formatValue(ps.MinDB),
			formatValue(ps.MinFreqHz / scale),
			formatValue(ps.MaxDB),
			formatValue(ps.MaxFreqHz / scale),
		})
	}
	styler.writeTable(
		[]string{"Entry", "Valid", "Mean", "Std Dev", "Min", "At (" + unit + ")", "Max", "At (" + unit + ")"},
		[]float64{0.1, 0.1, 0.13, 0.13, 0.13, 0.13, 0.14, 0.14},
		statRows,
	)
	styler.addSpacer(5)

	styler.writeParagraph(fmt.Sprintf("Top %d Entries by Peak Magnitude", maxRankedRows), "h2", "L")
	rankRows := make([][]string, 0, maxRankedRows)
	for i, item := range summary.RankedByPeak {
		if i >= maxRankedRows {
			break
		}
		rankRows = append(rankRows, []string{strconv.Itoa(i + 1), item.Label, formatValue(item.Value)})
	}
	if len(rankRows) > 0 {
		styler.writeTable([]string{"Rank", "Entry", "Peak (dB)"}, []float64{0.2, 0.4, 0.4}, rankRows)
	} else {
		styler.writeParagraph("No entries have finite magnitudes.", "normal", "L")
	}

	if warnings := reportWarnings(ds, summary); len(warnings) > 0 {
		styler.addSpacer(5)
		styler.writeParagraph("Warnings", "h2", "L")
		for _, w := range warnings {
			styler.writeParagraph(w, "warning", "L")
		}
	}

	plotDefs := []struct {
		Key     string
		Title   string
		Caption string
	}{
		{KeyLineLHS, "Line Plot: " + opts.SideLabel(parser.LHS), opts.SideLabel(parser.LHS) + " vs Frequency"},
		{KeyLineRHS, "Line Plot: " + opts.SideLabel(parser.RHS), opts.SideLabel(parser.RHS) + " vs Frequency"},
		{KeyHeatmapLHS, "Heatmap: " + opts.SideLabel(parser.LHS), opts.SideLabel(parser.LHS) + " per Point and Entry"},
		{KeyHeatmapRHS, "Heatmap: " + opts.SideLabel(parser.RHS), opts.SideLabel(parser.RHS) + " per Point and Entry"},
	}

	imgWidth := pdfContentWidth * 0.9
	imgHeight := imgWidth / 2

	for _, pDef := range plotDefs {
		imgBytes, ok := plotImages[pDef.Key]
		if !ok || len(imgBytes) == 0 {
			continue
		}
		styler.newPage()
		styler.writeParagraph(pDef.Title, "h2", "L")
		styler.addImage(imgBytes, pDef.Key, imgWidth, imgHeight, pDef.Caption)
	}

	return pdf.OutputFileAndClose(path)
}
