package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	optionsSheet = "Options"
	dataSheet    = "Data"
)

// SaveToXLSX writes the option line settings and the point table to a workbook.
func SaveToXLSX(filename string, ds Dataset) error {
	if ds == nil || ds.NumPoints() == 0 {
		return fmt.Errorf("no data points to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	opts := ds.Options()
	if err := f.SetSheetName("Sheet1", optionsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	ports := any("unknown")
	if ds.NumPorts() > 0 {
		ports = ds.NumPorts()
	}
	settings := [][2]any{
		{"File", ds.Name()},
		{"Frequency Unit", opts.FrequencyUnit.String()},
		{"Parameter", opts.ParameterType.String()},
		{"Format", opts.ParameterFormat.String()},
		{"Reference Resistance", opts.ReferenceResistance},
		{"Ports", ports},
		{"Points", ds.NumPoints()},
	}
	for i, kv := range settings {
		r := i + 1
		f.SetCellValue(optionsSheet, fmt.Sprintf("A%d", r), kv[0])
		f.SetCellValue(optionsSheet, fmt.Sprintf("B%d", r), kv[1])
	}

	if _, err := f.NewSheet(dataSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	for col, name := range header(ds) {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(dataSheet, cell, name)
	}
	for i := 0; i < ds.NumPoints(); i++ {
		values, err := row(ds, i)
		if err != nil {
			return fmt.Errorf("failed to read point %d: %w", i, err)
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(dataSheet, cell, v)
		}
	}

	return f.SaveAs(filename)
}
