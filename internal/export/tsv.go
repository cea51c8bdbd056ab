package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// SaveToTSV writes the point table as tab separated values, full precision.
func SaveToTSV(filename string, ds Dataset) error {
	if ds == nil || ds.NumPoints() == 0 {
		return fmt.Errorf("no data points to export")
	}

	fp, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer fp.Close()

	w := csv.NewWriter(fp)
	w.Comma = '\t'

	if err := w.Write(header(ds)); err != nil {
		return err
	}
	for i := 0; i < ds.NumPoints(); i++ {
		values, err := row(ds, i)
		if err != nil {
			return fmt.Errorf("failed to read point %d: %w", i, err)
		}
		record := make([]string, len(values))
		for j, v := range values {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
