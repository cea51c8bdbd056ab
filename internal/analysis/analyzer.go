package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/user/touchstone_go/internal/parser"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ParamLabel names the param-th entry of a point. Two-port files use the
// Touchstone v1 column order (11, 21, 12, 22); larger files are row-major.
func ParamLabel(ptype parser.ParameterType, numPorts int, param int) string {
	prefix := ptype.String()
	switch {
	case numPorts == 2 && param >= 0 && param < 4:
		return prefix + [...]string{"11", "21", "12", "22"}[param]
	case numPorts > 0 && param >= 0 && param < numPorts*numPorts:
		row, col := param/numPorts+1, param%numPorts+1
		if numPorts > 9 {
			return fmt.Sprintf("%s%d,%d", prefix, row, col)
		}
		return fmt.Sprintf("%s%d%d", prefix, row, col)
	default:
		return fmt.Sprintf("P%d", param+1)
	}
}

// Summarize computes per-entry magnitude statistics for a parsed dataset.
func Summarize(points []parser.DataPoint, opts parser.Options, numPorts int) (*Summary, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no data points to summarize")
	}

	summary := NewSummary(opts, numPorts)
	summary.NumPoints = len(points)

	ext := ComputeExtrema(points)
	summary.StartFreqHz = ToHz(ext.MinFreq, opts.FrequencyUnit)
	summary.StopFreqHz = ToHz(ext.MaxFreq, opts.FrequencyUnit)

	numParams := len(points[0].Measurements)
	for param := 0; param < numParams; param++ {
		label := ParamLabel(opts.ParameterType, numPorts, param)

		magsDB := make([]float64, 0, len(points))
		freqsHz := make([]float64, 0, len(points))
		for _, p := range points {
			if param >= len(p.Measurements) {
				continue
			}
			db := MagnitudeDB(p.Measurements[param], opts.ParameterFormat)
			if math.IsInf(db, 0) || math.IsNaN(db) {
				continue
			}
			magsDB = append(magsDB, db)
			freqsHz = append(freqsHz, ToHz(p.Frequency, opts.FrequencyUnit))
		}

		res := ParamStats{
			Param:     param,
			Label:     label,
			NumValid:  len(magsDB),
			MeanDB:    math.NaN(),
			StdDevDB:  math.NaN(),
			MinDB:     math.NaN(),
			MinFreqHz: math.NaN(),
			MaxDB:     math.NaN(),
			MaxFreqHz: math.NaN(),
		}
		if len(magsDB) == 0 {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s has no finite magnitude values", label))
			summary.Params = append(summary.Params, res)
			continue
		}

		if len(magsDB) == 1 {
			res.MeanDB, res.StdDevDB = magsDB[0], 0
		} else {
			res.MeanDB, res.StdDevDB = stat.MeanStdDev(magsDB, nil)
		}
		minIdx, maxIdx := floats.MinIdx(magsDB), floats.MaxIdx(magsDB)
		res.MinDB, res.MinFreqHz = magsDB[minIdx], freqsHz[minIdx]
		res.MaxDB, res.MaxFreqHz = magsDB[maxIdx], freqsHz[maxIdx]

		summary.Params = append(summary.Params, res)
		summary.RankedByPeak = append(summary.RankedByPeak, RankedParam{Param: param, Label: label, Value: res.MaxDB})
	}

	sort.SliceStable(summary.RankedByPeak, func(i, j int) bool {
		return summary.RankedByPeak[i].Value > summary.RankedByPeak[j].Value
	})

	return summary, nil
}
