package results

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds descriptive statistics for one table column, computed
// over the rows where the value is defined.
type ColumnSummary struct {
	Column  string  `json:"column"`
	Defined int     `json:"defined"` // rows with a non-NaN value
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Summary computes per-column statistics, skipping undefined (NaN) entries.
// Columns with no defined entries report NaN statistics.
func (t *Table) Summary() []ColumnSummary {
	columns := t.Columns()
	values := make([][]float64, len(columns))

	for _, trial := range t.trials {
		for c, v := range trial.numeric() {
			if !math.IsNaN(v) {
				values[c] = append(values[c], v)
			}
		}
	}

	summaries := make([]ColumnSummary, len(columns))
	for c, name := range columns {
		s := ColumnSummary{
			Column:  name,
			Defined: len(values[c]),
			Mean:    math.NaN(),
			StdDev:  math.NaN(),
			Min:     math.NaN(),
			Max:     math.NaN(),
		}
		if len(values[c]) > 0 {
			s.Mean = stat.Mean(values[c], nil)
			s.StdDev = stat.StdDev(values[c], nil)
			s.Min, s.Max = bounds(values[c])
		}
		summaries[c] = s
	}
	return summaries
}

func bounds(values []float64) (float64, float64) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
