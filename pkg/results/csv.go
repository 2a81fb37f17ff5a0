package results

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// naCell marks undefined values in CSV output, matching what downstream
// statistics tooling expects for missing data.
const naCell = "NA"

// WriteCSV writes the table with a header row. Undefined values render as NA.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns()); err != nil {
		return err
	}

	for _, trial := range t.trials {
		row := []string{
			strconv.Itoa(trial.Plants),
			strconv.Itoa(trial.Animals),
			strconv.Itoa(trial.Diversity),
			formatCell(trial.TargetConnectance),
			formatCell(trial.RealizedConnectance),
			formatCell(trial.Nestedness),
			formatCell(trial.Modularity),
			formatCell(trial.ResilienceMutualistic),
			formatCell(trial.ResilienceAntagonistic),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return naCell
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}
