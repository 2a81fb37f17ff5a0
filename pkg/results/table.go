// Package results holds the simulation output: one immutable record per
// simulated network, collected into an ordered table with summary statistics,
// CSV export and SQLite persistence.
package results

// Trial is one simulated network's record. Undefined metrics (degenerate
// networks, failed eigen decompositions) are NaN.
type Trial struct {
	Plants                 int     `json:"plants"`
	Animals                int     `json:"animals"`
	Diversity              int     `json:"diversity"` // plants + animals
	TargetConnectance      float64 `json:"target_connectance"`
	RealizedConnectance    float64 `json:"realized_connectance"`
	Nestedness             float64 `json:"nestedness"`
	Modularity             float64 `json:"modularity"`
	ResilienceMutualistic  float64 `json:"resilience_mutualistic"`
	ResilienceAntagonistic float64 `json:"resilience_antagonistic"`
}

// Table is an ordered sequence of trials, one row per simulated network.
type Table struct {
	trials []Trial
}

// NewTable wraps trial records in preserved order.
func NewTable(trials []Trial) *Table {
	return &Table{trials: trials}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.trials) }

// Trials returns the rows in trial order.
func (t *Table) Trials() []Trial { return t.trials }

// Columns returns the column names in output order.
func (t *Table) Columns() []string {
	return []string{
		"plants",
		"animals",
		"diversity",
		"target_connectance",
		"realized_connectance",
		"nestedness",
		"modularity",
		"resilience_mutualistic",
		"resilience_antagonistic",
	}
}

// numeric returns one trial's values in column order.
func (tr Trial) numeric() []float64 {
	return []float64{
		float64(tr.Plants),
		float64(tr.Animals),
		float64(tr.Diversity),
		tr.TargetConnectance,
		tr.RealizedConnectance,
		tr.Nestedness,
		tr.Modularity,
		tr.ResilienceMutualistic,
		tr.ResilienceAntagonistic,
	}
}
