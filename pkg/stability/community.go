// Package stability assembles community (Jacobian) matrices from bipartite
// interaction networks and estimates local stability from their dominant
// eigenvalue.
package stability

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gilchrisn/bipartite-stability-service/pkg/bipartite"
)

// Regime selects the sign of the animal-on-plant interaction block.
type Regime int

const (
	// Mutualistic interactions benefit both partners (pollination).
	Mutualistic Regime = iota
	// Antagonistic interactions cost the plant (herbivory).
	Antagonistic
)

func (r Regime) String() string {
	switch r {
	case Mutualistic:
		return "mutualistic"
	case Antagonistic:
		return "antagonistic"
	default:
		return "unknown"
	}
}

// Assemble embeds a weighted bipartite matrix B into the S x S community
// matrix, S = plants + animals. The upper-right block is B (plants always
// benefit animals), the lower-left block is B transposed, negated under the
// antagonistic regime. Every diagonal entry is the negative of the largest
// row sum of the off-diagonal magnitude matrix: one shared self-regulation
// strong enough to balance the largest net effect any species experiences.
// An all-zero B yields the zero matrix.
func Assemble(m *bipartite.Matrix, regime Regime) *mat.Dense {
	plants, animals := m.Plants, m.Animals
	s := plants + animals
	community := mat.NewDense(s, s, nil)

	sign := 1.0
	if regime == Antagonistic {
		sign = -1.0
	}

	for i := 0; i < plants; i++ {
		for j := 0; j < animals; j++ {
			w := m.At(i, j)
			community.Set(i, plants+j, w)
			community.Set(plants+j, i, sign*w)
		}
	}

	// Row sums of the magnitude matrix are plant row totals and animal
	// column totals; the sign flip does not change them.
	regulation := 0.0
	for _, t := range m.RowTotals() {
		if t > regulation {
			regulation = t
		}
	}
	for _, t := range m.ColTotals() {
		if t > regulation {
			regulation = t
		}
	}

	for i := 0; i < s; i++ {
		community.Set(i, i, -regulation)
	}

	return community
}
