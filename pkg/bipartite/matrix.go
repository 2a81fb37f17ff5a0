// Package bipartite provides the plant-animal interaction matrix along with
// random topology generation and quantitative interaction weighting.
package bipartite

import "fmt"

// Matrix is a quantitative plant-by-animal interaction matrix. Rows are plant
// species, columns are animal species. An entry holds the interaction strength
// between a plant and an animal; zero means the pair does not interact.
type Matrix struct {
	Plants  int       `json:"plants"`
	Animals int       `json:"animals"`
	Data    []float64 `json:"data"` // row-major, length Plants*Animals
}

// NewMatrix creates a zero-filled plants x animals matrix.
func NewMatrix(plants, animals int) (*Matrix, error) {
	if plants <= 0 || animals <= 0 {
		return nil, fmt.Errorf("%w: plants=%d, animals=%d", ErrSpeciesCount, plants, animals)
	}
	return &Matrix{
		Plants:  plants,
		Animals: animals,
		Data:    make([]float64, plants*animals),
	}, nil
}

// At returns the interaction strength between plant i and animal j.
func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.Animals+j]
}

// Set assigns the interaction strength between plant i and animal j.
func (m *Matrix) Set(i, j int, w float64) {
	m.Data[i*m.Animals+j] = w
}

// Fill returns the number of realized links (entries > 0).
func (m *Matrix) Fill() int {
	links := 0
	for _, w := range m.Data {
		if w > 0 {
			links++
		}
	}
	return links
}

// IsEmpty reports whether the matrix has no realized links.
func (m *Matrix) IsEmpty() bool {
	return m.Fill() == 0
}

// RealizedConnectance returns the fraction of realized links out of all
// possible plant-animal pairs.
func (m *Matrix) RealizedConnectance() float64 {
	return float64(m.Fill()) / float64(m.Plants*m.Animals)
}

// Binarize returns a copy with every positive entry replaced by 1.
func (m *Matrix) Binarize() *Matrix {
	bin := &Matrix{
		Plants:  m.Plants,
		Animals: m.Animals,
		Data:    make([]float64, len(m.Data)),
	}
	for idx, w := range m.Data {
		if w > 0 {
			bin.Data[idx] = 1
		}
	}
	return bin
}

// Clone creates a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	clone := &Matrix{
		Plants:  m.Plants,
		Animals: m.Animals,
		Data:    make([]float64, len(m.Data)),
	}
	copy(clone.Data, m.Data)
	return clone
}

// RowTotals returns the summed interaction strength of each plant.
func (m *Matrix) RowTotals() []float64 {
	totals := make([]float64, m.Plants)
	for i := 0; i < m.Plants; i++ {
		for j := 0; j < m.Animals; j++ {
			totals[i] += m.At(i, j)
		}
	}
	return totals
}

// ColTotals returns the summed interaction strength of each animal.
func (m *Matrix) ColTotals() []float64 {
	totals := make([]float64, m.Animals)
	for i := 0; i < m.Plants; i++ {
		for j := 0; j < m.Animals; j++ {
			totals[j] += m.At(i, j)
		}
	}
	return totals
}

// Total returns the summed interaction strength over the whole matrix.
func (m *Matrix) Total() float64 {
	sum := 0.0
	for _, w := range m.Data {
		sum += w
	}
	return sum
}

// Validate checks matrix consistency.
func (m *Matrix) Validate() error {
	if m.Plants <= 0 || m.Animals <= 0 {
		return fmt.Errorf("%w: plants=%d, animals=%d", ErrSpeciesCount, m.Plants, m.Animals)
	}
	if len(m.Data) != m.Plants*m.Animals {
		return fmt.Errorf("bipartite: data length %d does not match %dx%d shape", len(m.Data), m.Plants, m.Animals)
	}
	for idx, w := range m.Data {
		if w < 0 {
			return fmt.Errorf("%w: entry (%d,%d) = %f", ErrNegativeWeight, idx/m.Animals, idx%m.Animals, w)
		}
	}
	return nil
}
