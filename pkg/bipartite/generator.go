package bipartite

import (
	"fmt"
	"math/rand"
)

// RandomTopology draws a binary plants x animals incidence matrix. Every cell
// is an independent Bernoulli trial with success probability connectance, so
// the realized link density is itself a random draw around the target.
func RandomTopology(rng *rand.Rand, plants, animals int, connectance float64) (*Matrix, error) {
	if rng == nil {
		return nil, ErrNilRNG
	}
	if connectance < 0 || connectance > 1 {
		return nil, fmt.Errorf("%w: got %f", ErrConnectance, connectance)
	}

	m, err := NewMatrix(plants, animals)
	if err != nil {
		return nil, err
	}

	for idx := range m.Data {
		if rng.Float64() < connectance {
			m.Data[idx] = 1
		}
	}

	return m, nil
}
