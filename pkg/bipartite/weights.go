package bipartite

import (
	"fmt"
	"math/rand"
)

// AssignWeights turns a binary topology into a quantitative matrix. It draws
// one exponential(rate) sample per cell, normalizes the full sample vector to
// sum to 1, then masks out cells without a link. Normalizing over all cells
// (linked or not) means the surviving mass equals the linked fraction of the
// draws, so the total is at most 1 and most realized interactions are weak
// with a few strong ones.
func AssignWeights(rng *rand.Rand, topology *Matrix, rate float64) (*Matrix, error) {
	if rng == nil {
		return nil, ErrNilRNG
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: got %f", ErrRate, rate)
	}
	if err := topology.Validate(); err != nil {
		return nil, err
	}

	draws := make([]float64, len(topology.Data))
	sum := 0.0
	for idx := range draws {
		draws[idx] = rng.ExpFloat64() / rate
		sum += draws[idx]
	}

	weighted := &Matrix{
		Plants:  topology.Plants,
		Animals: topology.Animals,
		Data:    make([]float64, len(topology.Data)),
	}
	for idx, linked := range topology.Data {
		if linked > 0 {
			weighted.Data[idx] = draws[idx] / sum
		}
	}

	return weighted, nil
}
