package bipartite

import "errors"

var (
	// ErrSpeciesCount indicates a non-positive plant or animal count.
	ErrSpeciesCount = errors.New("bipartite: species counts must be positive")
	// ErrConnectance indicates a connectance outside [0,1].
	ErrConnectance = errors.New("bipartite: connectance must be in [0,1]")
	// ErrRate indicates a non-positive exponential rate parameter.
	ErrRate = errors.New("bipartite: exponential rate must be positive")
	// ErrNegativeWeight indicates a negative interaction strength.
	ErrNegativeWeight = errors.New("bipartite: interaction weights must be non-negative")
	// ErrNilRNG indicates a missing random number generator.
	ErrNilRNG = errors.New("bipartite: random number generator is required")
)
