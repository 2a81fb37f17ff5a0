package bipartite

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomTopologyShapeAndValues(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	m, err := RandomTopology(rng, 5, 12, 0.5)
	require.NoError(t, err)
	require.Equal(t, 5, m.Plants)
	require.Equal(t, 12, m.Animals)
	require.Len(t, m.Data, 60)

	for _, w := range m.Data {
		require.Contains(t, []float64{0, 1}, w)
	}
}

func TestRandomTopologyEmptyAndFull(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	empty, err := RandomTopology(rng, 4, 6, 0)
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())
	require.Equal(t, 0.0, empty.RealizedConnectance())

	full, err := RandomTopology(rng, 4, 6, 1)
	require.NoError(t, err)
	require.Equal(t, 24, full.Fill())
	require.Equal(t, 1.0, full.RealizedConnectance())
}

func TestRandomTopologyRealizedConnectanceConverges(t *testing.T) {
	// 50x40 = 2000 cells; realized density should land near the target.
	for _, target := range []float64{0.1, 0.3, 0.5} {
		rng := rand.New(rand.NewSource(42))
		m, err := RandomTopology(rng, 50, 40, target)
		require.NoError(t, err)
		require.InDelta(t, target, m.RealizedConnectance(), 0.05,
			"target connectance %f", target)
	}
}

func TestRandomTopologyDeterministicWithSeed(t *testing.T) {
	first, err := RandomTopology(rand.New(rand.NewSource(99)), 10, 10, 0.4)
	require.NoError(t, err)
	second, err := RandomTopology(rand.New(rand.NewSource(99)), 10, 10, 0.4)
	require.NoError(t, err)
	require.Equal(t, first.Data, second.Data)
}

func TestRandomTopologyInvalidParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	_, err := RandomTopology(rng, 0, 5, 0.5)
	require.ErrorIs(t, err, ErrSpeciesCount)

	_, err = RandomTopology(rng, 5, -1, 0.5)
	require.ErrorIs(t, err, ErrSpeciesCount)

	_, err = RandomTopology(rng, 5, 5, -0.1)
	require.ErrorIs(t, err, ErrConnectance)

	_, err = RandomTopology(rng, 5, 5, 1.1)
	require.ErrorIs(t, err, ErrConnectance)

	_, err = RandomTopology(nil, 5, 5, 0.5)
	require.ErrorIs(t, err, ErrNilRNG)
}

func TestRandomTopologyExpectedDensityLargeSample(t *testing.T) {
	// Statistical sanity over many independent draws.
	rng := rand.New(rand.NewSource(7))
	target := 0.25
	sum := 0.0
	draws := 50
	for i := 0; i < draws; i++ {
		m, err := RandomTopology(rng, 20, 20, target)
		require.NoError(t, err)
		sum += m.RealizedConnectance()
	}
	require.Less(t, math.Abs(sum/float64(draws)-target), 0.02)
}
