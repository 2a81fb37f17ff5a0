package stability

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gilchrisn/bipartite-stability-service/pkg/bipartite"
)

func randomWeighted(t *testing.T, seed int64, plants, animals int, connectance float64) *bipartite.Matrix {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	topology, err := bipartite.RandomTopology(rng, plants, animals, connectance)
	require.NoError(t, err)
	weighted, err := bipartite.AssignWeights(rng, topology, 1.0)
	require.NoError(t, err)
	return weighted
}

func TestAssembleBlockStructure(t *testing.T) {
	m, err := bipartite.NewMatrix(2, 3)
	require.NoError(t, err)
	m.Set(0, 0, 0.4)
	m.Set(0, 2, 0.1)
	m.Set(1, 1, 0.3)

	community := Assemble(m, Mutualistic)
	rows, cols := community.Dims()
	require.Equal(t, 5, rows)
	require.Equal(t, 5, cols)

	// Upper-right block is B, lower-left its transpose.
	require.Equal(t, 0.4, community.At(0, 2))
	require.Equal(t, 0.1, community.At(0, 4))
	require.Equal(t, 0.3, community.At(1, 3))
	require.Equal(t, 0.4, community.At(2, 0))
	require.Equal(t, 0.1, community.At(4, 0))
	require.Equal(t, 0.3, community.At(3, 1))

	// Within-set off-diagonal entries stay zero.
	require.Zero(t, community.At(0, 1))
	require.Zero(t, community.At(2, 3))
}

func TestAssembleSignVariantsShareEverythingButTheLowerBlock(t *testing.T) {
	weighted := randomWeighted(t, 51, 4, 6, 0.5)

	mut := Assemble(weighted, Mutualistic)
	ant := Assemble(weighted, Antagonistic)

	s := weighted.Plants + weighted.Animals
	for i := 0; i < s; i++ {
		for j := 0; j < s; j++ {
			inLowerLeft := i >= weighted.Plants && j < weighted.Plants
			if inLowerLeft {
				require.Equal(t, -mut.At(i, j), ant.At(i, j))
			} else {
				require.Equal(t, mut.At(i, j), ant.At(i, j))
			}
		}
	}
}

func TestAssembleSharedSelfRegulation(t *testing.T) {
	weighted := randomWeighted(t, 52, 5, 7, 0.4)

	expected := 0.0
	for _, total := range weighted.RowTotals() {
		expected = math.Max(expected, total)
	}
	for _, total := range weighted.ColTotals() {
		expected = math.Max(expected, total)
	}

	for _, regime := range []Regime{Mutualistic, Antagonistic} {
		community := Assemble(weighted, regime)
		s, _ := community.Dims()
		for i := 0; i < s; i++ {
			require.Equal(t, -expected, community.At(i, i))
		}
	}
}

func TestResilienceZeroMatrix(t *testing.T) {
	m, err := bipartite.NewMatrix(3, 4)
	require.NoError(t, err)

	for _, regime := range []Regime{Mutualistic, Antagonistic} {
		community := Assemble(m, regime)
		r, err := Resilience(community)
		require.NoError(t, err)
		require.Equal(t, 0.0, r)
	}
}

func TestResilienceSingleLinkKnownSpectrum(t *testing.T) {
	// B = [1]: the mutualistic matrix [[-1,1],[1,-1]] has eigenvalues
	// {0, -2}; the antagonistic [[-1,1],[-1,-1]] has -1 +/- i.
	m, err := bipartite.NewMatrix(1, 1)
	require.NoError(t, err)
	m.Set(0, 0, 1)

	mut, err := Resilience(Assemble(m, Mutualistic))
	require.NoError(t, err)
	require.InDelta(t, 0, mut, 1e-10)

	ant, err := Resilience(Assemble(m, Antagonistic))
	require.NoError(t, err)
	require.InDelta(t, 1, ant, 1e-10)
}

func TestResilienceSignFlipChangesStability(t *testing.T) {
	weighted := randomWeighted(t, 53, 6, 9, 0.4)
	require.False(t, weighted.IsEmpty())

	mut, err := Resilience(Assemble(weighted, Mutualistic))
	require.NoError(t, err)
	ant, err := Resilience(Assemble(weighted, Antagonistic))
	require.NoError(t, err)

	require.NotEqual(t, mut, ant)
}

func TestResilienceMutualisticNonNegative(t *testing.T) {
	// The shared self-regulation is the largest off-diagonal row sum, so the
	// mutualistic dominant eigenvalue cannot cross zero.
	for seed := int64(60); seed < 70; seed++ {
		weighted := randomWeighted(t, seed, 5, 8, 0.3)
		r, err := Resilience(Assemble(weighted, Mutualistic))
		require.NoError(t, err)
		require.GreaterOrEqual(t, r, -1e-10)
	}
}

func TestResilienceHandlesComplexSpectrum(t *testing.T) {
	// Rotation-like matrix with complex eigenvalues -0.5 +/- i.
	community := mat.NewDense(2, 2, []float64{-0.5, 1, -1, -0.5})
	r, err := Resilience(community)
	require.NoError(t, err)
	require.InDelta(t, 0.5, r, 1e-10)
}
