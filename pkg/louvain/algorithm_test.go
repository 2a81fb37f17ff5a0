package louvain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// twoCliques builds two dense groups of size k joined by a single bridge.
func twoCliques(t *testing.T, k int) *Graph {
	t.Helper()
	g := NewGraph(2 * k)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			require.NoError(t, g.AddEdge(i, j, 1))
			require.NoError(t, g.AddEdge(k+i, k+j, 1))
		}
	}
	require.NoError(t, g.AddEdge(0, k, 1))
	return g
}

func seededConfig(seed int64) *Config {
	config := NewConfig()
	config.Set("algorithm.random_seed", seed)
	return config
}

func TestGraphAddEdge(t *testing.T) {
	g := NewGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 2))
	require.NoError(t, g.AddEdge(1, 2, 1))

	require.Equal(t, 3.0, g.TotalWeight)
	require.Equal(t, []float64{2, 3, 1}, g.Degrees)

	require.Error(t, g.AddEdge(0, 5, 1))
	require.Error(t, g.AddEdge(0, 1, 0))
}

func TestGraphSelfLoopDegree(t *testing.T) {
	g := NewGraph(2)
	require.NoError(t, g.AddEdge(0, 0, 1.5))
	require.Equal(t, 3.0, g.Degrees[0])
	require.Equal(t, 1.5, g.SelfLoopWeight(0))
}

func TestRunFindsPlantedCommunities(t *testing.T) {
	g := twoCliques(t, 8)

	result, err := Run(context.Background(), g, seededConfig(1))
	require.NoError(t, err)

	require.Equal(t, 2, result.NumCommunities)
	require.Greater(t, result.Modularity, 0.3)
	require.Len(t, result.Membership, 16)

	// All nodes of the same clique share a community; the cliques differ.
	for i := 1; i < 8; i++ {
		require.Equal(t, result.Membership[0], result.Membership[i])
		require.Equal(t, result.Membership[8], result.Membership[8+i])
	}
	require.NotEqual(t, result.Membership[0], result.Membership[8])
}

func TestRunDeterministicWithSeed(t *testing.T) {
	g := twoCliques(t, 6)

	first, err := Run(context.Background(), g, seededConfig(42))
	require.NoError(t, err)
	second, err := Run(context.Background(), g, seededConfig(42))
	require.NoError(t, err)

	require.Equal(t, first.Membership, second.Membership)
	require.Equal(t, first.Modularity, second.Modularity)
}

func TestRunEdgelessGraph(t *testing.T) {
	g := NewGraph(5)

	result, err := Run(context.Background(), g, seededConfig(1))
	require.NoError(t, err)
	require.Equal(t, 0.0, result.Modularity)
	require.Equal(t, 5, result.NumCommunities)
}

func TestRunRestartsReturnsBest(t *testing.T) {
	g := twoCliques(t, 6)
	config := seededConfig(7)
	config.Set("algorithm.restarts", 4)

	best, err := RunRestarts(context.Background(), g, config)
	require.NoError(t, err)

	// The best-of-restarts score can never fall below any single run's.
	single, err := Run(context.Background(), g, seededConfig(7))
	require.NoError(t, err)
	require.GreaterOrEqual(t, best.Modularity, single.Modularity)
}

func TestRunCanceledContext(t *testing.T) {
	// Large sparse ring so several levels are needed.
	n := 200
	g := NewGraph(n)
	for i := 0; i < n; i++ {
		require.NoError(t, g.AddEdge(i, (i+1)%n, 1))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, g, seededConfig(1))
	require.ErrorIs(t, err, context.Canceled)
}

func TestModularityMatchesHandComputedPartition(t *testing.T) {
	// Two disconnected edges: the ideal partition has Q = 1/2.
	g := NewGraph(4)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(2, 3, 1))

	result, err := Run(context.Background(), g, seededConfig(3))
	require.NoError(t, err)
	require.InDelta(t, 0.5, result.Modularity, 1e-12)
	require.Equal(t, 2, result.NumCommunities)
}
