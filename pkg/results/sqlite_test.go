package results

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "trials.db"))
	require.NoError(t, store.Init(ctx))
	defer store.Close()

	table := NewTable(sampleTrials())
	require.NoError(t, store.SaveRun(ctx, "baseline", table))

	loaded, err := store.LoadRun(ctx, "baseline")
	require.NoError(t, err)
	require.Equal(t, table.Len(), loaded.Len())

	for i, want := range table.Trials() {
		got := loaded.Trials()[i]
		require.Equal(t, want.Plants, got.Plants)
		require.Equal(t, want.Animals, got.Animals)
		require.Equal(t, want.Diversity, got.Diversity)
		require.Equal(t, want.TargetConnectance, got.TargetConnectance)
		require.Equal(t, want.RealizedConnectance, got.RealizedConnectance)
		requireSameValue(t, want.Nestedness, got.Nestedness)
		requireSameValue(t, want.Modularity, got.Modularity)
		requireSameValue(t, want.ResilienceMutualistic, got.ResilienceMutualistic)
		requireSameValue(t, want.ResilienceAntagonistic, got.ResilienceAntagonistic)
	}
}

func requireSameValue(t *testing.T, want, got float64) {
	t.Helper()
	if math.IsNaN(want) {
		require.True(t, math.IsNaN(got))
		return
	}
	require.Equal(t, want, got)
}

func TestStoreDuplicateRunNameRejected(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "trials.db"))
	require.NoError(t, store.Init(ctx))
	defer store.Close()

	table := NewTable(sampleTrials())
	require.NoError(t, store.SaveRun(ctx, "run", table))
	require.Error(t, store.SaveRun(ctx, "run", table))
}

func TestStoreMissingRun(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "trials.db"))
	require.NoError(t, store.Init(ctx))
	defer store.Close()

	_, err := store.LoadRun(ctx, "nope")
	require.Error(t, err)
}

func TestStoreRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "trials.db"))
	err := store.SaveRun(context.Background(), "run", NewTable(nil))
	require.Error(t, err)
}

func TestStoreInitRequiresPath(t *testing.T) {
	store := NewStore("")
	require.Error(t, store.Init(context.Background()))
}
