package simulation

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/bipartite-stability-service/pkg/bipartite"
	"github.com/gilchrisn/bipartite-stability-service/pkg/metrics"
	"github.com/gilchrisn/bipartite-stability-service/pkg/results"
	"github.com/gilchrisn/bipartite-stability-service/pkg/stability"
)

// seedStride separates per-trial RNG streams derived from the base seed.
const seedStride uint64 = 0x9E3779B97F4A7C15

// Driver runs independent simulation trials and collects one result row per
// trial, in trial order, regardless of how many workers execute them.
type Driver struct {
	config  *Config
	metrics metrics.Provider
	logger  zerolog.Logger
}

// NewDriver validates the configuration and creates a driver. A nil provider
// selects the default Louvain-backed metrics seeded from the simulation seed.
func NewDriver(config *Config, provider metrics.Provider) (*Driver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		provider = metrics.NewLouvainProvider(config.RandomSeed(), config.MetricRestarts())
	}
	return &Driver{
		config:  config,
		metrics: provider,
		logger:  config.CreateLogger(),
	}, nil
}

// Run executes all configured trials. Trials are embarrassingly parallel:
// each writes only its own preallocated row, so workers never contend. Each
// trial derives its RNG from the base seed and its index, making a seeded
// run reproducible independent of the worker count. Cancellation is checked
// between trials; a trial that fails numerically is recorded with undefined
// resilience and never aborts the batch.
func (d *Driver) Run(ctx context.Context) (*results.Table, error) {
	n := d.config.Trials()
	workers := d.config.Workers()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	d.logger.Info().
		Int("trials", n).
		Int("workers", workers).
		Int64("seed", d.config.RandomSeed()).
		Bool("quantitative_modularity", d.config.QuantitativeModularity()).
		Msg("Starting simulation")

	rows := make([]results.Trial, n)
	trialCh := make(chan int, n)
	var completed int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-trialCh:
					if !ok {
						return
					}
					rows[idx] = d.runTrial(idx)
					d.reportProgress(atomic.AddInt64(&completed, 1), int64(n))
				}
			}
		}()
	}

	for idx := 0; idx < n; idx++ {
		trialCh <- idx
	}
	close(trialCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.logger.Info().Int("trials", n).Msg("Simulation completed")
	return results.NewTable(rows), nil
}

// runTrial executes the full pipeline for one trial: parameter draws,
// topology, weighting, structural metrics, both Jacobian variants and their
// resiliences.
func (d *Driver) runTrial(idx int) results.Trial {
	rng := rand.New(rand.NewSource(d.config.RandomSeed() + int64(uint64(idx)*seedStride)))

	plants := drawInt(rng, d.config.PlantMin(), d.config.PlantMax())
	animals := drawInt(rng, d.config.AnimalMin(), d.config.AnimalMax())
	connectance := drawFloat(rng, d.config.ConnectanceMin(), d.config.ConnectanceMax())

	trial := results.Trial{
		Plants:                 plants,
		Animals:                animals,
		Diversity:              plants + animals,
		TargetConnectance:      connectance,
		Nestedness:             metrics.Undefined(),
		Modularity:             metrics.Undefined(),
		ResilienceMutualistic:  metrics.Undefined(),
		ResilienceAntagonistic: metrics.Undefined(),
	}

	topology, err := bipartite.RandomTopology(rng, plants, animals, connectance)
	if err != nil {
		d.logger.Error().Err(err).Int("trial", idx).Msg("Topology generation failed")
		return trial
	}
	trial.RealizedConnectance = topology.RealizedConnectance()

	weighted, err := bipartite.AssignWeights(rng, topology, d.config.ExponentialRate())
	if err != nil {
		d.logger.Error().Err(err).Int("trial", idx).Msg("Weight assignment failed")
		return trial
	}

	trial.Nestedness = d.metrics.Nestedness(weighted)
	trial.Modularity = d.metrics.Modularity(weighted, d.config.QuantitativeModularity())

	trial.ResilienceMutualistic = d.resilience(idx, weighted, stability.Mutualistic)
	trial.ResilienceAntagonistic = d.resilience(idx, weighted, stability.Antagonistic)

	return trial
}

// resilience assembles one regime's community matrix and extracts its
// resilience. A non-converging eigen decomposition is recorded as undefined
// and logged; the batch continues.
func (d *Driver) resilience(idx int, weighted *bipartite.Matrix, regime stability.Regime) float64 {
	community := stability.Assemble(weighted, regime)
	value, err := stability.Resilience(community)
	if err != nil {
		d.logger.Warn().
			Err(err).
			Int("trial", idx).
			Str("regime", regime.String()).
			Msg("Eigen decomposition failed, recording undefined resilience")
		return metrics.Undefined()
	}
	return value
}

func (d *Driver) reportProgress(done, total int64) {
	interval := int64(d.config.ProgressInterval())
	if interval <= 0 || done%interval != 0 {
		return
	}
	d.logger.Info().
		Int64("completed", done).
		Int64("total", total).
		Msg("Simulation progress")
}

// drawInt samples uniformly from [min, max].
func drawInt(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

// drawFloat samples uniformly from [min, max).
func drawFloat(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
