// Command bipartite-stability-service simulates ensembles of random bipartite
// interaction networks and reports their structural metrics and stability.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gilchrisn/bipartite-stability-service/pkg/results"
	"github.com/gilchrisn/bipartite-stability-service/pkg/simulation"
)

func main() {
	var (
		trials       = flag.Int("trials", 1000, "number of simulated networks")
		plantMin     = flag.Int("plant-min", 8, "minimum plant species count")
		plantMax     = flag.Int("plant-max", 30, "maximum plant species count")
		animalMin    = flag.Int("animal-min", 16, "minimum animal species count")
		animalMax    = flag.Int("animal-max", 60, "maximum animal species count")
		connMin      = flag.Float64("connectance-min", 0.05, "minimum connectance")
		connMax      = flag.Float64("connectance-max", 0.5, "maximum connectance")
		seed         = flag.Int64("seed", 0, "random seed (0 = time-based)")
		workers      = flag.Int("workers", 0, "worker goroutines (0 = all CPUs)")
		quantitative = flag.Bool("quantitative", false, "use interaction weights for modularity (slower)")
		csvPath      = flag.String("csv", "", "write the results table as CSV to this path")
		dbPath       = flag.String("sqlite", "", "persist the results table to this SQLite database")
		runName      = flag.String("run-name", "simulation", "run name used in the SQLite store")
		logLevel     = flag.String("log-level", "info", "log level (trace|debug|info|warn|error)")
	)
	flag.Parse()

	config := simulation.NewConfig()
	config.Set("simulation.trials", *trials)
	config.Set("species.plant_min", *plantMin)
	config.Set("species.plant_max", *plantMax)
	config.Set("species.animal_min", *animalMin)
	config.Set("species.animal_max", *animalMax)
	config.Set("network.connectance_min", *connMin)
	config.Set("network.connectance_max", *connMax)
	config.Set("simulation.quantitative_modularity", *quantitative)
	config.Set("logging.level", *logLevel)
	if *seed != 0 {
		config.Set("simulation.random_seed", *seed)
	}
	if *workers > 0 {
		config.Set("simulation.workers", *workers)
	}

	driver, err := simulation.NewDriver(config, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := driver.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
		os.Exit(1)
	}

	printSummary(table)

	if *csvPath != "" {
		if err := writeCSV(table, *csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "CSV export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results written to %s\n", *csvPath)
	}

	if *dbPath != "" {
		if err := saveRun(ctx, table, *dbPath, *runName); err != nil {
			fmt.Fprintf(os.Stderr, "SQLite export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Run %q saved to %s\n", *runName, *dbPath)
	}
}

func printSummary(table *results.Table) {
	fmt.Printf("=== Simulation Summary (%d trials) ===\n", table.Len())
	fmt.Printf("%-24s %8s %10s %10s %10s %10s\n", "column", "defined", "mean", "stddev", "min", "max")
	for _, s := range table.Summary() {
		fmt.Printf("%-24s %8d %10.4f %10.4f %10.4f %10.4f\n",
			s.Column, s.Defined, s.Mean, s.StdDev, s.Min, s.Max)
	}
}

func writeCSV(table *results.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return table.WriteCSV(f)
}

func saveRun(ctx context.Context, table *results.Table, path, name string) error {
	store := results.NewStore(path)
	if err := store.Init(ctx); err != nil {
		return err
	}
	defer store.Close()
	return store.SaveRun(ctx, name, table)
}
