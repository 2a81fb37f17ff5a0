// Package simulation orchestrates repeated random-network trials: parameter
// draws, topology generation, weighting, structural metrics, Jacobian
// assembly and stability estimation, collected into a results table.
package simulation

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var (
	// ErrSpeciesRange indicates a non-positive or inverted species count range.
	ErrSpeciesRange = errors.New("simulation: species count range must be positive with min <= max")
	// ErrConnectanceRange indicates connectance bounds outside [0,1] or inverted.
	ErrConnectanceRange = errors.New("simulation: connectance range must satisfy 0 <= min <= max <= 1")
	// ErrTrialCount indicates a non-positive trial count.
	ErrTrialCount = errors.New("simulation: trial count must be positive")
	// ErrRate indicates a non-positive exponential rate.
	ErrRate = errors.New("simulation: exponential rate must be positive")
)

// Config manages simulation configuration using Viper.
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults.
func NewConfig() *Config {
	v := viper.New()

	// Species pools
	v.SetDefault("species.plant_min", 8)
	v.SetDefault("species.plant_max", 30)
	v.SetDefault("species.animal_min", 16)
	v.SetDefault("species.animal_max", 60)

	// Network parameters
	v.SetDefault("network.connectance_min", 0.05)
	v.SetDefault("network.connectance_max", 0.5)
	v.SetDefault("network.exponential_rate", 1.0)

	// Simulation parameters
	v.SetDefault("simulation.trials", 1000)
	v.SetDefault("simulation.workers", runtime.NumCPU())
	v.SetDefault("simulation.random_seed", time.Now().UnixNano())
	v.SetDefault("simulation.quantitative_modularity", false)

	// Metrics parameters
	v.SetDefault("metrics.restarts", 5)

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.progress_interval", 100)

	return &Config{v: v}
}

// LoadFromFile loads configuration from file.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for species parameters
func (c *Config) PlantMin() int { return c.v.GetInt("species.plant_min") }
func (c *Config) PlantMax() int { return c.v.GetInt("species.plant_max") }
func (c *Config) AnimalMin() int { return c.v.GetInt("species.animal_min") }
func (c *Config) AnimalMax() int { return c.v.GetInt("species.animal_max") }

// Getters for network parameters
func (c *Config) ConnectanceMin() float64 { return c.v.GetFloat64("network.connectance_min") }
func (c *Config) ConnectanceMax() float64 { return c.v.GetFloat64("network.connectance_max") }
func (c *Config) ExponentialRate() float64 { return c.v.GetFloat64("network.exponential_rate") }

// Getters for simulation parameters
func (c *Config) Trials() int { return c.v.GetInt("simulation.trials") }
func (c *Config) Workers() int { return c.v.GetInt("simulation.workers") }
func (c *Config) RandomSeed() int64 {
	return c.v.GetInt64("simulation.random_seed")
}
func (c *Config) QuantitativeModularity() bool {
	return c.v.GetBool("simulation.quantitative_modularity")
}

func (c *Config) MetricRestarts() int { return c.v.GetInt("metrics.restarts") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }
func (c *Config) ProgressInterval() int { return c.v.GetInt("logging.progress_interval") }

// Set allows dynamic configuration changes.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// Validate checks all parameter ranges. It is called before any trial runs,
// so an invalid configuration never produces partial results.
func (c *Config) Validate() error {
	if c.PlantMin() <= 0 || c.PlantMin() > c.PlantMax() {
		return fmt.Errorf("%w: plants [%d,%d]", ErrSpeciesRange, c.PlantMin(), c.PlantMax())
	}
	if c.AnimalMin() <= 0 || c.AnimalMin() > c.AnimalMax() {
		return fmt.Errorf("%w: animals [%d,%d]", ErrSpeciesRange, c.AnimalMin(), c.AnimalMax())
	}
	if c.ConnectanceMin() < 0 || c.ConnectanceMax() > 1 || c.ConnectanceMin() > c.ConnectanceMax() {
		return fmt.Errorf("%w: [%f,%f]", ErrConnectanceRange, c.ConnectanceMin(), c.ConnectanceMax())
	}
	if c.Trials() <= 0 {
		return fmt.Errorf("%w: %d", ErrTrialCount, c.Trials())
	}
	if c.ExponentialRate() <= 0 {
		return fmt.Errorf("%w: %f", ErrRate, c.ExponentialRate())
	}
	return nil
}

// CreateLogger creates a zerolog logger based on config.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "simulation").Logger()
}
