package louvain

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages algorithm configuration using Viper.
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults.
func NewConfig() *Config {
	v := viper.New()

	// Algorithm parameters
	v.SetDefault("algorithm.max_levels", 10)
	v.SetDefault("algorithm.max_iterations", 100)
	v.SetDefault("algorithm.min_modularity_gain", 1e-7)
	v.SetDefault("algorithm.restarts", 5)
	v.SetDefault("algorithm.random_seed", time.Now().UnixNano())

	// Logging parameters
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.enable_progress", false)

	return &Config{v: v}
}

// LoadFromFile loads configuration from file.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for algorithm parameters
func (c *Config) MaxLevels() int { return c.v.GetInt("algorithm.max_levels") }
func (c *Config) MaxIterations() int { return c.v.GetInt("algorithm.max_iterations") }
func (c *Config) MinModularityGain() float64 { return c.v.GetFloat64("algorithm.min_modularity_gain") }
func (c *Config) Restarts() int { return c.v.GetInt("algorithm.restarts") }
func (c *Config) RandomSeed() int64 { return c.v.GetInt64("algorithm.random_seed") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }
func (c *Config) EnableProgress() bool { return c.v.GetBool("logging.enable_progress") }

// Set allows dynamic configuration changes.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger creates a zerolog logger based on config.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.WarnLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "louvain").Logger()
}
