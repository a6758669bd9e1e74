// Package config provides configuration management for plot processing
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings threaded through plot processing.
type Config struct {
	// Parallel Processing Configuration
	ParallelGroupThreshold int `json:"parallel_group_threshold" yaml:"parallel_group_threshold"` // Minimum groups before per-group stats fan out
	WorkerPoolSize         int `json:"worker_pool_size" yaml:"worker_pool_size"`                 // Number of worker goroutines (0 = auto-detect)
	MaxParallelism         int `json:"max_parallelism" yaml:"max_parallelism"`                   // Upper bound on concurrent workers and layers

	// Sampling Configuration
	DefaultSamplingSeed int64 `json:"default_sampling_seed" yaml:"default_sampling_seed"` // Seed for random samplings without one

	// Debugging Configuration
	DebugLog            bool `json:"debug_log" yaml:"debug_log"`                           // Log every tile/layer step at debug level
	FailOnInternalPanic bool `json:"fail_on_internal_panic" yaml:"fail_on_internal_panic"` // Re-panic instead of returning a failure
	CollectMetrics      bool `json:"collect_metrics" yaml:"collect_metrics"`               // Time every processing stage into Result.Metrics

	Logger *slog.Logger `json:"-" yaml:"-"`
}

// Default configuration values
const (
	DefaultParallelGroupThreshold = 64
	DefaultMaxParallelism         = 16
	DefaultSamplingSeed           = 37
)

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		ParallelGroupThreshold: DefaultParallelGroupThreshold,
		WorkerPoolSize:         0, // Auto-detect
		MaxParallelism:         DefaultMaxParallelism,
		DefaultSamplingSeed:    DefaultSamplingSeed,
		Logger:                 slog.Default(),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.ParallelGroupThreshold <= 0 {
		return fmt.Errorf("ParallelGroupThreshold must be positive, got %d", c.ParallelGroupThreshold)
	}

	if c.WorkerPoolSize < 0 {
		return fmt.Errorf("WorkerPoolSize must be non-negative, got %d", c.WorkerPoolSize)
	}

	if c.MaxParallelism <= 0 {
		return fmt.Errorf("MaxParallelism must be positive, got %d", c.MaxParallelism)
	}

	return nil
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.ParallelGroupThreshold == 0 {
		c.ParallelGroupThreshold = defaults.ParallelGroupThreshold
	}
	if c.MaxParallelism == 0 {
		c.MaxParallelism = defaults.MaxParallelism
	}
	if c.DefaultSamplingSeed == 0 {
		c.DefaultSamplingSeed = defaults.DefaultSamplingSeed
	}
	if c.Logger == nil {
		c.Logger = defaults.Logger
	}

	// Boolean switches keep their zero value.
	return c
}

// Workers returns the effective worker count: WorkerPoolSize, or the CPU
// count when unset, never above MaxParallelism.
func (c Config) Workers() int {
	n := c.WorkerPoolSize
	if n == 0 {
		n = runtime.NumCPU()
	}
	if c.MaxParallelism > 0 && n > c.MaxParallelism {
		n = c.MaxParallelism
	}
	return n
}

// Log returns the configured logger, falling back to slog.Default.
func (c Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a .json, .yaml or .yml file
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from PLOTFRAME_* environment variables
func LoadFromEnv() Config {
	config := NewConfig()

	envInt("PLOTFRAME_PARALLEL_GROUP_THRESHOLD", &config.ParallelGroupThreshold)
	envInt("PLOTFRAME_WORKER_POOL_SIZE", &config.WorkerPoolSize)
	envInt("PLOTFRAME_MAX_PARALLELISM", &config.MaxParallelism)

	if val := os.Getenv("PLOTFRAME_DEFAULT_SAMPLING_SEED"); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.DefaultSamplingSeed = parsed
		}
	}

	envBool("PLOTFRAME_DEBUG_LOG", &config.DebugLog)
	envBool("PLOTFRAME_FAIL_ON_INTERNAL_PANIC", &config.FailOnInternalPanic)
	envBool("PLOTFRAME_COLLECT_METRICS", &config.CollectMetrics)

	return config
}

// Unparseable values are ignored.
func envInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			*dst = parsed
		}
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			*dst = parsed
		}
	}
}
