package config_test

import (
	"os"
	"runtime"
	"testing"

	"github.com/paveg/plotframe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, 64, cfg.ParallelGroupThreshold)
	assert.Equal(t, 0, cfg.WorkerPoolSize) // 0 means auto-detect
	assert.Equal(t, 16, cfg.MaxParallelism)
	assert.Equal(t, int64(config.DefaultSamplingSeed), cfg.DefaultSamplingSeed)
	assert.False(t, cfg.DebugLog)
	assert.False(t, cfg.FailOnInternalPanic)
	assert.NotNil(t, cfg.Logger)
}

func TestConfig_Validation(t *testing.T) {
	tests := []struct {
		name          string
		config        config.Config
		expectedError string
	}{
		{
			name: "valid config",
			config: config.Config{
				ParallelGroupThreshold: 8,
				WorkerPoolSize:         4,
				MaxParallelism:         8,
			},
		},
		{
			name: "zero group threshold",
			config: config.Config{
				MaxParallelism: 8,
			},
			expectedError: "ParallelGroupThreshold must be positive, got 0",
		},
		{
			name: "negative worker pool size",
			config: config.Config{
				ParallelGroupThreshold: 8,
				WorkerPoolSize:         -1,
				MaxParallelism:         8,
			},
			expectedError: "WorkerPoolSize must be non-negative, got -1",
		},
		{
			name: "zero max parallelism",
			config: config.Config{
				ParallelGroupThreshold: 8,
			},
			expectedError: "MaxParallelism must be positive, got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectedError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.expectedError, err.Error())
		})
	}
}

func TestConfig_LoadFromJSON(t *testing.T) {
	jsonData := `{
		"parallel_group_threshold": 4,
		"worker_pool_size": 8,
		"default_sampling_seed": 99,
		"debug_log": true
	}`

	cfg, err := config.LoadFromJSON([]byte(jsonData))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.ParallelGroupThreshold)
	assert.Equal(t, 8, cfg.WorkerPoolSize)
	assert.Equal(t, int64(99), cfg.DefaultSamplingSeed)
	assert.True(t, cfg.DebugLog)
	assert.Equal(t, 16, cfg.MaxParallelism)
	assert.NotNil(t, cfg.Logger)
}

func TestConfig_LoadFromFile(t *testing.T) {
	tmpFile, err := os.CreateTemp(t.TempDir(), "config_test_*.json")
	require.NoError(t, err)

	_, err = tmpFile.WriteString(`{"parallel_group_threshold": 10, "fail_on_internal_panic": true}`)
	require.NoError(t, err)
	_ = tmpFile.Close()

	cfg, err := config.LoadFromFile(tmpFile.Name())
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.ParallelGroupThreshold)
	assert.True(t, cfg.FailOnInternalPanic)
}

func TestConfig_LoadFromYAML(t *testing.T) {
	tmpFile, err := os.CreateTemp(t.TempDir(), "config_test_*.yaml")
	require.NoError(t, err)

	yamlData := `
parallel_group_threshold: 2
worker_pool_size: 3
max_parallelism: 4
debug_log: true
`
	_, err = tmpFile.WriteString(yamlData)
	require.NoError(t, err)
	_ = tmpFile.Close()

	cfg, err := config.LoadFromFile(tmpFile.Name())
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.ParallelGroupThreshold)
	assert.Equal(t, 3, cfg.WorkerPoolSize)
	assert.Equal(t, 4, cfg.MaxParallelism)
	assert.True(t, cfg.DebugLog)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("PLOTFRAME_PARALLEL_GROUP_THRESHOLD", "128")
	t.Setenv("PLOTFRAME_WORKER_POOL_SIZE", "12")
	t.Setenv("PLOTFRAME_DEFAULT_SAMPLING_SEED", "7")
	t.Setenv("PLOTFRAME_DEBUG_LOG", "true")
	t.Setenv("PLOTFRAME_MAX_PARALLELISM", "not-a-number")
	t.Setenv("PLOTFRAME_COLLECT_METRICS", "1")

	cfg := config.LoadFromEnv()

	assert.Equal(t, 128, cfg.ParallelGroupThreshold)
	assert.Equal(t, 12, cfg.WorkerPoolSize)
	assert.Equal(t, int64(7), cfg.DefaultSamplingSeed)
	assert.True(t, cfg.DebugLog)
	assert.True(t, cfg.CollectMetrics)
	assert.Equal(t, 16, cfg.MaxParallelism) // unparseable values keep the default
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := config.Config{ParallelGroupThreshold: 5}.WithDefaults()

	assert.Equal(t, 5, cfg.ParallelGroupThreshold)
	assert.Equal(t, 0, cfg.WorkerPoolSize)
	assert.Equal(t, 16, cfg.MaxParallelism)
	assert.Equal(t, int64(config.DefaultSamplingSeed), cfg.DefaultSamplingSeed)
	assert.NotNil(t, cfg.Logger)
	assert.False(t, cfg.DebugLog)
}

func TestConfig_Workers(t *testing.T) {
	assert.Equal(t, 3, config.Config{WorkerPoolSize: 3, MaxParallelism: 8}.Workers())
	assert.Equal(t, 2, config.Config{WorkerPoolSize: 6, MaxParallelism: 2}.Workers())

	auto := config.Config{MaxParallelism: 1024}.Workers()
	assert.Equal(t, runtime.NumCPU(), auto)
}

func TestConfig_UnsupportedFileFormat(t *testing.T) {
	tmpFile, err := os.CreateTemp(t.TempDir(), "config_test_*.toml")
	require.NoError(t, err)
	_ = tmpFile.Close()

	_, err = config.LoadFromFile(tmpFile.Name())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestConfig_InvalidJSON(t *testing.T) {
	_, err := config.LoadFromJSON([]byte(`{"parallel_group_threshold": "x"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON configuration")
}

func TestConfig_LoadFromNonExistentFile(t *testing.T) {
	_, err := config.LoadFromFile("/nonexistent/plotframe.yaml")
	assert.Error(t, err)
}
