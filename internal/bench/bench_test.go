package bench

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Iterations = 2
	cfg.Workloads = WorkloadConfig{
		VectorN:        500,
		NestedVectorsN: 10,
		NestedVectorsM: 10,
		TableN:         200,
		NestedTablesN:  5,
		NestedTablesM:  10,
		MatrixN:        8,
	}
	return cfg
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"zero size class", func(c *Config) { c.SizeClasses = []SizeClassConfig{{Size: 0}} }},
		{"descending classes", func(c *Config) {
			c.SizeClasses = []SizeClassConfig{{Size: 32}, {Size: 16}}
		}},
		{"negative prealloc", func(c *Config) {
			c.SizeClasses = []SizeClassConfig{{Size: 16, Prealloc: -1}}
		}},
		{"zero workload size", func(c *Config) { c.Workloads.TableN = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
iterations: 3
chunk_size: 65536
size_classes:
  - size: 16
    prealloc: 100
  - size: 32
    prealloc: 50
  - size: 64
    prealloc: 25
workloads:
  vector_n: 1000
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Iterations)
	assert.Equal(t, 65536, cfg.ChunkSize)
	require.Len(t, cfg.SizeClasses, 3)
	assert.Equal(t, 100, cfg.SizeClasses[0].Prealloc)
	assert.Equal(t, 1000, cfg.Workloads.VectorN)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultConfig().Workloads.TableN, cfg.Workloads.TableN)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("iterations: [not an int]"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("iterations: -1"), 0o644))
	_, err = Load(invalid)
	assert.Error(t, err)
}

func TestRunAllScenarios(t *testing.T) {
	cfg := smallConfig()
	results, err := Run(cfg, nil)
	require.NoError(t, err)

	numScenarios := len(Scenarios())
	numWorkloads := len(workloadCases())
	require.Len(t, results, numScenarios*numWorkloads)

	for _, r := range results {
		assert.Equal(t, cfg.Iterations, r.Iterations)
		if r.Scenario == "baseline" {
			assert.Nil(t, r.Metrics, "baseline has no tracking wrapper")
			continue
		}
		require.NotNil(t, r.Metrics, "%s/%s", r.Scenario, r.Workload)
		assert.Positive(t, r.Metrics.NumAllocs, "%s/%s", r.Scenario, r.Workload)
		assert.Zero(t, r.Metrics.LiveBytes,
			"%s/%s: teardown must return every byte upstream", r.Scenario, r.Workload)
		assert.GreaterOrEqual(t, r.Metrics.MaxBytes, int64(0))
	}
}

func TestRunScenarioSelection(t *testing.T) {
	results, err := Run(smallConfig(), []string{"monotonic"})
	require.NoError(t, err)
	require.Len(t, results, len(workloadCases()))
	for _, r := range results {
		assert.Equal(t, "monotonic", r.Scenario)
	}

	_, err = Run(smallConfig(), []string{"nonsense"})
	assert.Error(t, err)
}

func TestMonotonicBatchesUpstreamTraffic(t *testing.T) {
	cfg := smallConfig()

	system, err := Run(cfg, []string{"system"})
	require.NoError(t, err)
	mono, err := Run(cfg, []string{"monotonic"})
	require.NoError(t, err)

	// The whole point of the arena: far fewer upstream allocations for the
	// same workload.
	for i := range system {
		assert.Less(t, mono[i].Metrics.NumAllocs, system[i].Metrics.NumAllocs,
			"workload %s", system[i].Workload)
	}
}

func TestWriteReport(t *testing.T) {
	results, err := Run(smallConfig(), []string{"baseline", "pool"})
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteReport(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "baseline")
	assert.Contains(t, out, "pool")
	assert.Contains(t, out, "vector push")
	assert.Contains(t, out, "matrix multiply")
	assert.Contains(t, out, "Max Bytes")
}
