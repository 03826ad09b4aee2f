// Package bench selects an allocation scenario, installs the corresponding
// resource chain, runs timed workload iterations through it, and reports
// the tracked allocation counters.
package bench

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/pavanmanishd/memres"
)

// SizeClassConfig configures one pool size class.
type SizeClassConfig struct {
	Size     int `yaml:"size"`
	Prealloc int `yaml:"prealloc"`
}

// WorkloadConfig sets the per-workload problem sizes.
type WorkloadConfig struct {
	VectorN        int `yaml:"vector_n"`
	NestedVectorsN int `yaml:"nested_vectors_n"`
	NestedVectorsM int `yaml:"nested_vectors_m"`
	TableN         int `yaml:"table_n"`
	NestedTablesN  int `yaml:"nested_tables_n"`
	NestedTablesM  int `yaml:"nested_tables_m"`
	MatrixN        int `yaml:"matrix_n"`
}

// Config drives a benchmark run.
type Config struct {
	Iterations  int               `yaml:"iterations"`
	ChunkSize   int               `yaml:"chunk_size"`
	SizeClasses []SizeClassConfig `yaml:"size_classes"`
	Workloads   WorkloadConfig    `yaml:"workloads"`
}

// DefaultConfig mirrors the problem sizes the harness was originally tuned
// with.
func DefaultConfig() Config {
	return Config{
		Iterations: 10,
		ChunkSize:  1 << 20,
		Workloads: WorkloadConfig{
			VectorN:        100000,
			NestedVectorsN: 1000,
			NestedVectorsM: 100,
			TableN:         10000,
			NestedTablesN:  100,
			NestedTablesM:  100,
			MatrixN:        64,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "validating config %q", path)
	}
	return cfg, nil
}

// Validate rejects configurations the resource constructors would refuse.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return errors.Newf("iterations must be positive, got %d", c.Iterations)
	}
	if c.ChunkSize <= 0 {
		return errors.Newf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	prev := 0
	for _, sc := range c.SizeClasses {
		if sc.Size <= 0 {
			return errors.Newf("size class %d must be positive", sc.Size)
		}
		if sc.Size <= prev {
			return errors.Newf("size classes must be strictly ascending, got %d after %d", sc.Size, prev)
		}
		if sc.Prealloc < 0 {
			return errors.Newf("prealloc for class %d must not be negative", sc.Size)
		}
		prev = sc.Size
	}
	w := c.Workloads
	for _, n := range []int{
		w.VectorN, w.NestedVectorsN, w.NestedVectorsM,
		w.TableN, w.NestedTablesN, w.NestedTablesM, w.MatrixN,
	} {
		if n <= 0 {
			return errors.New("workload sizes must be positive")
		}
	}
	return nil
}

// poolConfig converts the configured size classes, falling back to the
// library default when none are given.
func (c Config) poolConfig() memres.PoolConfig {
	if len(c.SizeClasses) == 0 {
		return memres.DefaultPoolConfig()
	}
	var cfg memres.PoolConfig
	for _, sc := range c.SizeClasses {
		cfg.Classes = append(cfg.Classes, memres.SizeClass{Size: sc.Size, Prealloc: sc.Prealloc})
	}
	return cfg
}
