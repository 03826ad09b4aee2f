package bench

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/memres"
	"github.com/pavanmanishd/memres/internal/workload"
)

// chain is a built resource stack: the resource workloads allocate from,
// the tracking wrapper at its base, and the teardown that releases the
// strategies in top-down order.
type chain struct {
	res     memres.Resource  // nil for the builtin baseline
	track   *memres.Tracking // nil for the builtin baseline
	cleanup func()
}

// Scenario names one allocation strategy stack.
type Scenario struct {
	Name        string
	Description string
	build       func(cfg Config) (*chain, error)
}

// Scenarios returns every known scenario, in report order.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:        "baseline",
			Description: "builtin Go allocation, no resource involved",
			build: func(cfg Config) (*chain, error) {
				return &chain{cleanup: func() {}}, nil
			},
		},
		{
			Name:        "system",
			Description: "tracking over the platform default",
			build: func(cfg Config) (*chain, error) {
				track := memres.NewTracking(memres.System)
				return &chain{res: track, track: track, cleanup: func() {}}, nil
			},
		},
		{
			Name:        "monotonic",
			Description: "bump allocation, bulk release",
			build: func(cfg Config) (*chain, error) {
				track := memres.NewTracking(memres.System)
				mono, err := memres.NewMonotonic(track, cfg.ChunkSize)
				if err != nil {
					return nil, err
				}
				return &chain{res: mono, track: track, cleanup: mono.Release}, nil
			},
		},
		{
			Name:        "pool",
			Description: "size-class free lists",
			build: func(cfg Config) (*chain, error) {
				track := memres.NewTracking(memres.System)
				pool, err := memres.NewPool(track, cfg.poolConfig())
				if err != nil {
					return nil, err
				}
				return &chain{res: pool, track: track, cleanup: pool.Release}, nil
			},
		},
		{
			Name:        "monotonic-over-pool",
			Description: "bump allocation drawing its chunks from a pool",
			build: func(cfg Config) (*chain, error) {
				track := memres.NewTracking(memres.System)
				pool, err := memres.NewPool(track, cfg.poolConfig())
				if err != nil {
					return nil, err
				}
				mono, err := memres.NewMonotonic(pool, cfg.ChunkSize)
				if err != nil {
					pool.Release()
					return nil, err
				}
				return &chain{res: mono, track: track, cleanup: func() {
					mono.Release()
					pool.Release()
				}}, nil
			},
		},
		{
			Name:        "pool-over-monotonic",
			Description: "pool carving its blocks out of an arena",
			build: func(cfg Config) (*chain, error) {
				track := memres.NewTracking(memres.System)
				mono, err := memres.NewMonotonic(track, cfg.ChunkSize)
				if err != nil {
					return nil, err
				}
				pool, err := memres.NewPool(mono, cfg.poolConfig())
				if err != nil {
					mono.Release()
					return nil, err
				}
				return &chain{res: pool, track: track, cleanup: func() {
					pool.Release()
					mono.Release()
				}}, nil
			},
		},
	}
}

type workloadCase struct {
	name string
	run  func(res memres.Resource, cfg Config) error
}

func workloadCases() []workloadCase {
	return []workloadCase{
		{"vector push", func(res memres.Resource, cfg Config) error {
			return workload.VectorPushBack(res, cfg.Workloads.VectorN)
		}},
		{"nested vectors", func(res memres.Resource, cfg Config) error {
			return workload.NestedVectors(res, cfg.Workloads.NestedVectorsN, cfg.Workloads.NestedVectorsM)
		}},
		{"table insert", func(res memres.Resource, cfg Config) error {
			return workload.TableInsert(res, cfg.Workloads.TableN)
		}},
		{"nested tables", func(res memres.Resource, cfg Config) error {
			return workload.NestedTables(res, cfg.Workloads.NestedTablesN, cfg.Workloads.NestedTablesM)
		}},
		{"matrix multiply", func(res memres.Resource, cfg Config) error {
			return workload.MatrixMultiply(res, cfg.Workloads.MatrixN)
		}},
	}
}

// Result is one scenario/workload cell of the report. Metrics is the
// tracking snapshot taken after the chain was torn down, so releases show
// up as deallocations; it is nil for the builtin baseline.
type Result struct {
	Scenario   string
	Workload   string
	Iterations int
	Elapsed    time.Duration
	Metrics    *memres.TrackingMetrics
}

// Run executes the named scenarios (all of them if names is empty) and
// returns one Result per scenario/workload pair. A fresh chain is built for
// every pair so the counters are attributable.
func Run(cfg Config, names []string) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	selected, err := selectScenarios(names)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, sc := range selected {
		for _, wc := range workloadCases() {
			res, err := runOne(cfg, sc, wc)
			if err != nil {
				return nil, errors.Wrapf(err, "scenario %q, workload %q", sc.Name, wc.name)
			}
			results = append(results, res)
		}
	}
	return results, nil
}

func runOne(cfg Config, sc Scenario, wc workloadCase) (Result, error) {
	ch, err := sc.build(cfg)
	if err != nil {
		return Result{}, err
	}

	// Scoped install: the chain is the process default for the duration of
	// the run and the previous resource comes back before teardown.
	restore := memres.Install(ch.res)

	start := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		if err := wc.run(ch.res, cfg); err != nil {
			restore()
			ch.cleanup()
			return Result{}, err
		}
	}
	elapsed := time.Since(start)

	restore()
	ch.cleanup()

	out := Result{
		Scenario:   sc.Name,
		Workload:   wc.name,
		Iterations: cfg.Iterations,
		Elapsed:    elapsed,
	}
	if ch.track != nil {
		m := ch.track.Metrics()
		out.Metrics = &m
	}
	return out, nil
}

func selectScenarios(names []string) ([]Scenario, error) {
	all := Scenarios()
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]Scenario, len(all))
	for _, sc := range all {
		byName[sc.Name] = sc
	}
	var out []Scenario
	for _, name := range names {
		sc, ok := byName[name]
		if !ok {
			return nil, errors.Newf("unknown scenario %q", name)
		}
		out = append(out, sc)
	}
	return out, nil
}
