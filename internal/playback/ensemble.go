package playback

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/san-kum/trailfx/internal/config"
	"github.com/san-kum/trailfx/internal/metrics"
	"github.com/san-kum/trailfx/internal/trace"
)

// Ensemble replays one trace under consecutive seeds. Metrics are stateful,
// so each run gets a fresh set from the factory.
type Ensemble struct {
	cfg       Config
	numRuns   int
	seedStart int64
	metrics   func() []metrics.Metric
}

func NewEnsemble(cfg Config, numRuns int, seedStart int64, newMetrics func() []metrics.Metric) *Ensemble {
	if newMetrics == nil {
		newMetrics = metrics.Defaults
	}
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, metrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, events []trace.Event) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg
			if cfg.Session != nil {
				cfg.Session = cfg.Session.Clone()
			} else {
				cfg.Session = config.DefaultConfig()
			}
			cfg.Session.Seed = e.seedStart + int64(idx)

			p := New(cfg)
			for _, m := range e.metrics() {
				p.AddMetric(m)
			}
			results[idx], errs[idx] = p.Run(ctx, events)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Spread is the range of one metric across an ensemble.
type Spread struct {
	Name           string
	Mean, Min, Max float64
}

// Summarize folds every run's metrics into per-name spreads, sorted by name.
func Summarize(results []*Result) []Spread {
	acc := make(map[string]*Spread)
	for _, r := range results {
		for name, v := range r.Metrics {
			s, ok := acc[name]
			if !ok {
				s = &Spread{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
				acc[name] = s
			}
			s.Mean += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}
	}

	out := make([]Spread, 0, len(acc))
	for _, s := range acc {
		s.Mean /= float64(len(results))
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
