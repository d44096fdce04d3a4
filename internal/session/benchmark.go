package session

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/edenlum/PokerLLM/internal/game"
	"github.com/edenlum/PokerLLM/internal/randutil"
)

// Competitor is a named agent factory. Factories let the benchmark
// give every pairing its own agent instances, so stateful agents never
// share state across concurrent matches.
type Competitor struct {
	Name     string
	NewAgent func() game.Agent
}

// Standing is one leaderboard row.
type Standing struct {
	Name      string
	NetChips  int
	Hands     int
	Fallbacks int
}

// BenchmarkResult aggregates a full round-robin.
type BenchmarkResult struct {
	Standings []Standing
	Pairings  []*DuplicateResult
}

// Benchmark plays a duplicate pair between every two competitors and
// ranks them by total net chips. Pairings run concurrently up to the
// configured parallelism; each pairing derives its own seed so the
// whole benchmark replays from one.
type Benchmark struct {
	cfg         Config
	competitors []Competitor
	parallelism int
	logger      *log.Logger
}

// NewBenchmark creates a round-robin benchmark. Parallelism below 1 is
// treated as 1.
func NewBenchmark(cfg Config, competitors []Competitor, parallelism int, logger *log.Logger) (*Benchmark, error) {
	if len(competitors) < 2 {
		return nil, errors.New("benchmark: at least 2 competitors required")
	}
	names := make(map[string]bool, len(competitors))
	for _, c := range competitors {
		if c.NewAgent == nil {
			return nil, errors.New("benchmark: competitor " + c.Name + " has no agent factory")
		}
		if names[c.Name] {
			return nil, errors.New("benchmark: duplicate competitor name " + c.Name)
		}
		names[c.Name] = true
	}
	if parallelism < 1 {
		parallelism = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Benchmark{
		cfg:         cfg,
		competitors: competitors,
		parallelism: parallelism,
		logger:      logger.WithPrefix("benchmark"),
	}, nil
}

// Run plays every pairing and returns the ranked standings.
func (b *Benchmark) Run(ctx context.Context) (*BenchmarkResult, error) {
	type pairing struct{ i, j int }
	var pairs []pairing
	for i := range b.competitors {
		for j := i + 1; j < len(b.competitors); j++ {
			pairs = append(pairs, pairing{i, j})
		}
	}

	results := make([]*DuplicateResult, len(pairs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.parallelism)

	for idx, pair := range pairs {
		idx, pair := idx, pair
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			ca := b.competitors[pair.i]
			cb := b.competitors[pair.j]
			cfg := b.cfg
			cfg.Seed = randutil.Derive(b.cfg.Seed, idx+1)

			b.logger.Info("pairing start", "a", ca.Name, "b", cb.Name, "seed", cfg.Seed)
			dr, err := RunDuplicate(cfg,
				Seat{Name: ca.Name, Agent: ca.NewAgent()},
				Seat{Name: cb.Name, Agent: cb.NewAgent()},
				b.logger)
			if err != nil {
				return err
			}
			results[idx] = dr
			b.logger.Info("pairing complete", "a", ca.Name, "b", cb.Name, "net", dr.NetChips)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &BenchmarkResult{
		Standings: b.standings(results),
		Pairings:  results,
	}, nil
}

func (b *Benchmark) standings(results []*DuplicateResult) []Standing {
	rows := make(map[string]*Standing, len(b.competitors))
	for _, c := range b.competitors {
		rows[c.Name] = &Standing{Name: c.Name}
	}

	for _, dr := range results {
		for name, net := range dr.NetChips {
			rows[name].NetChips += net
		}
		for _, run := range dr.Runs {
			for name := range run.NetChips {
				rows[name].Hands += len(run.Hands)
			}
			for name, count := range run.FallbacksBy {
				rows[name].Fallbacks += count
			}
		}
	}

	out := make([]Standing, 0, len(rows))
	for _, s := range rows {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NetChips != out[j].NetChips {
			return out[i].NetChips > out[j].NetChips
		}
		return out[i].Name < out[j].Name
	})
	return out
}
