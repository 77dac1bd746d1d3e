package runner

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ctfsim/internal/config"
	"ctfsim/internal/ctf"
	"ctfsim/internal/policy"
	"ctfsim/internal/util"
)

type BatchOptions struct {
	Episodes int
	Workers  int
	Seed     int64
	PolicyA  string
	PolicyB  string
	Logger   *zap.Logger
}

type Stat struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

type Summary struct {
	Runs     int            `json:"runs"`
	Outcomes map[string]int `json:"outcomes"`
	WinRateA float64        `json:"win_rate_a"`
	WinRateB float64        `json:"win_rate_b"`
	DrawRate float64        `json:"draw_rate"`
	Ticks    Stat           `json:"ticks"`
	ReturnA  Stat           `json:"return_a"`
	ReturnB  Stat           `json:"return_b"`
}

// RunBatch plays opts.Episodes independent episodes on at most opts.Workers
// goroutines. Episode i is seeded from util.EpisodeSeed(opts.Seed, i), so the
// results do not depend on scheduling. Results come back in episode order.
func RunBatch(ctx context.Context, cfg *config.MatchConfig, opts BatchOptions) (Summary, []EpisodeResult, error) {
	if opts.Episodes < 1 {
		return Summary{}, nil, fmt.Errorf("episodes must be at least 1, got %d", opts.Episodes)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	// Fail on a bad config or policy name before any goroutine starts.
	if _, err := ctf.NewMatch(cfg); err != nil {
		return Summary{}, nil, err
	}
	for _, name := range []string{opts.PolicyA, opts.PolicyB} {
		if _, err := policy.ByName(name, util.New(1)); err != nil {
			return Summary{}, nil, err
		}
	}

	results := make([]EpisodeResult, opts.Episodes)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Episodes; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := runSeeded(cfg, opts, i, logger)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, nil, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, nil, err
	}
	return Summarize(results), results, nil
}

func runSeeded(cfg *config.MatchConfig, opts BatchOptions, i int, logger *zap.Logger) (EpisodeResult, error) {
	seed := util.EpisodeSeed(opts.Seed, i)
	rng := util.New(seed)
	m, err := ctf.NewMatch(cfg, ctf.WithRand(rng))
	if err != nil {
		return EpisodeResult{}, err
	}
	pa, err := policy.ByName(opts.PolicyA, rng)
	if err != nil {
		return EpisodeResult{}, err
	}
	pb, err := policy.ByName(opts.PolicyB, rng)
	if err != nil {
		return EpisodeResult{}, err
	}
	return RunEpisode(m, pa, pb, Options{
		Seed:   seed,
		Logger: logger.With(zap.Int("episode", i)),
	})
}

func Summarize(results []EpisodeResult) Summary {
	s := Summary{Runs: len(results), Outcomes: map[string]int{}}
	if len(results) == 0 {
		return s
	}
	ticks := make([]float64, len(results))
	retA := make([]float64, len(results))
	retB := make([]float64, len(results))
	winsA, winsB, draws := 0, 0, 0
	for i, r := range results {
		s.Outcomes[r.Outcome.String()]++
		switch r.Winner {
		case ctf.WinnerA:
			winsA++
		case ctf.WinnerB:
			winsB++
		}
		if r.Outcome == ctf.Draw {
			draws++
		}
		ticks[i] = float64(r.Ticks)
		retA[i] = r.ReturnA
		retB[i] = r.ReturnB
	}
	n := float64(len(results))
	s.WinRateA = float64(winsA) / n
	s.WinRateB = float64(winsB) / n
	s.DrawRate = float64(draws) / n
	s.Ticks = describe(ticks)
	s.ReturnA = describe(retA)
	s.ReturnB = describe(retB)
	return s
}

func describe(xs []float64) Stat {
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		// Sample deviation of a single value is NaN, which json cannot encode.
		std = 0
	}
	return Stat{Mean: mean, Std: std, Min: floats.Min(xs), Max: floats.Max(xs)}
}
