package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ctfsim/internal/config"
	"ctfsim/internal/ctf"
	"ctfsim/internal/log"
	"ctfsim/internal/policy"
	"ctfsim/internal/runner"
	"ctfsim/internal/util"
)

func main() {
	var cfgDir, out, level, policyA, policyB string
	var seed int64
	var n, workers int
	var saveLog bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir containing "+config.FileName)
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&level, "level", "", "log level: debug, info, warn, error")
	flag.StringVar(&policyA, "policy-a", "", "policy for squad A")
	flag.StringVar(&policyB, "policy-b", "", "policy for squad B")
	flag.Int64Var(&seed, "seed", 0, "seed (0 keeps the config value)")
	flag.IntVar(&n, "n", 0, "number of episodes (0 keeps the config value)")
	flag.IntVar(&workers, "workers", 0, "batch workers (0 keeps the config value)")
	flag.BoolVar(&saveLog, "log", true, "save the full event trace when n==1")
	flag.Parse()

	cfg, err := config.Load(cfgDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	run := cfg.Run
	if level != "" {
		run.LogLevel = level
	}
	if policyA != "" {
		run.PolicyA = policyA
	}
	if policyB != "" {
		run.PolicyB = policyB
	}
	if seed != 0 {
		run.Seed = seed
	}
	if n > 0 {
		run.Episodes = n
	}
	if workers > 0 {
		run.Workers = workers
	}

	lvl, err := log.ParseLevel(run.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := log.New(lvl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("config", cfgDir),
		zap.Int("episodes", run.Episodes),
		zap.Int64("seed", run.Seed),
		zap.String("policy_a", run.PolicyA),
		zap.String("policy_b", run.PolicyB),
	)

	if run.Episodes <= 1 {
		res, err := single(&cfg.Match, run, saveLog, logger)
		if err != nil {
			logger.Fatal("episode failed", zap.Error(err))
		}
		if err := os.WriteFile(out, runner.MarshalPretty(res), 0644); err != nil {
			logger.Fatal("write result", zap.String("out", out), zap.Error(err))
		}
		fmt.Println(episodeLine(res, out))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	summary, _, err := runner.RunBatch(ctx, &cfg.Match, runner.BatchOptions{
		Episodes: run.Episodes,
		Workers:  run.Workers,
		Seed:     run.Seed,
		PolicyA:  run.PolicyA,
		PolicyB:  run.PolicyB,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("batch failed", zap.Error(err))
	}
	if err := os.WriteFile(out, runner.MarshalPretty(summary), 0644); err != nil {
		logger.Fatal("write summary", zap.String("out", out), zap.Error(err))
	}
	fmt.Println(batchLine(summary, out))
}

func episodeLine(res runner.EpisodeResult, out string) string {
	return fmt.Sprintf("Single episode finished. Outcome=%s, Winner=%s, T=%d, Return A=%.1f B=%.1f -> %s",
		res.Outcome, res.Winner, res.Ticks, res.ReturnA, res.ReturnB, out)
}

func batchLine(s runner.Summary, out string) string {
	return fmt.Sprintf("Batch %d done (A wins %.0f%%, B wins %.0f%%) -> %s",
		s.Runs, s.WinRateA*100, s.WinRateB*100, out)
}

func single(cfg *config.MatchConfig, run config.RunConfig, record bool, logger *zap.Logger) (runner.EpisodeResult, error) {
	rng := util.New(run.Seed)
	m, err := ctf.NewMatch(cfg, ctf.WithRand(rng))
	if err != nil {
		return runner.EpisodeResult{}, err
	}
	pa, err := policy.ByName(run.PolicyA, rng)
	if err != nil {
		return runner.EpisodeResult{}, err
	}
	pb, err := policy.ByName(run.PolicyB, rng)
	if err != nil {
		return runner.EpisodeResult{}, err
	}
	return runner.RunEpisode(m, pa, pb, runner.Options{Seed: run.Seed, Record: record, Logger: logger})
}
