package runner

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctfsim/internal/config"
	"ctfsim/internal/ctf"
	"ctfsim/internal/policy"
	"ctfsim/internal/util"
)

func runOnce(t *testing.T, cfg *config.MatchConfig, seed int64, record bool) EpisodeResult {
	t.Helper()
	rng := util.New(seed)
	m, err := ctf.NewMatch(cfg, ctf.WithRand(rng))
	require.NoError(t, err)
	res, err := RunEpisode(m, policy.Random{Rng: rng}, policy.Seek{}, Options{Seed: seed, Record: record})
	require.NoError(t, err)
	return res
}

func TestRunEpisodeIsDeterministic(t *testing.T) {
	cfg := config.Default().Match
	a := runOnce(t, &cfg, 11, false)
	b := runOnce(t, &cfg, 11, false)
	c := runOnce(t, &cfg, 12, false)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, a.Ticks, b.Ticks)
	assert.Equal(t, a.ReturnA, b.ReturnA)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
	assert.NotEqual(t, a.ID, b.ID)
	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err)
}

func TestRunEpisodeEndsAndRecords(t *testing.T) {
	cfg := config.Default().Match
	res := runOnce(t, &cfg, 3, true)

	assert.NotEqual(t, ctf.InProgress, res.Outcome)
	assert.LessOrEqual(t, res.Ticks, cfg.Horizon)
	require.NotEmpty(t, res.Events)
	assert.Equal(t, ctf.EventReset, res.Events[0].Type)
	assert.Equal(t, "random", res.Meta.PolicyA)
	assert.Equal(t, "seek", res.Meta.PolicyB)
	assert.Equal(t, [2]float64{30, 30}, res.Meta.Board)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(MarshalPretty(res), &decoded))
	assert.Equal(t, res.Outcome.String(), decoded["outcome"])
	assert.Equal(t, res.Winner.String(), decoded["winner"])
}

func TestRunEpisodeTimeoutReturnsSumStepPenalties(t *testing.T) {
	cfg := config.Default().Match
	// Squads far apart with a tiny radius never interact.
	cfg.InteractionRadius = 0.01
	cfg.Horizon = 25
	rng := util.New(1)
	m, err := ctf.NewMatch(&cfg, ctf.WithRand(rng))
	require.NoError(t, err)

	res, err := RunEpisode(m, policy.Stationary{}, policy.Stationary{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, ctf.Timeout, res.Outcome)
	assert.Equal(t, ctf.WinnerTimeout, res.Winner)
	assert.Equal(t, 25, res.Ticks)
	assert.InDelta(t, 25*ctf.StepPenalty, res.ReturnA, 1e-9)
	assert.InDelta(t, 25*ctf.StepPenalty, res.ReturnB, 1e-9)
	assert.Equal(t, 3, res.ActiveA)
	assert.Nil(t, res.Events)
}

func TestRunBatchIndependentOfWorkers(t *testing.T) {
	cfg := config.Default().Match
	opts := BatchOptions{Episodes: 12, Workers: 1, Seed: 77, PolicyA: "random", PolicyB: "guard"}
	sum1, res1, err := RunBatch(context.Background(), &cfg, opts)
	require.NoError(t, err)

	opts.Workers = 4
	sum4, res4, err := RunBatch(context.Background(), &cfg, opts)
	require.NoError(t, err)

	require.Len(t, res1, 12)
	require.Len(t, res4, 12)
	for i := range res1 {
		assert.Equal(t, res1[i].Fingerprint, res4[i].Fingerprint, "episode %d", i)
		assert.Equal(t, util.EpisodeSeed(77, i), res1[i].Seed)
	}
	assert.Equal(t, sum1, sum4)
	assert.Equal(t, 12, sum1.Runs)
}

func TestRunBatchRejectsBadInput(t *testing.T) {
	cfg := config.Default().Match
	_, _, err := RunBatch(context.Background(), &cfg, BatchOptions{Episodes: 2, PolicyA: "learned"})
	assert.Error(t, err)

	_, _, err = RunBatch(context.Background(), &cfg, BatchOptions{Episodes: 0})
	assert.Error(t, err)

	bad := cfg
	bad.Horizon = 0
	_, _, err = RunBatch(context.Background(), &bad, BatchOptions{Episodes: 2})
	assert.ErrorIs(t, err, ctf.ErrInvalidConfiguration)
}

func TestRunBatchHonoursCancel(t *testing.T) {
	cfg := config.Default().Match
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := RunBatch(ctx, &cfg, BatchOptions{Episodes: 5, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	results := []EpisodeResult{
		{Outcome: ctf.Captured, Winner: ctf.WinnerA, Ticks: 10, ReturnA: 9, ReturnB: -11},
		{Outcome: ctf.Captured, Winner: ctf.WinnerB, Ticks: 20, ReturnA: -11, ReturnB: 9},
		{Outcome: ctf.Draw, Winner: ctf.WinnerNone, Ticks: 30, ReturnA: -21, ReturnB: -21},
		{Outcome: ctf.Timeout, Winner: ctf.WinnerTimeout, Ticks: 40, ReturnA: -4, ReturnB: -4},
	}
	s := Summarize(results)

	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, map[string]int{"captured": 2, "draw": 1, "timeout": 1}, s.Outcomes)
	assert.Equal(t, 0.25, s.WinRateA)
	assert.Equal(t, 0.25, s.WinRateB)
	assert.Equal(t, 0.25, s.DrawRate)
	assert.InDelta(t, 25, s.Ticks.Mean, 1e-12)
	assert.InDelta(t, 12.909944487, s.Ticks.Std, 1e-6)
	assert.Equal(t, 10.0, s.Ticks.Min)
	assert.Equal(t, 40.0, s.Ticks.Max)
	assert.Equal(t, -21.0, s.ReturnA.Min)

	one := Summarize(results[:1])
	assert.Zero(t, one.Ticks.Std)
	_, err := json.Marshal(one)
	assert.NoError(t, err)

	assert.Equal(t, 0, Summarize(nil).Runs)
}
