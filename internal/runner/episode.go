package runner

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ctfsim/internal/ctf"
	"ctfsim/internal/policy"
)

type EpisodeResult struct {
	ID          string      `json:"id"`
	Seed        int64       `json:"seed"`
	Ticks       int         `json:"ticks"`
	Outcome     ctf.Outcome `json:"outcome"`
	Winner      ctf.Winner  `json:"winner"`
	ReturnA     float64     `json:"return_a"`
	ReturnB     float64     `json:"return_b"`
	ActiveA     int         `json:"active_a"`
	ActiveB     int         `json:"active_b"`
	Fingerprint string      `json:"fingerprint"`
	Events      []ctf.Event `json:"events,omitempty"`
	Meta        EpisodeMeta `json:"meta"`
}

type EpisodeMeta struct {
	PolicyA    string     `json:"policy_a"`
	PolicyB    string     `json:"policy_b"`
	RosterSize int        `json:"roster_size"`
	Board      [2]float64 `json:"board"`
	Radius     float64    `json:"interaction_radius"`
	Horizon    int        `json:"horizon"`
}

type Options struct {
	Seed   int64
	Record bool
	Logger *zap.Logger
}

// RunEpisode resets m and steps it with pa and pb until the episode ends.
// Returns are the per-tick rewards summed over the episode.
func RunEpisode(m *ctf.Match, pa, pb policy.Policy, opts Options) (EpisodeResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var events []ctf.Event
	m.SetEmit(func(ev ctf.Event) {
		if opts.Record {
			events = append(events, ev)
		}
		if ce := logger.Check(zap.DebugLevel, "match event"); ce != nil {
			ce.Write(zap.Int("tick", ev.T), zap.String("type", ev.Type), zap.Any("payload", ev.Payload))
		}
	})
	defer m.SetEmit(nil)

	board := m.Board()
	res := EpisodeResult{
		ID:   uuid.NewString(),
		Seed: opts.Seed,
		Meta: EpisodeMeta{
			PolicyA:    pa.Name(),
			PolicyB:    pb.Name(),
			RosterSize: m.SquadA().Size(),
			Board:      [2]float64{board.X, board.Y},
			Radius:     m.Radius(),
			Horizon:    m.Horizon(),
		},
	}

	fp := newFingerprint()
	posA, posB := m.Reset()
	fp.positions(posA)
	fp.positions(posB)

	for !m.Done() {
		a := pa.Actions(m.SquadA(), m.SquadB())
		b := pb.Actions(m.SquadB(), m.SquadA())
		step, err := m.Step(a, b)
		if err != nil {
			return res, fmt.Errorf("episode %s tick %d: %w", res.ID, m.Tick(), err)
		}
		res.ReturnA += step.RewardA
		res.ReturnB += step.RewardB
		fp.step(step)
	}

	res.Ticks = m.Tick()
	res.Outcome = m.Outcome()
	res.Winner = m.Winner()
	res.ActiveA = m.SquadA().ActiveCount()
	res.ActiveB = m.SquadB().ActiveCount()
	res.Fingerprint = fp.sum()
	if opts.Record {
		res.Events = events
	}

	logger.Info("episode finished",
		zap.String("id", res.ID),
		zap.Int64("seed", res.Seed),
		zap.Int("ticks", res.Ticks),
		zap.Stringer("outcome", res.Outcome),
		zap.Stringer("winner", res.Winner),
		zap.Float64("return_a", res.ReturnA),
		zap.Float64("return_b", res.ReturnB),
	)
	return res, nil
}

// fingerprint hashes the exact bits of a trajectory so two runs can be
// compared without keeping either one around.
type fingerprint struct {
	d   *xxhash.Digest
	buf []byte
}

func newFingerprint() *fingerprint {
	return &fingerprint{d: xxhash.New(), buf: make([]byte, 0, 256)}
}

func (f *fingerprint) float(v float64) {
	f.buf = binary.LittleEndian.AppendUint64(f.buf, math.Float64bits(v))
}

func (f *fingerprint) positions(ps []ctf.Vec2) {
	for _, p := range ps {
		f.float(p.X)
		f.float(p.Y)
	}
	f.flush()
}

func (f *fingerprint) step(s ctf.StepResult) {
	f.positions(s.PositionsA)
	f.positions(s.PositionsB)
	for _, a := range s.ActionsA {
		f.float(a)
	}
	for _, a := range s.ActionsB {
		f.float(a)
	}
	f.float(s.RewardA)
	f.float(s.RewardB)
	f.flush()
}

func (f *fingerprint) flush() {
	_, _ = f.d.Write(f.buf)
	f.buf = f.buf[:0]
}

func (f *fingerprint) sum() string { return fmt.Sprintf("%016x", f.d.Sum64()) }
