package ctf

import (
	"fmt"

	"ctfsim/internal/config"
	"ctfsim/internal/util"
)

const (
	StepPenalty     = -0.1
	CaptureBonus    = 10.0
	DrawPenalty     = 20.0
	EliminateReward = 3.0
)

type Winner int

const (
	WinnerNone Winner = iota
	WinnerA
	WinnerB
	WinnerTimeout
)

func (w Winner) String() string {
	switch w {
	case WinnerA:
		return "A"
	case WinnerB:
		return "B"
	case WinnerTimeout:
		return "timeout"
	default:
		return "none"
	}
}

func (w Winner) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// Outcome says how (or whether) an episode ended.
type Outcome int

const (
	InProgress Outcome = iota
	Captured
	Draw
	Eliminated
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Captured:
		return "captured"
	case Draw:
		return "draw"
	case Eliminated:
		return "eliminated"
	case Timeout:
		return "timeout"
	default:
		return "in_progress"
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// StepResult is what a single tick reports back to the driver. Rewards are the
// tick's delta, not a running total.
type StepResult struct {
	Done       bool
	PositionsA []Vec2
	PositionsB []Vec2
	ActionsA   []float64
	ActionsB   []float64
	RewardA    float64
	RewardB    float64
}

type Option func(*Match)

// WithRand sets the random source used by Reset.
func WithRand(r Rand) Option {
	return func(m *Match) { m.rng = r }
}

// WithEmit receives trace events.
func WithEmit(emit func(Event)) Option {
	return func(m *Match) { m.emit = emit }
}

// Match owns both squads and advances them one tick at a time. It is not safe
// for concurrent use.
type Match struct {
	a, b    *Squad
	board   Vec2
	spawnA  Bounds
	spawnB  Bounds
	radius  float64
	horizon int

	rng  Rand
	emit func(Event)

	ready   bool
	tick    int
	rewardA float64
	rewardB float64
	done    bool
	draw    bool
	winner  Winner
	outcome Outcome
	last    StepResult
}

func NewMatch(cfg *config.MatchConfig, opts ...Option) (*Match, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil match config: %w", ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	m := &Match{
		a:       NewSquad("A", cfg.RosterSize),
		b:       NewSquad("B", cfg.RosterSize),
		board:   vec(cfg.Board),
		spawnA:  bounds(cfg.SpawnA),
		spawnB:  bounds(cfg.SpawnB),
		radius:  cfg.InteractionRadius,
		horizon: cfg.Horizon,
		emit:    func(Event) {},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = util.New(0)
	}
	return m, nil
}

// SetEmit replaces the trace callback; nil discards events.
func (m *Match) SetEmit(emit func(Event)) {
	if emit == nil {
		emit = func(Event) {}
	}
	m.emit = emit
}

func vec(v config.Vec2Def) Vec2 { return Vec2{X: v.X, Y: v.Y} }

func bounds(b config.BoundsDef) Bounds { return Bounds{Lo: vec(b.Lo), Hi: vec(b.Hi)} }

func (m *Match) SquadA() *Squad          { return m.a }
func (m *Match) SquadB() *Squad          { return m.b }
func (m *Match) Board() Vec2             { return m.board }
func (m *Match) Radius() float64         { return m.radius }
func (m *Match) Horizon() int            { return m.horizon }
func (m *Match) Tick() int               { return m.tick }
func (m *Match) Ready() bool             { return m.ready }
func (m *Match) Done() bool              { return m.done }
func (m *Match) Draw() bool              { return m.draw }
func (m *Match) Winner() Winner          { return m.winner }
func (m *Match) Outcome() Outcome        { return m.outcome }
func (m *Match) Rewards() (a, b float64) { return m.rewardA, m.rewardB }

// Reset starts a new episode: clock, rewards and terminal flags are cleared and
// both squads are scattered over their spawn regions, A first.
func (m *Match) Reset() (positionsA, positionsB []Vec2) {
	m.tick = 0
	m.rewardA, m.rewardB = 0, 0
	m.done, m.draw = false, false
	m.winner = WinnerNone
	m.outcome = InProgress

	m.a.PlaceRandom(m.spawnA, m.rng)
	m.b.PlaceRandom(m.spawnB, m.rng)
	m.ready = true
	m.last = m.snapshot()

	m.emit(Event{T: 0, Type: EventReset, Payload: map[string]any{
		"a": points(m.a.allPositions()), "b": points(m.b.allPositions()),
	}})
	return m.last.PositionsA, m.last.PositionsB
}

// Positions returns the current per-slot positions of both squads.
func (m *Match) Positions() (positionsA, positionsB []Vec2, err error) {
	if !m.ready {
		return nil, nil, ErrNotInitialized
	}
	return m.a.positions(), m.b.positions(), nil
}

// LastActions returns the per-slot headings last applied by both squads.
func (m *Match) LastActions() (actionsA, actionsB []float64, err error) {
	if !m.ready {
		return nil, nil, ErrNotInitialized
	}
	return m.a.lastActions(), m.b.lastActions(), nil
}

// Step advances one tick: move, score, resolve capture or eliminations, then
// advance the clock. Once the episode is over Step keeps returning the terminal
// snapshot without touching state.
func (m *Match) Step(actionsA, actionsB []Action) (StepResult, error) {
	if !m.ready {
		return StepResult{}, ErrNotInitialized
	}
	if m.done || m.tick >= m.horizon {
		m.done = true
		res := m.last
		res.Done = true
		return res, nil
	}
	if err := checkShape(actionsA, m.a.Size()); err != nil {
		return StepResult{}, fmt.Errorf("squad A: %w", err)
	}
	if err := checkShape(actionsB, m.b.Size()); err != nil {
		return StepResult{}, fmt.Errorf("squad B: %w", err)
	}

	m.rewardA, m.rewardB = StepPenalty, StepPenalty

	if err := m.move(actionsA, actionsB); err != nil {
		// Positions can no longer be trusted; force a Reset.
		m.ready = false
		return StepResult{}, err
	}

	if m.a.ActiveCount() == 0 && m.b.ActiveCount() == 0 {
		m.finish(Eliminated, WinnerNone)
		m.emit(Event{T: m.tick, Type: EventAllEliminated})
		return m.record(), nil
	}

	idxA, idxB := m.a.activeAgentIndices(), m.b.activeAgentIndices()
	posA, posB := m.a.activePositions(), m.b.activePositions()
	scoreA := Score(posA, m.a.Flag(), posB, m.radius)
	scoreB := Score(posB, m.b.Flag(), posA, m.radius)
	m.emit(Event{T: m.tick, Type: EventScore, Payload: map[string]any{
		"flag_a": scoreA.Flag, "flag_b": scoreB.Flag,
		"agents_a": scoreA.Agents, "agents_b": scoreB.Agents,
	}})

	if m.resolveCapture(scoreA.Captured(), scoreB.Captured()) {
		return m.record(), nil
	}

	doomedA := slots(idxA, scoreA.Doomed())
	doomedB := slots(idxB, scoreB.Doomed())
	kA, kB := float64(len(doomedA)), float64(len(doomedB))
	m.rewardA += EliminateReward*kB - EliminateReward*kA
	m.rewardB += EliminateReward*kA - EliminateReward*kB
	m.a.Eliminate(doomedA)
	m.b.Eliminate(doomedB)
	if len(doomedA)+len(doomedB) > 0 {
		m.emit(Event{T: m.tick, Type: EventEliminate, Payload: map[string]any{
			"a": doomedA, "b": doomedB,
		}})
	}

	m.tick++
	if m.tick >= m.horizon {
		m.finish(Timeout, WinnerTimeout)
		m.emit(Event{T: m.tick, Type: EventTimeout})
	}
	return m.record(), nil
}

func (m *Match) move(actionsA, actionsB []Action) error {
	posA, err := m.a.ApplyActions(actionsA, m.board)
	if err != nil {
		return err
	}
	posB, err := m.b.ApplyActions(actionsB, m.board)
	if err != nil {
		return err
	}
	m.emit(Event{T: m.tick, Type: EventMove, Payload: map[string]any{
		"a": points(posA), "b": points(posB),
	}})
	return nil
}

// resolveCapture applies terminal rewards and reports whether the episode ended.
func (m *Match) resolveCapture(capturedA, capturedB bool) bool {
	switch {
	case capturedA && capturedB:
		m.rewardA -= DrawPenalty
		m.rewardB -= DrawPenalty
		m.draw = true
		m.finish(Draw, WinnerNone)
	case capturedA:
		m.rewardB += CaptureBonus
		m.rewardA -= CaptureBonus
		m.finish(Captured, WinnerB)
	case capturedB:
		m.rewardA += CaptureBonus
		m.rewardB -= CaptureBonus
		m.finish(Captured, WinnerA)
	default:
		return false
	}
	m.emit(Event{T: m.tick, Type: EventCapture, Payload: map[string]any{
		"captured_a": capturedA, "captured_b": capturedB, "winner": m.winner.String(),
	}})
	return true
}

func (m *Match) finish(o Outcome, w Winner) {
	m.done = true
	m.outcome = o
	m.winner = w
}

func (m *Match) record() StepResult {
	m.last = m.snapshot()
	return m.last
}

func (m *Match) snapshot() StepResult {
	return StepResult{
		Done:       m.done,
		PositionsA: m.a.positions(),
		PositionsB: m.b.positions(),
		ActionsA:   m.a.lastActions(),
		ActionsB:   m.b.lastActions(),
		RewardA:    m.rewardA,
		RewardB:    m.rewardB,
	}
}

// slots maps indexes into the active subset back to roster slots.
func slots(active []int, picked []int) []int {
	out := make([]int, 0, len(picked))
	for _, i := range picked {
		out = append(out, active[i])
	}
	return out
}

func points(ps []Vec2) [][2]float64 {
	out := make([][2]float64, len(ps))
	for i, p := range ps {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
