package ctf

import "fmt"

// Rand is the random source used for placement. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Bounds is an axis-aligned rectangle.
type Bounds struct {
	Lo, Hi Vec2
}

func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.Lo.X && p.X <= b.Hi.X && p.Y >= b.Lo.Y && p.Y <= b.Hi.Y
}

func (b Bounds) sample(rng Rand) Vec2 {
	return Vec2{
		X: b.Lo.X + rng.Float64()*(b.Hi.X-b.Lo.X),
		Y: b.Lo.Y + rng.Float64()*(b.Hi.Y-b.Lo.Y),
	}
}

// Squad is a fixed-size roster plus a flag. Agent order is identity. Agents
// are only reachable through copies, so positions change through placement,
// actions and eliminations alone.
type Squad struct {
	Name   string
	agents []Agent
	flag   Vec2
	placed bool
}

func NewSquad(name string, size int) *Squad {
	sq := &Squad{Name: name, agents: make([]Agent, size)}
	for i := range sq.agents {
		sq.agents[i].Slot = i
	}
	return sq
}

func (s *Squad) Size() int  { return len(s.agents) }
func (s *Squad) Flag() Vec2 { return s.flag }

// PlaceRandom draws every agent and the flag uniformly inside b and reactivates
// all agents. Agents are drawn in slot order, x before y, then the flag.
func (s *Squad) PlaceRandom(b Bounds, rng Rand) {
	for i := range s.agents {
		a := &s.agents[i]
		a.SetPosition(b.sample(rng))
		a.lastAction = 0
		a.Reactivate()
	}
	s.flag = b.sample(rng)
	s.placed = true
}

// Place puts the flag and one agent per slot at fixed spots and reactivates
// the whole roster.
func (s *Squad) Place(flag Vec2, agents ...Vec2) error {
	if len(agents) != len(s.agents) {
		return fmt.Errorf("squad %s: %d positions for %d slots", s.Name, len(agents), len(s.agents))
	}
	if !flag.IsFinite() {
		return fmt.Errorf("squad %s: flag at (%v, %v): %w", s.Name, flag.X, flag.Y, ErrInvariant)
	}
	for i, p := range agents {
		if !p.IsFinite() {
			return fmt.Errorf("squad %s: slot %d at (%v, %v): %w", s.Name, i, p.X, p.Y, ErrInvariant)
		}
	}
	for i, p := range agents {
		a := &s.agents[i]
		a.SetPosition(p)
		a.lastAction = 0
		a.Reactivate()
	}
	s.flag = flag
	s.placed = true
	return nil
}

// ApplyActions moves each active agent by its action. A nil sequence holds the
// whole squad. The returned slice has one position per slot.
func (s *Squad) ApplyActions(actions []Action, board Vec2) ([]Vec2, error) {
	if !s.placed {
		return nil, fmt.Errorf("squad %s: %w", s.Name, ErrNotInitialized)
	}
	if err := checkShape(actions, len(s.agents)); err != nil {
		return nil, fmt.Errorf("squad %s: %w", s.Name, err)
	}
	for i := range actions {
		a := &s.agents[i]
		rad, ok := actions[i].Radians()
		if !ok || !a.Active() {
			continue
		}
		if err := a.Move(rad, board); err != nil {
			return nil, fmt.Errorf("squad %s: %w", s.Name, err)
		}
	}
	return s.positions(), nil
}

// Agents returns a copy of the roster in slot order.
func (s *Squad) Agents() ([]Agent, error) {
	if !s.placed {
		return nil, ErrNotInitialized
	}
	return append([]Agent(nil), s.agents...), nil
}

// Positions returns every slot's position; inactive slots report the origin.
func (s *Squad) Positions() ([]Vec2, error) {
	if !s.placed {
		return nil, ErrNotInitialized
	}
	return s.positions(), nil
}

// AllPositions is Positions with the flag appended, length Size()+1.
func (s *Squad) AllPositions() ([]Vec2, error) {
	if !s.placed {
		return nil, ErrNotInitialized
	}
	return s.allPositions(), nil
}

func (s *Squad) ActivePositions() ([]Vec2, error) {
	if !s.placed {
		return nil, ErrNotInitialized
	}
	return s.activePositions(), nil
}

func (s *Squad) ActiveAgentIndices() ([]int, error) {
	if !s.placed {
		return nil, ErrNotInitialized
	}
	return s.activeAgentIndices(), nil
}

// LastActions reports each slot's last heading, 0 for inactive slots.
func (s *Squad) LastActions() ([]float64, error) {
	if !s.placed {
		return nil, ErrNotInitialized
	}
	return s.lastActions(), nil
}

func (s *Squad) ActiveCount() int {
	n := 0
	for i := range s.agents {
		if s.agents[i].Active() {
			n++
		}
	}
	return n
}

// Eliminate deactivates the given roster slots. Order and duplicates do not matter.
func (s *Squad) Eliminate(slots []int) {
	for _, i := range slots {
		if i >= 0 && i < len(s.agents) {
			s.agents[i].Eliminate()
		}
	}
}

func (s *Squad) positions() []Vec2 {
	out := make([]Vec2, len(s.agents))
	for i := range s.agents {
		out[i] = s.agents[i].Position()
	}
	return out
}

func (s *Squad) allPositions() []Vec2 {
	return append(s.positions(), s.flag)
}

func (s *Squad) activePositions() []Vec2 {
	out := make([]Vec2, 0, len(s.agents))
	for i := range s.agents {
		if s.agents[i].Active() {
			out = append(out, s.agents[i].Position())
		}
	}
	return out
}

func (s *Squad) activeAgentIndices() []int {
	out := make([]int, 0, len(s.agents))
	for i := range s.agents {
		if s.agents[i].Active() {
			out = append(out, i)
		}
	}
	return out
}

func (s *Squad) lastActions() []float64 {
	out := make([]float64, len(s.agents))
	for i := range s.agents {
		out[i] = s.agents[i].LastAction()
	}
	return out
}
