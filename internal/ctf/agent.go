package ctf

import "fmt"

// Agent is one roster slot. Slots are never removed; an eliminated agent stays
// in place with Active=false and its position pinned to the origin.
type Agent struct {
	Slot       int
	pos        Vec2
	active     bool
	lastAction float64
}

func (a *Agent) SetPosition(p Vec2) { a.pos = p }
func (a *Agent) Position() Vec2     { return a.pos }
func (a *Agent) Active() bool       { return a.active }

// LastAction is the heading applied on the agent's latest move, 0 when inactive.
func (a *Agent) LastAction() float64 {
	if !a.active {
		return 0
	}
	return a.lastAction
}

// Move advances an active agent one board unit along rad and clamps the result
// into [0, board.X] x [0, board.Y]. Inactive agents are left untouched.
func (a *Agent) Move(rad float64, board Vec2) error {
	if !a.active {
		return nil
	}
	a.lastAction = rad
	next := a.pos.Add(Heading(rad)).Clamp(Vec2{}, board)
	if !next.IsFinite() {
		return fmt.Errorf("agent %d moved to (%v, %v) with action %v: %w", a.Slot, next.X, next.Y, rad, ErrInvariant)
	}
	a.pos = next
	return nil
}

func (a *Agent) Eliminate() {
	a.active = false
	a.pos = Vec2{}
	a.lastAction = 0
}

func (a *Agent) Reactivate() { a.active = true }
