package config

import (
	"fmt"
	"math"
)

type MatchConfig struct {
	RosterSize        int       `yaml:"roster_size"`
	Board             Vec2Def   `yaml:"board"`
	SpawnA            BoundsDef `yaml:"spawn_a"`
	SpawnB            BoundsDef `yaml:"spawn_b"`
	InteractionRadius float64   `yaml:"interaction_radius"`
	Horizon           int       `yaml:"horizon"`
}

type Vec2Def struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type BoundsDef struct {
	Lo Vec2Def `yaml:"lo"`
	Hi Vec2Def `yaml:"hi"`
}

// Validate reports the first setting the engine cannot run with.
func (mc *MatchConfig) Validate() error {
	if mc.RosterSize < 1 {
		return fmt.Errorf("roster_size must be at least 1, got %d", mc.RosterSize)
	}
	if !mc.Board.positive() {
		return fmt.Errorf("board must be positive, got (%v, %v)", mc.Board.X, mc.Board.Y)
	}
	if !(mc.InteractionRadius > 0) || math.IsInf(mc.InteractionRadius, 0) {
		return fmt.Errorf("interaction_radius must be positive, got %v", mc.InteractionRadius)
	}
	if mc.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", mc.Horizon)
	}
	if err := mc.SpawnA.validate(mc.Board); err != nil {
		return fmt.Errorf("spawn_a: %w", err)
	}
	if err := mc.SpawnB.validate(mc.Board); err != nil {
		return fmt.Errorf("spawn_b: %w", err)
	}
	return nil
}

func (b BoundsDef) validate(board Vec2Def) error {
	if !b.Lo.finite() || !b.Hi.finite() {
		return fmt.Errorf("(%v, %v)-(%v, %v) is not finite", b.Lo.X, b.Lo.Y, b.Hi.X, b.Hi.Y)
	}
	if b.Lo.X > b.Hi.X || b.Lo.Y > b.Hi.Y {
		return fmt.Errorf("lo (%v, %v) exceeds hi (%v, %v)", b.Lo.X, b.Lo.Y, b.Hi.X, b.Hi.Y)
	}
	if b.Lo.X < 0 || b.Lo.Y < 0 || b.Hi.X > board.X || b.Hi.Y > board.Y {
		return fmt.Errorf("(%v, %v)-(%v, %v) lies outside the board", b.Lo.X, b.Lo.Y, b.Hi.X, b.Hi.Y)
	}
	return nil
}

func (v Vec2Def) finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// positive rejects NaN along with zero and negative sizes.
func (v Vec2Def) positive() bool {
	return v.finite() && v.X > 0 && v.Y > 0
}
