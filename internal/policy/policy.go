package policy

import (
	"fmt"
	"math"
	"strings"

	"ctfsim/internal/ctf"
)

// Policy picks one tick of actions for its own squad.
type Policy interface {
	Name() string
	Actions(own, opp *ctf.Squad) []ctf.Action
}

// Stationary never moves. It returns the nil sequence, which a squad treats as
// holding every slot.
type Stationary struct{}

func (Stationary) Name() string                         { return "stationary" }
func (Stationary) Actions(_, _ *ctf.Squad) []ctf.Action { return nil }

// Random draws a uniform heading in [0, 2π) for every slot.
type Random struct {
	Rng ctf.Rand
}

func (Random) Name() string { return "random" }

func (r Random) Actions(own, _ *ctf.Squad) []ctf.Action {
	out := make([]ctf.Action, own.Size())
	for i := range out {
		out[i] = ctf.Angle(r.Rng.Float64() * 2 * math.Pi)
	}
	return out
}

// Seek sends every active agent straight at the opponent's flag.
type Seek struct{}

func (Seek) Name() string { return "seek" }

func (Seek) Actions(own, opp *ctf.Squad) []ctf.Action {
	return steer(own, opp.Flag())
}

// Guard pulls every active agent back onto its own flag.
type Guard struct{}

func (Guard) Name() string { return "guard" }

func (Guard) Actions(own, _ *ctf.Squad) []ctf.Action {
	return steer(own, own.Flag())
}

// steer heads each active agent at target and holds agents already within one
// step of it.
func steer(own *ctf.Squad, target ctf.Vec2) []ctf.Action {
	out := ctf.HoldAll(own.Size())
	agents, err := own.Agents()
	if err != nil {
		return out
	}
	for i, a := range agents {
		if !a.Active() {
			continue
		}
		d := target.Sub(a.Position())
		if d.Len() < 1 {
			continue
		}
		out[i] = ctf.Angle(d.Angle())
	}
	return out
}

// Names lists the policies ByName understands.
var Names = []string{"stationary", "random", "seek", "guard"}

func ByName(name string, rng ctf.Rand) (Policy, error) {
	switch strings.ToLower(name) {
	case "stationary", "":
		return Stationary{}, nil
	case "random":
		if rng == nil {
			return nil, fmt.Errorf("policy random needs a random source")
		}
		return Random{Rng: rng}, nil
	case "seek":
		return Seek{}, nil
	case "guard":
		return Guard{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q (want one of %s)", name, strings.Join(Names, ", "))
	}
}

// Rescale maps a normalized control in [-1, 1] onto a heading in [0, 2π).
// Inputs outside the range are clamped first.
func Rescale(u float64) float64 {
	u = math.Max(-1, math.Min(1, u))
	rad := (u + 1) * math.Pi
	if rad >= 2*math.Pi {
		rad = 0
	}
	return rad
}

// RescaleAll applies Rescale to a whole control vector.
func RescaleAll(us []float64) []ctf.Action {
	out := make([]ctf.Action, len(us))
	for i, u := range us {
		out[i] = ctf.Angle(Rescale(u))
	}
	return out
}
