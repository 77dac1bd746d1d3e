package ctf

import (
	"fmt"
	"strconv"
)

// Action is either a heading in radians or Hold.
type Action struct {
	angle float64
	hold  bool
}

// Hold leaves the agent where it is and keeps its last recorded action.
var Hold = Action{hold: true}

func Angle(rad float64) Action { return Action{angle: rad} }

func (a Action) IsHold() bool { return a.hold }

// Radians returns the heading and false for Hold.
func (a Action) Radians() (float64, bool) {
	if a.hold {
		return 0, false
	}
	return a.angle, true
}

func (a Action) String() string {
	if a.hold {
		return "hold"
	}
	return strconv.FormatFloat(a.angle, 'f', 4, 64)
}

// Angles builds a sequence of heading actions.
func Angles(rads ...float64) []Action {
	out := make([]Action, len(rads))
	for i, r := range rads {
		out[i] = Angle(r)
	}
	return out
}

// HoldAll builds a sequence of n Hold actions.
func HoldAll(n int) []Action {
	out := make([]Action, n)
	for i := range out {
		out[i] = Hold
	}
	return out
}

func checkShape(actions []Action, size int) error {
	if actions == nil {
		return nil
	}
	if len(actions) != size {
		return fmt.Errorf("got %d actions for %d slots: %w", len(actions), size, ErrActionShape)
	}
	return nil
}
