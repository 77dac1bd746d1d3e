package ctf

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var board30 = Vec2{30, 30}

func TestAgentMoveUnitStep(t *testing.T) {
	a := &Agent{}
	a.SetPosition(Vec2{10, 10})
	a.Reactivate()

	require.NoError(t, a.Move(0, board30))
	assert.InDelta(t, 11, a.Position().X, 1e-12)
	assert.InDelta(t, 10, a.Position().Y, 1e-12)
	assert.Zero(t, a.LastAction())

	require.NoError(t, a.Move(math.Pi/2, board30))
	assert.InDelta(t, 11, a.Position().X, 1e-12)
	assert.InDelta(t, 11, a.Position().Y, 1e-12)
	assert.Equal(t, math.Pi/2, a.LastAction())
}

func TestAgentMoveClampsAfterMoving(t *testing.T) {
	a := &Agent{}
	a.SetPosition(Vec2{29.5, 0.2})
	a.Reactivate()

	// Heading down-right: both components would leave the board.
	require.NoError(t, a.Move(7*math.Pi/4, board30))
	assert.Equal(t, 30.0, a.Position().X)
	assert.Equal(t, 0.0, a.Position().Y)
}

func TestInactiveAgentIgnoresMove(t *testing.T) {
	a := &Agent{}
	a.SetPosition(Vec2{5, 5})
	a.Reactivate()
	require.NoError(t, a.Move(1, board30))
	a.Eliminate()

	require.NoError(t, a.Move(2, board30))
	assert.False(t, a.Active())
	assert.Equal(t, Vec2{}, a.Position())
	assert.Zero(t, a.LastAction())
}

func TestAgentMoveNaNIsInvariantViolation(t *testing.T) {
	a := &Agent{}
	a.SetPosition(Vec2{5, 5})
	a.Reactivate()

	err := a.Move(math.NaN(), board30)
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
	assert.Equal(t, Vec2{5, 5}, a.Position())
}
