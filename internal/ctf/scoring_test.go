package ctf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRadiusIsInclusiveHardCutoff(t *testing.T) {
	flag := Vec2{0, 0}
	at := []Vec2{{5, 0}}
	beyond := []Vec2{{5 + 1e-9, 0}}

	s := Score(nil, flag, at, 5)
	assert.Equal(t, -5.0, s.Flag)
	assert.True(t, s.Captured())

	s = Score(nil, flag, beyond, 5)
	assert.Equal(t, 0.0, s.Flag)
	assert.False(t, s.Captured())
}

func TestScoreAgentOnOwnFlagIsZero(t *testing.T) {
	flag := Vec2{10, 10}
	s := Score([]Vec2{flag}, flag, []Vec2{{25, 25}}, 5)
	assert.Equal(t, 0.0, s.Flag)
	assert.False(t, s.Captured())
	require.Len(t, s.Agents, 1)
	assert.Equal(t, 0.0, s.Agents[0])
}

func TestScoreWeightsAlliesOverOpponents(t *testing.T) {
	own := []Vec2{{0, 0}, {3, 0}}
	opp := []Vec2{{0, 4}}
	s := Score(own, Vec2{20, 20}, opp, 10)

	// agent 0: 1.5*(0+3) - 4, agent 1: 1.5*(3+0) - 5
	require.Len(t, s.Agents, 2)
	assert.InDelta(t, 0.5, s.Agents[0], 1e-12)
	assert.InDelta(t, -0.5, s.Agents[1], 1e-12)
	assert.Equal(t, []int{1}, s.Doomed())
}

func TestScoreOppositeSidesAgree(t *testing.T) {
	a := []Vec2{{1, 1}, {4, 2}}
	b := []Vec2{{2, 3}, {9, 9}}
	sa := Score(a, Vec2{0, 0}, b, 4)
	sb := Score(b, Vec2{10, 10}, a, 4)

	// The cross term each side subtracts is the same set of distances.
	cross := distanceMatrix(a, b, 4)
	crossT := distanceMatrix(b, a, 4)
	for i := range a {
		for j := range b {
			assert.Equal(t, cross[i][j], crossT[j][i])
		}
	}
	assert.Len(t, sa.Agents, 2)
	assert.Len(t, sb.Agents, 2)
}

func TestScoreEmptySquad(t *testing.T) {
	s := Score(nil, Vec2{1, 1}, nil, 3)
	assert.Equal(t, 0.0, s.Flag)
	assert.Empty(t, s.Agents)
	assert.Empty(t, s.Doomed())
}
