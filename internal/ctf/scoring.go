package ctf

// AllyWeight scales distances to teammates (and to the own flag) against the
// unit weight of opponent distances.
const AllyWeight = 1.5

// Scores is one squad's interaction result for a tick. Agents is parallel to
// the active positions that were scored.
type Scores struct {
	Flag   float64
	Agents []float64
}

// Captured reports whether the flag score went negative.
func (s Scores) Captured() bool { return s.Flag < 0 }

// Doomed returns the indexes (into the scored positions) of agents with a
// negative score.
func (s Scores) Doomed() []int {
	var out []int
	for i, v := range s.Agents {
		if v < 0 {
			out = append(out, i)
		}
	}
	return out
}

// distanceMatrix returns d[i][j] = |a[i]-b[j]| when within radius, else 0.
// The cutoff is inclusive.
func distanceMatrix(a, b []Vec2, radius float64) [][]float64 {
	d := make([][]float64, len(a))
	for i := range a {
		row := make([]float64, len(b))
		for j := range b {
			dist := a[i].Dist(b[j])
			if dist <= radius {
				row[j] = dist
			}
		}
		d[i] = row
	}
	return d
}

func rowSum(row []float64) float64 {
	s := 0.0
	for _, v := range row {
		s += v
	}
	return s
}

// Score computes flag and per-agent scores for the squad owning own/ownFlag
// against the opponent's active positions. Every own agent is paired with every
// own agent, itself included.
func Score(own []Vec2, ownFlag Vec2, opp []Vec2, radius float64) Scores {
	flag := []Vec2{ownFlag}
	toOwnFlag := distanceMatrix(flag, own, radius)[0]
	oppToFlag := distanceMatrix(flag, opp, radius)[0]

	allies := distanceMatrix(own, own, radius)
	enemies := distanceMatrix(own, opp, radius)

	s := Scores{
		Flag:   AllyWeight*rowSum(toOwnFlag) - rowSum(oppToFlag),
		Agents: make([]float64, len(own)),
	}
	for i := range own {
		s.Agents[i] = AllyWeight*rowSum(allies[i]) - rowSum(enemies[i])
	}
	return s
}
