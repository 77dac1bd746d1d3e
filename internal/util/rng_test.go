package util

import "testing"

func TestNewZeroSeedIsOne(t *testing.T) {
	a, b := New(0), New(1)
	for i := 0; i < 10; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: seed 0 gave %v, seed 1 gave %v", i, x, y)
		}
	}
}

func TestEpisodeSeedIsDistinct(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 1000; i++ {
		s := EpisodeSeed(12345, i)
		if seen[s] {
			t.Fatalf("episode %d reuses seed %d", i, s)
		}
		seen[s] = true
	}
	if EpisodeSeed(12345, 0) != 12345 {
		t.Fatalf("episode 0 must keep the batch seed")
	}
}
