package util

import "math/rand"

// New returns a seeded source. Seed 0 is remapped to 1 so an unset flag still
// gives a reproducible run.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// EpisodeSeed derives the seed of the i-th episode of a batch. It depends only on
// the batch seed and the index, never on which worker runs the episode.
func EpisodeSeed(seed int64, i int) int64 {
	return seed + int64(i)*7919
}
