package pixelsort

import "math/rand"

// DefaultSeed is the seed every run starts from, so that the same parameters
// on the same image always produce the same output.
const DefaultSeed = 42

// RNG is the single pseudo-random stream of a run. It is passed explicitly to
// everything that draws from it and is never shared between runs.
type RNG struct {
	r *rand.Rand
}

// NewRNG returns a generator seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Reseed restarts the stream from seed.
func (g *RNG) Reseed(seed int64) {
	g.r = rand.New(rand.NewSource(seed))
}

// IntRange draws uniformly from the closed interval [lo, hi].
func (g *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.Intn(hi-lo+1)
}
