package generation

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// SeedValue turns a world seed into a math/rand source seed. Decimal seeds
// are taken as they are, so seed "42" generates the same world as
// rand.NewSource(42); any other string is hashed with FNV-1a.
func SeedValue(seed string) int64 {
	if n, err := strconv.ParseInt(seed, 10, 64); err == nil {
		return n
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	return int64(h.Sum64())
}

// NewRNG returns the generation stream of a world seed
func NewRNG(seed string) *rand.Rand {
	return rand.New(rand.NewSource(SeedValue(seed)))
}

// intn is rng.Intn that tolerates n <= 0 by returning 0
func intn(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n)
}

// chance draws once and reports whether the draw beat 1-p
func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() > 1-p
}
