package feistel

import (
	"math/rand"
)

// RandSource returns a deterministic source for sampling runs and tests.
func RandSource() *rand.Rand {
	return rand.New(rand.NewSource(17))
}
