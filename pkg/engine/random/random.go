// Package random builds the pseudo-random sources injected into level generation.
package random

import (
	"math/rand"
	"time"
)

// New returns a generator seeded with seed, or with the current time when seed is 0.
// The seed actually used is returned so a session can be reproduced later.
func New(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
