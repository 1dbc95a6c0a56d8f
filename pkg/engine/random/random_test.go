package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_SameSeedSameSequence(t *testing.T) {
	a, seedA := New(42)
	b, seedB := New(42)
	assert.Equal(t, int64(42), seedA)
	assert.Equal(t, seedA, seedB)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestNew_ZeroSeedPicksOne(t *testing.T) {
	_, seed := New(0)
	assert.NotZero(t, seed)
}
