package testutil

import (
	"math/rand"
)

// Rand produces reproducible test inputs from a fixed seed.
type Rand struct {
	*rand.Rand
}

// NewRand returns a Rand seeded with seed.
func NewRand(seed int64) *Rand {
	return &Rand{rand.New(rand.NewSource(seed))}
}

// Bytes returns n bytes drawn uniformly from all 256 values.
func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	r.Read(b)
	return b
}

// Skewed returns n bytes drawn from the symbols 0..alphabet-1, where each
// symbol is about twice as likely as the next one.
func (r *Rand) Skewed(n, alphabet int) []byte {
	b := make([]byte, n)
	for i := range b {
		var k int
		for k < alphabet-1 && r.Int63()&1 == 1 {
			k++
		}
		b[i] = byte(k)
	}
	return b
}
