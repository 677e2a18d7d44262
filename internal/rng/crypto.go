package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws every number from crypto/rand
// There is no seed; a shuffle using Crypto cannot be reproduced.
type Crypto struct{}

// Intn returns a uniform random number in [0, n)
func (c Crypto) Intn(n int) int {
	if n <= 0 {
		panic("rng: n must be > 0")
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// the system entropy source is broken, nothing fair can be dealt
		panic(err)
	}

	return int(b.Int64())
}
