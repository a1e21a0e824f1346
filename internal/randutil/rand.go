// Package randutil builds the random sources handed to the bet engine.
package randutil

import (
	crand "crypto/rand"
	"math/big"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Rand adapts a *rand.Rand to the engine's fallible source interface.
type Rand struct {
	r *rand.Rand
}

// FromRand wraps r. Draws from it never fail.
func FromRand(r *rand.Rand) *Rand {
	return &Rand{r: r}
}

// Seeded is shorthand for FromRand(New(seed)).
func Seeded(seed int64) *Rand {
	return FromRand(New(seed))
}

// IntN returns a uniform value in [0, n).
func (s *Rand) IntN(n int) (int, error) {
	return s.r.IntN(n), nil
}

// Int64 exposes the underlying generator for deriving child seeds.
func (s *Rand) Int64() int64 {
	return s.r.Int64()
}

// Crypto draws from crypto/rand. Use it when bets must not be predictable
// from a seed.
type Crypto struct{}

// IntN returns a uniform value in [0, n) or the error from the system
// entropy source.
func (Crypto) IntN(n int) (int, error) {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
