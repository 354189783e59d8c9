// Package rng provides the deterministic pseudo-random generator the map
// owns exclusively. It mirrors std::minstd_rand: a linear-congruential
// generator with multiplier 48271 and modulus 2^31−1, the Park–Miller
// "minimal standard" parameters. Determinism end to end depends on every
// random draw in this module flowing through this type and nothing else.
package rng

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	multiplier = 48271
	modulus    = 2147483647 // 2^31 - 1, a Mersenne prime
)

// LCG is a linear-congruential pseudo-random generator. The zero value is
// not usable; construct one with New.
type LCG struct {
	state uint64
}

// New returns an LCG seeded with seed. A seed of 0 is remapped to 1: the
// multiplicative generator's state must stay in [1, modulus-1] or it gets
// stuck at 0 forever.
func New(seed uint32) *LCG {
	g := &LCG{}
	g.Seed(seed)
	return g
}

// Seed reseeds the generator. It does not invalidate anything the caller
// has already sampled — it only changes what happens next.
func (g *LCG) Seed(seed uint32) {
	s := uint64(seed) % modulus
	if s == 0 {
		s = 1
	}
	g.state = s
}

// Uint32 advances the generator and returns the next value in [1, modulus-1].
func (g *LCG) Uint32() uint32 {
	g.state = (g.state * multiplier) % modulus
	return uint32(g.state)
}

// Intn returns a pseudo-random value in [0, n) using a `draw % n`
// construction. n must be > 0.
func (g *LCG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(g.Uint32() % uint32(n))
}

// Float64 returns a pseudo-random value in [0, 1), used by the Gibbs
// sampler's categorical draw over "no item, type 0, type 1, ...".
func (g *LCG) Float64() float64 {
	return float64(g.Uint32()) / float64(modulus)
}

// MarshalText renders the generator's full state as a small decimal
// string, which is also the length-prefixed form persisted by the
// library's binary wire format.
func (g *LCG) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d,%d", multiplier, modulus, g.state)), nil
}

// UnmarshalText restores a generator's state from MarshalText's output. It
// rejects text produced by a differently-parameterized generator: the
// multiplier and modulus must match this build's constants exactly, the
// property a faithful persistence round trip depends on.
func (g *LCG) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ",")
	if len(parts) != 3 {
		return fmt.Errorf("rng: malformed state %q", text)
	}
	mul, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("rng: parse multiplier: %w", err)
	}
	mod, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return fmt.Errorf("rng: parse modulus: %w", err)
	}
	state, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return fmt.Errorf("rng: parse state: %w", err)
	}
	if mul != multiplier || mod != modulus {
		return fmt.Errorf("rng: state was produced by a generator with multiplier=%d modulus=%d, this build uses multiplier=%d modulus=%d", mul, mod, multiplier, modulus)
	}
	g.state = state
	return nil
}
