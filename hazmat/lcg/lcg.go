// Package lcg implements a linear congruential pseudorandom number generator, x' = (a·x + c) mod m.
//
// It is not suitable for cryptographic use. The full 128-bit product is reduced, so no parameters overflow.
package lcg

import (
	"errors"
	"iter"
	"math/bits"
)

// ErrZeroModulus is returned when a generator is created with a zero modulus.
var ErrZeroModulus = errors.New("lcg: zero modulus")

// Generator is a linear congruential generator. It is not safe for concurrent use.
type Generator struct {
	m, a, c uint64
	x       uint64
}

// New returns a generator with modulus m, multiplier a, increment c, and the given seed. The seed itself is never
// emitted; the first value is (a·seed + c) mod m.
func New(m, a, c, seed uint64) (*Generator, error) {
	if m == 0 {
		return nil, ErrZeroModulus
	}

	return &Generator{m: m, a: a, c: c, x: seed}, nil
}

// Next advances the generator and returns the new state.
func (g *Generator) Next() uint64 {
	hi, lo := bits.Mul64(g.a, g.x)
	lo, carry := bits.Add64(lo, g.c, 0)
	hi += carry
	g.x = bits.Rem64(hi%g.m, lo, g.m)
	return g.x
}

// Values returns an unbounded sequence of the generator's outputs. Each value consumed advances the generator.
func (g *Generator) Values() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for {
			if !yield(g.Next()) {
				return
			}
		}
	}
}

// Take returns the next n values.
func (g *Generator) Take(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

// Unique returns the number of distinct values in seq.
func Unique(seq []uint64) int {
	seen := make(map[uint64]struct{}, len(seq))
	for _, v := range seq {
		seen[v] = struct{}{}
	}
	return len(seen)
}
