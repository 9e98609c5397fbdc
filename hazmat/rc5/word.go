package rc5

import (
	"encoding/binary"
	"math/big"
	"math/bits"
	"sync"
)

// Word is the set of unsigned integer types RC5 can operate on. The block size is two words.
type Word interface {
	~uint16 | ~uint32 | ~uint64
}

// Bits returns the width of W in bits.
func Bits[W Word]() int {
	return bits.Len64(uint64(^W(0)))
}

// Magic returns the key-schedule constants P = Odd((e-2)·2^w) and Q = Odd((φ-1)·2^w) for the width of W.
func Magic[W Word]() (p, q W) {
	m := magic()[Bits[W]()]
	return W(m[0]), W(m[1])
}

// magic holds P and Q for every supported width, derived once at 128-bit precision.
var magic = sync.OnceValue(func() map[int][2]uint64 {
	const prec = 128

	// e = Σ 1/k! converges well past 128 bits by k = 40.
	e := new(big.Float).SetPrec(prec).SetInt64(1)
	term := new(big.Float).SetPrec(prec).SetInt64(1)
	for k := int64(1); k <= 40; k++ {
		term.Quo(term, new(big.Float).SetPrec(prec).SetInt64(k))
		e.Add(e, term)
	}
	e.Sub(e, new(big.Float).SetPrec(prec).SetInt64(2))

	// φ - 1 = (√5 - 1) / 2
	phi := new(big.Float).SetPrec(prec).SetInt64(5)
	phi.Sqrt(phi)
	phi.Sub(phi, new(big.Float).SetPrec(prec).SetInt64(1))
	phi.Quo(phi, new(big.Float).SetPrec(prec).SetInt64(2))

	m := make(map[int][2]uint64, 3)
	for _, w := range []int{16, 32, 64} {
		m[w] = [2]uint64{odd(e, w), odd(phi, w)}
	}
	return m
})

// odd returns floor(x·2^w) with the low bit set.
func odd(x *big.Float, w int) uint64 {
	scaled := new(big.Float).SetPrec(x.Prec()).SetMantExp(x, w)
	n, _ := scaled.Int(nil)
	return n.Uint64() | 1
}

func rotl[W Word](x, s W) W {
	w := W(Bits[W]())
	s &= w - 1
	return x<<s | x>>((w-s)&(w-1))
}

func rotr[W Word](x, s W) W {
	w := W(Bits[W]())
	s &= w - 1
	return x>>s | x<<((w-s)&(w-1))
}

func load[W Word](b []byte) W {
	switch Bits[W]() {
	case 16:
		return W(binary.LittleEndian.Uint16(b))
	case 32:
		return W(binary.LittleEndian.Uint32(b))
	default:
		return W(binary.LittleEndian.Uint64(b))
	}
}

func store[W Word](b []byte, x W) {
	switch Bits[W]() {
	case 16:
		binary.LittleEndian.PutUint16(b, uint16(x))
	case 32:
		binary.LittleEndian.PutUint32(b, uint32(x))
	default:
		binary.LittleEndian.PutUint64(b, uint64(x))
	}
}
