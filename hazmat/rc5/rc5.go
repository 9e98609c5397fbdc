// Package rc5 implements the RC5-w/r/b block cipher, generic over the word width w.
//
// A block is two words, loaded and stored little-endian. Rotation amounts are always reduced modulo w, so
// data-dependent rotations never depend on more than the low lg(w) bits of a word. Additions and subtractions wrap.
//
// This package does not pad, chain, or authenticate anything. See schemes/basic/ecb and schemes/basic/cbc.
package rc5

import (
	"crypto/cipher"
	"errors"
	"strconv"
)

const (
	// MaxRounds is the largest supported number of rounds.
	MaxRounds = 255

	// MaxKeySize is the largest supported key length in bytes.
	MaxKeySize = 255
)

var (
	// ErrInvalidRounds is returned when the round count is outside [0, MaxRounds].
	ErrInvalidRounds = errors.New("rc5: invalid number of rounds")

	// ErrKeySize is returned when the key is longer than MaxKeySize bytes.
	ErrKeySize = errors.New("rc5: invalid key size")
)

// Cipher is an RC5 instance with an expanded key schedule. It is safe for concurrent use.
type Cipher[W Word] struct {
	s      []W
	rounds int
}

// New expands key into a schedule of 2(rounds+1) words and returns a cipher using it. An empty key is valid.
func New[W Word](rounds int, key []byte) (*Cipher[W], error) {
	if rounds < 0 || rounds > MaxRounds {
		return nil, ErrInvalidRounds
	}

	if len(key) > MaxKeySize {
		return nil, ErrKeySize
	}

	return &Cipher[W]{s: expand[W](rounds, key), rounds: rounds}, nil
}

// Rounds returns the number of rounds.
func (c *Cipher[W]) Rounds() int {
	return c.rounds
}

// BlockSize returns the cipher's block size in bytes, two words.
func (c *Cipher[W]) BlockSize() int {
	return 2 * Bits[W]() / 8
}

// Encrypt encrypts the first block of src into dst. Dst and src must overlap entirely or not at all.
func (c *Cipher[W]) Encrypt(dst, src []byte) {
	u := c.check(dst, src, "Encrypt")
	a, b := c.EncryptWords(load[W](src), load[W](src[u:]))
	store(dst, a)
	store(dst[u:], b)
}

// Decrypt decrypts the first block of src into dst. Dst and src must overlap entirely or not at all.
func (c *Cipher[W]) Decrypt(dst, src []byte) {
	u := c.check(dst, src, "Decrypt")
	a, b := c.DecryptWords(load[W](src), load[W](src[u:]))
	store(dst, a)
	store(dst[u:], b)
}

// EncryptWords encrypts the block (a, b).
func (c *Cipher[W]) EncryptWords(a, b W) (W, W) {
	s := c.s
	a += s[0]
	b += s[1]
	for i := 1; i <= c.rounds; i++ {
		a = rotl(a^b, b) + s[2*i]
		b = rotl(b^a, a) + s[2*i+1]
	}
	return a, b
}

// DecryptWords inverts EncryptWords.
func (c *Cipher[W]) DecryptWords(a, b W) (W, W) {
	s := c.s
	for i := c.rounds; i >= 1; i-- {
		b = rotr(b-s[2*i+1], a) ^ a
		a = rotr(a-s[2*i], b) ^ b
	}
	b -= s[1]
	a -= s[0]
	return a, b
}

func (c *Cipher[W]) check(dst, src []byte, op string) int {
	u := Bits[W]() / 8
	if len(src) < 2*u {
		panic("rc5: " + op + ": input not full block (" + strconv.Itoa(len(src)) + " bytes)")
	}
	if len(dst) < 2*u {
		panic("rc5: " + op + ": output not full block (" + strconv.Itoa(len(dst)) + " bytes)")
	}
	return u
}

// expand converts key into little-endian words and mixes them into the P/Q progression.
func expand[W Word](rounds int, key []byte) []W {
	u := Bits[W]() / 8

	c := max(1, (len(key)+u-1)/u)
	l := make([]W, c)
	for i := len(key) - 1; i >= 0; i-- {
		l[i/u] = rotl(l[i/u], 8) + W(key[i])
	}

	p, q := Magic[W]()
	t := 2 * (rounds + 1)
	s := make([]W, t)
	s[0] = p
	for i := 1; i < t; i++ {
		s[i] = s[i-1] + q
	}

	var a, b W
	for k, i, j := 0, 0, 0; k < 3*max(t, c); k++ {
		s[i] = rotl(s[i]+a+b, 3)
		a = s[i]
		l[j] = rotl(l[j]+a+b, a+b)
		b = l[j]
		i = (i + 1) % t
		j = (j + 1) % c
	}

	return s
}

var (
	_ cipher.Block = (*Cipher[uint16])(nil)
	_ cipher.Block = (*Cipher[uint32])(nil)
	_ cipher.Block = (*Cipher[uint64])(nil)
)
