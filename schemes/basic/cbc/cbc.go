// Package cbc implements Cipher Block Chaining mode over any cipher.Block, with padding.
//
// Each plaintext block is XORed with the previous ciphertext block (the IV, for the first block) before encryption.
// Encryption is inherently sequential; decryption of large inputs is split into spans and processed in parallel, which
// requires the block cipher to be safe for concurrent use.
//
// Encrypt and Decrypt take an explicit IV, defaulting to all zeroes. Seal and Open generate a random IV and carry it
// as a prefix of the ciphertext.
package cbc

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"slices"

	"github.com/codahale/classic/hazmat/padding"
	"github.com/codahale/classic/internal/lanes"
	"github.com/codahale/classic/internal/mem"
)

var (
	// ErrInvalidBlockLength is returned when a ciphertext is empty or not a multiple of the block size.
	ErrInvalidBlockLength = errors.New("cbc: ciphertext not a multiple of the block size")

	// ErrInvalidIV is returned when an IV is not exactly one block long.
	ErrInvalidIV = errors.New("cbc: IV length must equal block size")
)

// Encrypt pads plaintext, encrypts it in CBC mode starting from iv, appends the result to dst, and returns the
// resulting slice. A nil iv is all zeroes. The output is always between one and one block size bytes longer than
// plaintext.
//
// To reuse plaintext's storage for the encrypted output, use plaintext[:0] as dst. Otherwise, the remaining capacity
// of dst must not overlap plaintext.
func Encrypt(b cipher.Block, iv, dst, plaintext []byte) ([]byte, error) {
	iv, err := checkIV(b, iv)
	if err != nil {
		return nil, err
	}

	ret, out := mem.SliceForAppend(dst, len(plaintext)+padding.Len(len(plaintext), b.BlockSize()))
	padded := padding.Pad(out[:0], plaintext, b.BlockSize())
	NewEncrypter(b, iv).CryptBlocks(padded, padded)
	return ret, nil
}

// Decrypt decrypts ciphertext in CBC mode starting from iv, removes the padding, appends the result to dst, and
// returns the resulting slice. A nil iv is all zeroes. If the padding is malformed, padding.ErrInvalidPadding is
// returned.
//
// To reuse ciphertext's storage for the decrypted output, use ciphertext[:0] as dst. Otherwise, the remaining capacity
// of dst must not overlap ciphertext.
func Decrypt(b cipher.Block, iv, dst, ciphertext []byte) ([]byte, error) {
	iv, err := checkIV(b, iv)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) == 0 || len(ciphertext)%b.BlockSize() != 0 {
		return nil, ErrInvalidBlockLength
	}

	ret, out := mem.SliceForAppend(dst, len(ciphertext))
	NewDecrypter(b, iv).CryptBlocks(out, ciphertext)

	plaintext, err := padding.Unpad(out, b.BlockSize())
	if err != nil {
		return nil, err
	}
	return ret[:len(ret)-len(out)+len(plaintext)], nil
}

// Seal encrypts plaintext with a random IV read from rand and appends the IV followed by the ciphertext to dst. If rand
// is nil, crypto/rand is used.
func Seal(b cipher.Block, rand io.Reader, dst, plaintext []byte) ([]byte, error) {
	bs := b.BlockSize()
	ret, iv := mem.SliceForAppend(dst, bs)
	if _, err := io.ReadFull(randReader(rand), iv); err != nil {
		return nil, err
	}

	return Encrypt(b, iv, ret, plaintext)
}

// Open decrypts a ciphertext produced by Seal and appends the plaintext to dst.
func Open(b cipher.Block, dst, sealed []byte) ([]byte, error) {
	bs := b.BlockSize()
	if len(sealed) < 2*bs {
		return nil, ErrInvalidBlockLength
	}

	return Decrypt(b, sealed[:bs], dst, sealed[bs:])
}

// NewEncrypter returns a cipher.BlockMode which encrypts in CBC mode using b and iv, without padding. It panics if
// iv is not one block long. The IV is copied, and the mode carries its chaining state across calls to CryptBlocks.
func NewEncrypter(b cipher.Block, iv []byte) cipher.BlockMode {
	return &encrypter{newState(b, iv)}
}

// NewDecrypter returns a cipher.BlockMode which decrypts in CBC mode using b and iv, without removing padding. It
// panics if iv is not one block long. The IV is copied, and the mode carries its chaining state across calls to
// CryptBlocks.
func NewDecrypter(b cipher.Block, iv []byte) cipher.BlockMode {
	return &decrypter{newState(b, iv)}
}

type state struct {
	b  cipher.Block
	bs int
	iv []byte
}

func newState(b cipher.Block, iv []byte) state {
	if len(iv) != b.BlockSize() {
		panic("cbc: IV length must equal block size")
	}
	return state{b: b, bs: b.BlockSize(), iv: slices.Clone(iv)}
}

func (s *state) BlockSize() int {
	return s.bs
}

func (s *state) check(dst, src []byte) {
	if len(src)%s.bs != 0 {
		panic("cbc: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("cbc: output smaller than input")
	}
}

type encrypter struct {
	state
}

func (x *encrypter) CryptBlocks(dst, src []byte) {
	x.check(dst, src)

	prev := x.iv
	for i := 0; i < len(src); i += x.bs {
		block := dst[i : i+x.bs]
		copy(block, src[i:i+x.bs])
		mem.XORInPlace(block, prev)
		x.b.Encrypt(block, block)
		prev = block
	}

	if len(src) > 0 {
		copy(x.iv, prev)
	}
}

type decrypter struct {
	state
}

func (x *decrypter) CryptBlocks(dst, src []byte) {
	x.check(dst, src)

	n := len(src) / x.bs
	if n == 0 {
		return
	}

	// Record the chaining input of each span before any span can overwrite it in place.
	bounds := lanes.Split(n)
	carry := make([]byte, 0, (len(bounds)-1)*x.bs)
	for _, lo := range bounds[:len(bounds)-1] {
		if lo == 0 {
			carry = append(carry, x.iv...)
		} else {
			carry = append(carry, src[(lo-1)*x.bs:lo*x.bs]...)
		}
	}
	copy(x.iv, src[len(src)-x.bs:])

	lanes.Run(n, func(lo, hi int) {
		span, _ := slices.BinarySearch(bounds, lo)
		prev := carry[span*x.bs : (span+1)*x.bs]

		// Walk the span backwards so each block's chaining input is still intact when it is needed.
		for i := hi - 1; i >= lo; i-- {
			block := dst[i*x.bs : (i+1)*x.bs]
			x.b.Decrypt(block, src[i*x.bs:(i+1)*x.bs])
			if i > lo {
				mem.XORInPlace(block, src[(i-1)*x.bs:i*x.bs])
			} else {
				mem.XORInPlace(block, prev)
			}
		}
	})
}

func checkIV(b cipher.Block, iv []byte) ([]byte, error) {
	if iv == nil {
		return make([]byte, b.BlockSize()), nil
	}
	if len(iv) != b.BlockSize() {
		return nil, ErrInvalidIV
	}
	return iv, nil
}

func randReader(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}
	return r
}
