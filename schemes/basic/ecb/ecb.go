// Package ecb implements Electronic Codebook mode over any cipher.Block.
//
// Each block is encrypted independently, so equal plaintext blocks yield equal ciphertext blocks. Inputs must already
// be a whole number of blocks; this package does not pad. Large inputs are split into spans and processed in
// parallel, which requires the block cipher to be safe for concurrent use.
package ecb

import (
	"crypto/cipher"
	"errors"

	"github.com/codahale/classic/internal/lanes"
	"github.com/codahale/classic/internal/mem"
)

// ErrInvalidBlockLength is returned when an input is not a multiple of the block size.
var ErrInvalidBlockLength = errors.New("ecb: input not a multiple of the block size")

// Encrypt appends the ECB encryption of plaintext to dst and returns the resulting slice.
//
// To reuse plaintext's storage for the encrypted output, use plaintext[:0] as dst. Otherwise, the remaining capacity
// of dst must not overlap plaintext.
func Encrypt(b cipher.Block, dst, plaintext []byte) ([]byte, error) {
	if len(plaintext)%b.BlockSize() != 0 {
		return nil, ErrInvalidBlockLength
	}

	ret, out := mem.SliceForAppend(dst, len(plaintext))
	NewEncrypter(b).CryptBlocks(out, plaintext)
	return ret, nil
}

// Decrypt appends the ECB decryption of ciphertext to dst and returns the resulting slice.
//
// To reuse ciphertext's storage for the decrypted output, use ciphertext[:0] as dst. Otherwise, the remaining capacity
// of dst must not overlap ciphertext.
func Decrypt(b cipher.Block, dst, ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%b.BlockSize() != 0 {
		return nil, ErrInvalidBlockLength
	}

	ret, out := mem.SliceForAppend(dst, len(ciphertext))
	NewDecrypter(b).CryptBlocks(out, ciphertext)
	return ret, nil
}

// NewEncrypter returns a cipher.BlockMode which encrypts in ECB mode using b.
func NewEncrypter(b cipher.Block) cipher.BlockMode {
	return &mode{b: b, fn: b.Encrypt}
}

// NewDecrypter returns a cipher.BlockMode which decrypts in ECB mode using b.
func NewDecrypter(b cipher.Block) cipher.BlockMode {
	return &mode{b: b, fn: b.Decrypt}
}

type mode struct {
	b  cipher.Block
	fn func(dst, src []byte)
}

func (m *mode) BlockSize() int {
	return m.b.BlockSize()
}

func (m *mode) CryptBlocks(dst, src []byte) {
	bs := m.b.BlockSize()
	if len(src)%bs != 0 {
		panic("ecb: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("ecb: output smaller than input")
	}

	lanes.Run(len(src)/bs, func(lo, hi int) {
		for i := lo * bs; i < hi*bs; i += bs {
			m.fn(dst[i:i+bs], src[i:i+bs])
		}
	})
}
