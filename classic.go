// Package classic provides one-call encryption, decryption, and hashing with RC5 and MD5.
//
// Params select the RC5 variant (word size, rounds, and key length) and Mode selects how blocks are chained. Every
// call derives a fresh key schedule; callers encrypting many messages under one key should hold the cipher.Block from
// NewCipher and use the schemes/basic packages directly.
//
// Nothing here authenticates ciphertexts, and neither MD5 nor RC5 should be used to protect anything of value.
package classic

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"strings"

	"github.com/codahale/classic/hazmat/md5"
	"github.com/codahale/classic/hazmat/padding"
	"github.com/codahale/classic/hazmat/rc5"
	"github.com/codahale/classic/schemes/basic/cbc"
	"github.com/codahale/classic/schemes/basic/ecb"
)

var (
	// ErrInvalidWordSize is returned when Params.WordSize is not 16, 32, or 64.
	ErrInvalidWordSize = errors.New("classic: word size must be 16, 32, or 64")

	// ErrKeySize is returned when a key does not have the length Params.KeySize requires.
	ErrKeySize = errors.New("classic: invalid key size")

	// ErrUnknownMode is returned for an unrecognized Mode.
	ErrUnknownMode = errors.New("classic: unknown mode")
)

// Params are the parameters of an RC5 variant, conventionally written RC5-w/r/b.
type Params struct {
	// WordSize is the word width in bits: 16, 32, or 64. The block size is two words.
	WordSize int

	// Rounds is the number of rounds, in [0, 255].
	Rounds int

	// KeySize is the required key length in bytes, in [0, 255]. Zero accepts keys of any length up to 255 bytes.
	KeySize int
}

// DefaultParams is RC5-32/12/16, the variant recommended by Rivest.
var DefaultParams = Params{WordSize: 32, Rounds: 12, KeySize: 16}

// Validate returns an error if the parameters do not describe a supported RC5 variant.
func (p Params) Validate() error {
	switch p.WordSize {
	case 16, 32, 64:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidWordSize, p.WordSize)
	}

	if p.Rounds < 0 || p.Rounds > rc5.MaxRounds {
		return fmt.Errorf("%w: %d", rc5.ErrInvalidRounds, p.Rounds)
	}

	if p.KeySize < 0 || p.KeySize > rc5.MaxKeySize {
		return fmt.Errorf("%w: %d", ErrKeySize, p.KeySize)
	}

	return nil
}

// BlockSize returns the block size in bytes.
func (p Params) BlockSize() int {
	return p.WordSize / 4
}

func (p Params) String() string {
	return fmt.Sprintf("RC5-%d/%d/%d", p.WordSize, p.Rounds, p.KeySize)
}

// NewCipher validates p and returns an RC5 block cipher keyed with key.
func NewCipher(p Params, key []byte) (cipher.Block, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if (p.KeySize != 0 && len(key) != p.KeySize) || len(key) > rc5.MaxKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrKeySize, len(key), p.KeySize)
	}

	var (
		b   cipher.Block
		err error
	)
	switch p.WordSize {
	case 16:
		b, err = rc5.New[uint16](p.Rounds, key)
	case 32:
		b, err = rc5.New[uint32](p.Rounds, key)
	default:
		b, err = rc5.New[uint64](p.Rounds, key)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Mode is a block chaining mode.
type Mode int

const (
	// ECB encrypts each padded block independently.
	ECB Mode = iota

	// CBC chains padded blocks starting from an all-zero IV.
	CBC

	// CBCDigestIV chains padded blocks starting from an IV taken from the MD5 digest of the key.
	CBCDigestIV

	// CBCRandomIV chains padded blocks starting from a random IV, which is prepended to the ciphertext.
	CBCRandomIV
)

var modeNames = [...]string{
	ECB:         "ecb",
	CBC:         "cbc",
	CBCDigestIV: "cbc-md5",
	CBCRandomIV: "cbc-rand",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode returns the Mode with the given name. Names are case-insensitive, and underscores may stand in for
// hyphens.
func ParseMode(s string) (Mode, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// IV returns the initialization vector mode starts from for the given key and block size. It is nil for ECB, which
// has none, and for CBCRandomIV, which generates one per message.
func IV(mode Mode, key []byte, blockSize int) []byte {
	switch mode {
	case CBC:
		return make([]byte, blockSize)
	case CBCDigestIV:
		sum := md5.Sum(key)
		return sum[:min(blockSize, md5.Size)]
	default:
		return nil
	}
}

// Encrypt encrypts plaintext with the RC5 variant p in the given mode.
//
// All modes pad. ECB and the fixed-IV CBC modes are deterministic and produce ciphertexts between one and one block
// size bytes longer than the plaintext. CBCRandomIV adds a further block for the IV.
func Encrypt(p Params, mode Mode, key, plaintext []byte) ([]byte, error) {
	b, err := NewCipher(p, key)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ECB:
		padded := padding.Pad(nil, plaintext, b.BlockSize())
		return ecb.Encrypt(b, padded[:0], padded)
	case CBC, CBCDigestIV:
		return cbc.Encrypt(b, IV(mode, key, b.BlockSize()), nil, plaintext)
	case CBCRandomIV:
		return cbc.Seal(b, nil, nil, plaintext)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
}

// Decrypt decrypts a ciphertext produced by Encrypt with the same parameters, mode, and key.
//
// A wrong key or a corrupted ciphertext is usually, but not always, detected as padding.ErrInvalidPadding.
func Decrypt(p Params, mode Mode, key, ciphertext []byte) ([]byte, error) {
	b, err := NewCipher(p, key)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ECB:
		if len(ciphertext) == 0 {
			return nil, ecb.ErrInvalidBlockLength
		}
		padded, err := ecb.Decrypt(b, nil, ciphertext)
		if err != nil {
			return nil, err
		}
		return padding.Unpad(padded, b.BlockSize())
	case CBC, CBCDigestIV:
		return cbc.Decrypt(b, IV(mode, key, b.BlockSize()), nil, ciphertext)
	case CBCRandomIV:
		return cbc.Open(b, nil, ciphertext)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
}

// Hash returns the MD5 digest of msg as 32 uppercase hexadecimal digits.
func Hash(msg []byte) string {
	return md5.Hex(msg)
}
