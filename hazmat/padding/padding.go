// Package padding pads messages to a whole number of blocks with zero bytes and a trailing length byte (ANSI X.923).
//
// At least one byte of padding is always added, so an aligned message gains a full block and the pad length can
// always be recovered.
package padding

import (
	"crypto/subtle"
	"errors"

	"github.com/codahale/classic/internal/mem"
)

// ErrInvalidPadding is returned when a padded message's trailing length byte or filler bytes are malformed.
var ErrInvalidPadding = errors.New("padding: invalid padding")

// Len returns the number of padding bytes Pad adds to an n-byte message.
func Len(n, blockSize int) int {
	checkBlockSize(blockSize)
	return blockSize - n%blockSize
}

// Pad appends src and its padding to dst and returns the resulting slice. The padding is zero bytes followed by a byte
// holding the pad length, which is between 1 and blockSize. Pad panics if blockSize is not in [1, 255].
//
// To reuse src's storage for the padded output, use src[:0] as dst. Otherwise, the remaining capacity of dst must not
// overlap src.
func Pad(dst, src []byte, blockSize int) []byte {
	n := Len(len(src), blockSize)
	ret, out := mem.SliceForAppend(dst, len(src)+n)
	copy(out, src)
	clear(out[len(src) : len(out)-1])
	out[len(out)-1] = byte(n)
	return ret
}

// Unpad returns the message of src with its padding removed. It returns ErrInvalidPadding if the recorded pad length
// is zero, larger than blockSize or len(src), or if any filler byte is not zero. The result aliases src.
func Unpad(src []byte, blockSize int) ([]byte, error) {
	checkBlockSize(blockSize)

	if len(src) == 0 {
		return nil, ErrInvalidPadding
	}

	n := int(src[len(src)-1])
	if n == 0 || n > blockSize || n > len(src) {
		return nil, ErrInvalidPadding
	}

	filler := src[len(src)-n : len(src)-1]
	var acc byte
	for _, b := range filler {
		acc |= b
	}
	if subtle.ConstantTimeByteEq(acc, 0) != 1 {
		return nil, ErrInvalidPadding
	}

	return src[:len(src)-n], nil
}

func checkBlockSize(blockSize int) {
	if blockSize < 1 || blockSize > 255 {
		panic("padding: invalid block size")
	}
}
