// Package md5 implements the MD5 message digest as specified in RFC 1321.
//
// MD5 is broken for collision resistance. It is here for its bit-level value: padding, per-operation rotations, and
// little-endian word order must all match the RFC exactly or the output is silently wrong.
package md5

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
	"math/bits"
	"strings"
	"sync"
)

const (
	// Size is the size of an MD5 digest in bytes.
	Size = 16

	// BlockSize is the MD5 block size in bytes.
	BlockSize = 64
)

// Sum returns the MD5 digest of data.
func Sum(data []byte) [Size]byte {
	s := [4]uint32{init0, init1, init2, init3}

	full := len(data) &^ (BlockSize - 1)
	blocks(&s, data[:full])

	tail := make([]byte, 0, 2*BlockSize)
	tail = append(tail, data[full:]...)
	blocks(&s, appendPadding(tail, uint64(len(data))))

	return encode(&s)
}

// Hex returns the MD5 digest of data as 32 uppercase hexadecimal digits.
func Hex(data []byte) string {
	sum := Sum(data)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// New returns a new hash.Hash computing the MD5 digest incrementally. Its output is identical to Sum.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

type digest struct {
	s   [4]uint32
	x   [BlockSize]byte
	nx  int
	len uint64
}

func (d *digest) Reset() {
	d.s = [4]uint32{init0, init1, init2, init3}
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (int, error) {
	n := len(p)
	d.len += uint64(n)

	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c
		p = p[c:]
		if d.nx < BlockSize {
			return n, nil
		}
		blocks(&d.s, d.x[:])
		d.nx = 0
	}

	if full := len(p) &^ (BlockSize - 1); full > 0 {
		blocks(&d.s, p[:full])
		p = p[full:]
	}
	d.nx = copy(d.x[:], p)

	return n, nil
}

// Sum appends the current digest to b without changing the underlying state.
func (d *digest) Sum(b []byte) []byte {
	s := d.s
	tail := make([]byte, 0, 2*BlockSize)
	tail = append(tail, d.x[:d.nx]...)
	blocks(&s, appendPadding(tail, d.len))

	sum := encode(&s)
	return append(b, sum[:]...)
}

// appendPadding appends a single 1 bit, 0 bits up to 448 mod 512, and the 64-bit little-endian bit length of an n-byte
// message. The result is always a whole number of blocks, and a tail of 56 or more bytes spills into an extra block.
func appendPadding(tail []byte, n uint64) []byte {
	tail = append(tail, 0x80)
	for len(tail)%BlockSize != BlockSize-8 {
		tail = append(tail, 0x00)
	}
	return binary.LittleEndian.AppendUint64(tail, n<<3)
}

func encode(s *[4]uint32) (sum [Size]byte) {
	binary.LittleEndian.PutUint32(sum[0:], s[0])
	binary.LittleEndian.PutUint32(sum[4:], s[1])
	binary.LittleEndian.PutUint32(sum[8:], s[2])
	binary.LittleEndian.PutUint32(sum[12:], s[3])
	return sum
}

// blocks runs the compression function over each 64-byte block of p.
func blocks(s *[4]uint32, p []byte) {
	t := table()

	for ; len(p) >= BlockSize; p = p[BlockSize:] {
		var x [16]uint32
		for i := range x {
			x[i] = binary.LittleEndian.Uint32(p[4*i:])
		}

		a, b, c, d := s[0], s[1], s[2], s[3]
		for i := range 64 {
			var f uint32
			var g int
			switch i / 16 {
			case 0:
				f = (b & c) | (^b & d)
				g = i
			case 1:
				f = (b & d) | (c & ^d)
				g = (1 + 5*i) % 16
			case 2:
				f = b ^ c ^ d
				g = (5 + 3*i) % 16
			default:
				f = c ^ (b | ^d)
				g = (7 * i) % 16
			}
			f += a + t[i] + x[g]
			a, d, c, b = d, c, b, b+bits.RotateLeft32(f, shifts[i/16][i%4])
		}

		s[0] += a
		s[1] += b
		s[2] += c
		s[3] += d
	}
}

// table returns T[i] = floor(2^32 * |sin(i+1)|), computed on first use.
var table = sync.OnceValue(func() *[64]uint32 {
	var t [64]uint32
	for i := range t {
		t[i] = uint32(math.Floor(math.Ldexp(math.Abs(math.Sin(float64(i+1))), 32)))
	}
	return &t
})

// Per-round rotation amounts, cycled every four operations.
var shifts = [4][4]int{
	{7, 12, 17, 22},
	{5, 9, 14, 20},
	{4, 11, 16, 23},
	{6, 10, 15, 21},
}

const (
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
)

var _ hash.Hash = (*digest)(nil)
