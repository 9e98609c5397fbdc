// Package cbcstream provides streaming CBC encryption and decryption with padding on top of a cipher.Block.
//
// The writer buffers any partial block between writes and encrypts whole blocks as they become available. Closing
// the writer pads the final partial block, encrypts it, and writes it, so the ciphertext is always a whole number of
// blocks and exactly what cbc.Encrypt would produce for the concatenated writes.
//
// The reader decrypts whole blocks as they arrive but always holds back the most recent block, since it may carry
// the padding. When the underlying reader reaches EOF, the held block is decrypted and its padding removed. A stream
// which ends on a partial block returns cbc.ErrInvalidBlockLength; malformed padding returns
// padding.ErrInvalidPadding.
//
// Like CBC itself, this provides no integrity protection.
package cbcstream

import (
	"crypto/cipher"
	"errors"
	"io"
	"slices"

	"github.com/codahale/classic/hazmat/padding"
	"github.com/codahale/classic/schemes/basic/cbc"
)

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("cbcstream: write to closed writer")

// Writer encrypts written data in CBC mode.
type Writer struct {
	mode   cipher.BlockMode
	w      io.Writer
	bs     int
	buf    []byte
	err    error
	closed bool
}

// NewWriter wraps the given io.Writer with a CBC encrypting writer using b and iv. A nil iv is all zeroes.
//
// The returned Writer MUST be closed for the encrypted stream to be complete.
func NewWriter(b cipher.Block, iv []byte, w io.Writer) (*Writer, error) {
	iv, err := checkIV(b, iv)
	if err != nil {
		return nil, err
	}

	return &Writer{
		mode:   cbc.NewEncrypter(b, iv),
		w:      w,
		bs:     b.BlockSize(),
		buf:    make([]byte, 0, chunkSize),
		closed: false,
	}, nil
}

func (s *Writer) Write(p []byte) (n int, err error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.err != nil {
		return 0, s.err
	}

	total := len(p)
	for len(p) > 0 {
		// Fill the buffer, then encrypt and send every whole block in it.
		c := min(len(p), chunkSize-len(s.buf))
		s.buf = append(s.buf, p[:c]...)
		p = p[c:]

		whole := len(s.buf) - len(s.buf)%s.bs
		if whole == 0 {
			continue
		}

		s.mode.CryptBlocks(s.buf[:whole], s.buf[:whole])
		if _, err := s.w.Write(s.buf[:whole]); err != nil {
			// The chaining state has already consumed these blocks, so the stream cannot be resumed.
			s.err = err
			return max(0, total-len(p)-len(s.buf)), err
		}
		s.buf = s.buf[:copy(s.buf, s.buf[whole:])]
	}

	return total, nil
}

// Close pads and writes the final block, ensuring no further writes can be made to the stream. It does not close the
// underlying writer. If an earlier write to the underlying writer failed, Close writes nothing and returns that error.
func (s *Writer) Close() error {
	if s.closed {
		return s.err
	}
	s.closed = true
	if s.err != nil {
		return s.err
	}

	s.buf = padding.Pad(s.buf[:0], s.buf, s.bs)
	s.mode.CryptBlocks(s.buf, s.buf)
	if _, err := s.w.Write(s.buf); err != nil {
		s.err = err
		return err
	}
	return nil
}

// Reader decrypts a CBC stream.
type Reader struct {
	mode     cipher.BlockMode
	r        io.Reader
	bs       int
	buf, out []byte
	outBuf   []byte
	eos      bool
}

// NewReader wraps the given io.Reader with a CBC decrypting reader using b and iv. A nil iv is all zeroes.
func NewReader(b cipher.Block, iv []byte, r io.Reader) (*Reader, error) {
	iv, err := checkIV(b, iv)
	if err != nil {
		return nil, err
	}

	return &Reader{
		mode:   cbc.NewDecrypter(b, iv),
		r:      r,
		bs:     b.BlockSize(),
		buf:    make([]byte, 0, chunkSize),
		out:    nil,
		outBuf: make([]byte, 0, chunkSize),
		eos:    false,
	}, nil
}

func (o *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	for {
		// If plaintext is buffered, satisfy the read with that.
		if len(o.out) > 0 {
			n = copy(p, o.out)
			o.out = o.out[n:]
			return n, nil
		}

		// If the stream is finished, return EOF.
		if o.eos {
			return 0, io.EOF
		}

		read, rerr := o.r.Read(o.buf[len(o.buf):cap(o.buf)])
		o.buf = o.buf[:len(o.buf)+read]
		if errors.Is(rerr, io.EOF) {
			if err = o.finish(); err != nil {
				return 0, err
			}
			continue
		} else if rerr != nil {
			return 0, rerr
		}

		// Decrypt every whole block except the last one, which might be the final, padded block.
		ready := len(o.buf) - len(o.buf)%o.bs - o.bs
		if ready <= 0 {
			continue
		}
		o.mode.CryptBlocks(o.buf[:ready], o.buf[:ready])
		o.outBuf = append(o.outBuf[:0], o.buf[:ready]...)
		o.out = o.outBuf
		o.buf = o.buf[:copy(o.buf, o.buf[ready:])]
	}
}

func (o *Reader) finish() error {
	o.eos = true

	if len(o.buf) == 0 || len(o.buf)%o.bs != 0 {
		return cbc.ErrInvalidBlockLength
	}

	o.mode.CryptBlocks(o.buf, o.buf)
	plaintext, err := padding.Unpad(o.buf, o.bs)
	if err != nil {
		return err
	}
	o.outBuf = append(o.outBuf[:0], plaintext...)
	o.out = o.outBuf
	o.buf = o.buf[:0]
	return nil
}

func checkIV(b cipher.Block, iv []byte) ([]byte, error) {
	if iv == nil {
		return make([]byte, b.BlockSize()), nil
	}
	if len(iv) != b.BlockSize() {
		return nil, cbc.ErrInvalidIV
	}
	return slices.Clone(iv), nil
}

const chunkSize = 32 * 1024

var (
	_ io.WriteCloser = (*Writer)(nil)
	_ io.Reader      = (*Reader)(nil)
)
