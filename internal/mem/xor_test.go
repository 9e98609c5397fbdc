package mem

import (
	"bytes"
	"testing"
)

func TestXORInPlace(t *testing.T) {
	dst := []byte{0x00, 0xFF, 0x0F, 0xAA}
	XORInPlace(dst, []byte{0xFF, 0xFF, 0xF0, 0xAA, 0x01})

	if got, want := dst, []byte{0xFF, 0x00, 0xFF, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("XORInPlace = %x, want %x", got, want)
	}
}

func TestSliceForAppend(t *testing.T) {
	t.Run("enough capacity", func(t *testing.T) {
		in := make([]byte, 2, 16)
		in[0], in[1] = 1, 2
		head, tail := SliceForAppend(in, 4)

		if got, want := len(head), 6; got != want {
			t.Errorf("len(head) = %d, want %d", got, want)
		}
		if got, want := len(tail), 4; got != want {
			t.Errorf("len(tail) = %d, want %d", got, want)
		}
		if &head[0] != &in[0] {
			t.Error("head was reallocated")
		}
	})

	t.Run("grows", func(t *testing.T) {
		in := []byte{1, 2}
		head, tail := SliceForAppend(in, 3)
		tail[0] = 9

		if got, want := head, []byte{1, 2, 9, 0, 0}; !bytes.Equal(got, want) {
			t.Errorf("head = %v, want %v", got, want)
		}
	})
}
