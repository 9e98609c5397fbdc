package padding_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/codahale/classic/hazmat/padding"
	"github.com/codahale/classic/internal/testdata"
)

func TestPad(t *testing.T) {
	drbg := testdata.New("padding")
	for _, blockSize := range []int{4, 8, 16} {
		for n := range 3*blockSize + 1 {
			t.Run(fmt.Sprintf("%d/%d", blockSize, n), func(t *testing.T) {
				msg := drbg.Data(n)
				padded := padding.Pad(nil, msg, blockSize)

				if len(padded)%blockSize != 0 {
					t.Fatalf("len(Pad) = %d, not a multiple of %d", len(padded), blockSize)
				}
				if got, want := len(padded)-n, padding.Len(n, blockSize); got != want {
					t.Errorf("added %d bytes, want %d", got, want)
				}
				if got := len(padded) - n; got < 1 || got > blockSize {
					t.Errorf("added %d bytes, want 1..%d", got, blockSize)
				}

				got, err := padding.Unpad(padded, blockSize)
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(got, msg) {
					t.Errorf("Unpad(Pad(%x)) = %x", msg, got)
				}
			})
		}
	}
}

func TestPadAligned(t *testing.T) {
	padded := padding.Pad(nil, make([]byte, 8), 8)
	if got, want := padded, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 8}; !bytes.Equal(got, want) {
		t.Errorf("Pad = %x, want %x", got, want)
	}
}

func TestPadInPlace(t *testing.T) {
	buf := make([]byte, 5, 16)
	copy(buf, "hello")

	padded := padding.Pad(buf[:0], buf, 8)
	if got, want := padded, []byte{'h', 'e', 'l', 'l', 'o', 0, 0, 3}; !bytes.Equal(got, want) {
		t.Errorf("Pad = %x, want %x", got, want)
	}
	if &padded[0] != &buf[0] {
		t.Error("Pad reallocated despite sufficient capacity")
	}
}

func TestPadAppends(t *testing.T) {
	padded := padding.Pad([]byte("prefix"), []byte("abc"), 4)
	if got, want := string(padded), "prefixabc\x01"; got != want {
		t.Errorf("Pad = %q, want %q", got, want)
	}
}

func TestUnpad(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"zero length", []byte{1, 2, 3, 4, 5, 6, 7, 0}},
		{"longer than block", []byte{0, 0, 0, 0, 0, 0, 0, 0, 9}},
		{"longer than input", []byte{0, 0, 4}},
		{"nonzero filler", []byte{1, 2, 3, 4, 5, 1, 0, 3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := padding.Unpad(tc.in, 8); !errors.Is(err, padding.ErrInvalidPadding) {
				t.Errorf("Unpad(%x) err = %v, want ErrInvalidPadding", tc.in, err)
			}
		})
	}
}

func TestInvalidBlockSize(t *testing.T) {
	for _, blockSize := range []int{0, -1, 256} {
		t.Run(fmt.Sprint(blockSize), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Pad with block size %d did not panic", blockSize)
				}
			}()

			padding.Pad(nil, nil, blockSize)
		})
	}
}

func ExamplePad() {
	padded := padding.Pad(nil, []byte("hello"), 8)
	fmt.Printf("%x\n", padded)

	msg, err := padding.Unpad(padded, 8)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s\n", msg)

	// Output:
	// 68656c6c6f000003
	// hello
}
