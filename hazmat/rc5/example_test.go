package rc5_test

import (
	"fmt"

	"github.com/codahale/classic/hazmat/rc5"
)

func Example() {
	key := []byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
	}
	c, err := rc5.New[uint32](12, key)
	if err != nil {
		panic(err)
	}

	block := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}
	c.Encrypt(block, block)
	fmt.Printf("%X\n", block)

	c.Decrypt(block, block)
	fmt.Printf("%X\n", block)

	// Output:
	// 2DDC149BCF088B9E
	// 0011223344556677
}

func ExampleMagic() {
	p, q := rc5.Magic[uint32]()
	fmt.Printf("%08X %08X\n", p, q)

	// Output:
	// B7E15163 9E3779B9
}
