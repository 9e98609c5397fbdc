package classic_test

import (
	"fmt"

	"github.com/codahale/classic"
)

func Example() {
	key := []byte("sixteen byte key")
	ciphertext, err := classic.Encrypt(classic.DefaultParams, classic.CBCDigestIV, key, []byte("attack at dawn"))
	if err != nil {
		panic(err)
	}
	fmt.Println(len(ciphertext))

	plaintext, err := classic.Decrypt(classic.DefaultParams, classic.CBCDigestIV, key, ciphertext)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s\n", plaintext)

	// Output:
	// 16
	// attack at dawn
}

func ExampleEncrypt() {
	key := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F}
	plaintext := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}

	ciphertext, err := classic.Encrypt(classic.DefaultParams, classic.ECB, key, plaintext)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%X\n", ciphertext)

	// Output:
	// 2DDC149BCF088B9E0F22376E559E0776
}

func ExampleHash() {
	fmt.Println(classic.Hash([]byte("")))

	// Output:
	// D41D8CD98F00B204E9800998ECF8427E
}
