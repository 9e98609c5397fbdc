package digest_test

import (
	"fmt"
	"io"

	"github.com/codahale/classic/schemes/basic/digest"
)

func Example_unkeyed() {
	h := digest.New()
	_, _ = io.WriteString(h, "hello")
	_, _ = io.WriteString(h, " world")

	sum := h.Sum(nil)
	fmt.Printf("%x\n", sum)

	// Output:
	// 5eb63bbbe01eeed093cb22bb8f5acdc3
}

func Example_keyed() {
	h := digest.NewKeyed([]byte("Jefe"))
	_, _ = io.WriteString(h, "what do ya want ")
	_, _ = io.WriteString(h, "for nothing?")

	sum := h.Sum(nil)
	fmt.Printf("%x\n", sum)

	// Output:
	// 750c783e6ab0b503eaa86e310a5db738
}
