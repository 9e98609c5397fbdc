package classic_test

import (
	"testing"

	"github.com/codahale/classic"
	"github.com/codahale/classic/internal/testdata"
)

func BenchmarkEncrypt(b *testing.B) {
	key := make([]byte, 16)
	for _, mode := range modes {
		for _, size := range testdata.Sizes {
			b.Run(mode.String()+"/"+size.Name, func(b *testing.B) {
				plaintext := make([]byte, size.N)
				b.SetBytes(int64(size.N))
				b.ReportAllocs()
				for b.Loop() {
					_, _ = classic.Encrypt(classic.DefaultParams, mode, key, plaintext)
				}
			})
		}
	}
}

func BenchmarkDecrypt(b *testing.B) {
	key := make([]byte, 16)
	for _, mode := range modes {
		for _, size := range testdata.Sizes {
			b.Run(mode.String()+"/"+size.Name, func(b *testing.B) {
				ciphertext, err := classic.Encrypt(classic.DefaultParams, mode, key, make([]byte, size.N))
				if err != nil {
					b.Fatal(err)
				}
				b.SetBytes(int64(size.N))
				b.ReportAllocs()
				for b.Loop() {
					_, _ = classic.Decrypt(classic.DefaultParams, mode, key, ciphertext)
				}
			})
		}
	}
}

func BenchmarkNewCipher(b *testing.B) {
	key := make([]byte, 16)
	for _, w := range []int{16, 32, 64} {
		p := classic.Params{WordSize: w, Rounds: 12, KeySize: 16}
		b.Run(p.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = classic.NewCipher(p, key)
			}
		})
	}
}

func BenchmarkHash(b *testing.B) {
	for _, size := range testdata.Sizes {
		b.Run(size.Name, func(b *testing.B) {
			msg := make([]byte, size.N)
			b.SetBytes(int64(size.N))
			b.ReportAllocs()
			for b.Loop() {
				_ = classic.Hash(msg)
			}
		})
	}
}
