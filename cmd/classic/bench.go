package main

import (
	stdmd5 "crypto/md5"
	"fmt"
	"runtime"
	"slices"
	"testing"

	"github.com/aead/chacha20/chacha"
	"github.com/codahale/kt128"
	"github.com/codahale/treewrap/tw128"
	"github.com/markkurossi/tabulate"
	sha256 "github.com/minio/sha256-simd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"

	"github.com/codahale/classic"
	"github.com/codahale/classic/hazmat/md5"
	"github.com/codahale/classic/internal/lanes"
	"github.com/codahale/classic/schemes/basic/cbc"
	"github.com/codahale/classic/schemes/basic/ecb"
)

func benchFlags(fs *pflag.FlagSet) {
	fs.Int("size", 1<<20, "message size in bytes")
}

// contender is one row of the benchmark table: a function processing a message of the benchmark size.
type contender struct {
	group string
	name  string
	fn    func(msg []byte)
}

func runBench(e *env, fs *pflag.FlagSet) error {
	size, _ := fs.GetInt("size")
	if size <= 0 || size%16 != 0 {
		return usagef("--size must be a positive multiple of 16")
	}

	rows, err := contenders()
	if err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{"size": size, "lanes": lanes.Count, "cycles": haveCycles}).Info("benchmarking")

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Group").SetAlign(tabulate.ML)
	tab.Header("Primitive").SetAlign(tabulate.ML)
	tab.Header("MB/s").SetAlign(tabulate.MR)
	tab.Header("B/op").SetAlign(tabulate.MR)
	if haveCycles {
		tab.Header("cycles/B").SetAlign(tabulate.MR)
	}

	msg := make([]byte, size)
	for _, c := range rows {
		r := testing.Benchmark(func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			for b.Loop() {
				c.fn(msg)
			}
		})

		speed := float64(r.Bytes*int64(r.N)) / float64(r.T.Nanoseconds()) * 1e3
		e.log.WithFields(logrus.Fields{"primitive": c.name, "n": r.N, "elapsed": r.T}).Debug("measured")

		row := tab.Row()
		row.Column(c.group)
		row.Column(c.name)
		row.Column(fmt.Sprintf("%.2f", speed))
		row.Column(fmt.Sprintf("%d", r.AllocedBytesPerOp()))
		if haveCycles {
			row.Column(fmt.Sprintf("%.2f", cyclesPerByte(func() { c.fn(msg) }, size)))
		}
	}

	tab.Print(e.stdout)
	_, _ = fmt.Fprintf(e.stdout, "%d-byte messages on %s/%s with %d lanes\n", size, runtime.GOOS, runtime.GOARCH,
		lanes.Count)
	return nil
}

func contenders() ([]contender, error) {
	key := make([]byte, 32)
	nonce := make([]byte, chacha.NonceSize)

	rc5x32, err := classic.NewCipher(classic.DefaultParams, key[:16])
	if err != nil {
		return nil, err
	}
	rc5x64, err := classic.NewCipher(classic.Params{WordSize: 64, Rounds: 24, KeySize: 24}, key[:24])
	if err != nil {
		return nil, err
	}

	var (
		out []byte
		sum [32]byte
	)
	return []contender{
		{"digest", "md5 (this module)", func(msg []byte) { _ = md5.Sum(msg) }},
		{"digest", "crypto/md5", func(msg []byte) { _ = stdmd5.Sum(msg) }},
		{"digest", "sha256-simd", func(msg []byte) { _ = sha256.Sum256(msg) }},
		{"digest", "blake3", func(msg []byte) { _ = blake3.Sum256(msg) }},
		{"digest", "kt128", func(msg []byte) {
			h := kt128.New(nil)
			_, _ = h.Write(msg)
			_, _ = h.Read(sum[:])
		}},
		{"digest", "xxh3 (non-cryptographic)", func(msg []byte) { _ = xxh3.Hash(msg) }},
		{"cipher", "rc5-32/12 ecb", func(msg []byte) { out, _ = ecb.Encrypt(rc5x32, out[:0], msg) }},
		{"cipher", "rc5-32/12 cbc encrypt", func(msg []byte) { out, _ = cbc.Encrypt(rc5x32, nil, out[:0], msg) }},
		{"cipher", "rc5-32/12 cbc decrypt", func(msg []byte) {
			out = slices.Grow(out[:0], len(msg))[:len(msg)]
			cbc.NewDecrypter(rc5x32, make([]byte, rc5x32.BlockSize())).CryptBlocks(out, msg)
		}},
		{"cipher", "rc5-64/24 ecb", func(msg []byte) { out, _ = ecb.Encrypt(rc5x64, out[:0], msg) }},
		{"cipher", "chacha20", func(msg []byte) {
			out = append(out[:0], msg...)
			chacha.XORKeyStream(out, out, nonce, key, 20)
		}},
		{"cipher", "treewrap", func(msg []byte) {
			out = append(out[:0], msg...)
			e := tw128.NewEncryptor(key, nonce, nil)
			e.XORKeyStream(out, out)
			_ = e.Finalize()
		}},
	}, nil
}
