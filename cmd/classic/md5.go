package main

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
	"time"

	"github.com/p7r0x7/vainpath"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/codahale/classic/hazmat/md5"
	"github.com/codahale/classic/schemes/basic/digest"
)

// errMismatch is returned when a checked digest does not match.
var errMismatch = errors.New("digest mismatch")

func md5Flags(fs *pflag.FlagSet) {
	fs.BoolP("string", "s", false, "hash the arguments themselves rather than the files they name")
	fs.BoolP("base64", "b", false, "render digests in base64 (default uppercase hex)")
	fs.BoolP("time", "t", false, "print how long each digest took")
	fs.StringP("check", "c", "", "compare the digest of the single target with the one stored in `HASHFILE`")
	fs.StringP("key", "k", "", "compute HMAC-MD5 with `KEY` instead of a plain digest")
}

func runMD5(e *env, fs *pflag.FlagSet) error {
	asString, _ := fs.GetBool("string")
	useBase64, _ := fs.GetBool("base64")
	showTime, _ := fs.GetBool("time")
	check, _ := fs.GetString("check")
	key, _ := fs.GetString("key")
	newHash := digest.New
	if fs.Changed("key") {
		newHash = func() hash.Hash { return digest.NewKeyed([]byte(key)) }
	}

	targets := fs.Args()
	if len(targets) == 0 && !asString {
		targets = []string{"-"}
	}

	if check != "" {
		if len(targets) != 1 {
			return usagef("--check takes exactly one target, got %d", len(targets))
		}
		return checkMD5(e, newHash, check, targets[0], asString)
	}

	failed := 0
	for _, target := range targets {
		start := time.Now()
		sum, err := sumTarget(e, newHash, target, asString)
		if err != nil {
			e.log.WithField("target", target).Warn(err)
			failed++
			continue
		}
		elapsed := time.Since(start)

		e.log.WithFields(logrus.Fields{"target": target, "elapsed": elapsed}).Debug("digested")

		line := render(sum, useBase64) + "  " + label(target, asString)
		if showTime {
			line += " (" + elapsed.Round(time.Microsecond).String() + ")"
		}
		if _, err := fmt.Fprintln(e.stdout, line); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d targets could not be read", failed, len(targets))
	}
	return nil
}

// checkMD5 compares the digest of target with the first field of hashFile, in hex or base64.
func checkMD5(e *env, newHash func() hash.Hash, hashFile, target string, asString bool) error {
	stored, err := os.ReadFile(hashFile)
	if err != nil {
		return err
	}
	fields := strings.Fields(string(stored))
	if len(fields) == 0 {
		return fmt.Errorf("%s: no digest found", vainpath.Simplify(hashFile))
	}

	sum, err := sumTarget(e, newHash, target, asString)
	if err != nil {
		return err
	}

	want, ok := decodeDigest(fields[0])
	status := "OK"
	if !ok || !bytes.Equal(want, sum[:]) {
		status = "FAILED"
	}

	e.log.WithFields(logrus.Fields{"target": target, "hashfile": hashFile, "status": status}).Info("checked")
	if _, err := fmt.Fprintf(e.stdout, "%s: %s\n", label(target, asString), status); err != nil {
		return err
	}

	if status != "OK" {
		return errMismatch
	}
	return nil
}

func sumTarget(e *env, newHash func() hash.Hash, target string, asString bool) ([md5.Size]byte, error) {
	var r io.Reader
	switch {
	case asString:
		r = strings.NewReader(target)
	case target == "-":
		r = e.stdin
	default:
		f, err := os.Open(target)
		if err != nil {
			return [md5.Size]byte{}, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	h := newHash()
	if _, err := io.Copy(h, r); err != nil {
		return [md5.Size]byte{}, err
	}

	var sum [md5.Size]byte
	h.Sum(sum[:0])
	return sum, nil
}

func render(sum [md5.Size]byte, useBase64 bool) string {
	if useBase64 {
		return base64.StdEncoding.EncodeToString(sum[:])
	}
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func decodeDigest(s string) ([]byte, bool) {
	if b, err := hex.DecodeString(s); err == nil && len(b) == md5.Size {
		return b, true
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) == md5.Size {
		return b, true
	}
	return nil, false
}

func label(target string, asString bool) string {
	switch {
	case asString:
		return `"` + target + `"`
	case target == "-":
		return "-"
	default:
		return vainpath.Simplify(target)
	}
}
