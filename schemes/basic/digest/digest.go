// Package digest provides unkeyed and keyed message digests built on hazmat/md5.
//
// The keyed digest is HMAC-MD5 (RFC 2104). It is the only construction in this module which detects modification of
// a message.
package digest

import (
	"crypto/hmac"
	"hash"

	"github.com/codahale/classic/hazmat/md5"
)

const (
	// UnkeyedSize is the size, in bytes, of the unkeyed hash's digest.
	UnkeyedSize = md5.Size

	// KeyedSize is the size, in bytes, of the keyed hash's digest.
	KeyedSize = md5.Size
)

// New returns a new hash.Hash computing the MD5 digest.
func New() hash.Hash {
	return md5.New()
}

// NewKeyed returns a new hash.Hash computing HMAC-MD5 with the given key. Keys longer than md5.BlockSize bytes are
// hashed first.
func NewKeyed(key []byte) hash.Hash {
	return hmac.New(md5.New, key)
}

// Equal compares two digests in constant time.
func Equal(a, b []byte) bool {
	return hmac.Equal(a, b)
}
