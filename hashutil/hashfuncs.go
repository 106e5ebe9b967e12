// Package hashutil feeds byte sources into the SHA-256 engine: readers and
// files, parallel hashing of many sources, checksum lists, and a few
// composite hash helpers.
package hashutil

import (
	"golang.org/x/crypto/ripemd160"

	"sha2sum.org/sha2sum/crypto/sha256"
)

// Sha256 returns sha256(data).
func Sha256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// DoubleSha256 returns sha256(sha256(data)).
func DoubleSha256(data []byte) []byte {
	h1 := sha256.Sum256(data)
	h2 := sha256.Sum256(h1[:])
	return h2[:]
}

// Hash160 returns ripemd160(sha256(data)).
func Hash160(data []byte) []byte {
	s := sha256.Sum256(data)
	hasher := ripemd160.New()
	hasher.Write(s[:])
	return hasher.Sum(nil)
}
