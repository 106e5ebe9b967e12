package sha256

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDigestLength indicates a hex digest that is not 64 characters long.
var ErrInvalidDigestLength = errors.New("sha256: invalid length for digest")

// Digest is the final state of a hashed message.
type Digest [8]uint32

// String renders the digest as 64 lowercase hex characters.
func (d Digest) String() string {
	var sb strings.Builder
	sb.Grow(Size * 2)
	for _, v := range d {
		fmt.Fprintf(&sb, "%08x", v)
	}
	return sb.String()
}

// Sum returns the digest as big-endian bytes.
func (d Digest) Sum() [Size]byte {
	var sum [Size]byte
	for i, v := range d {
		binary.BigEndian.PutUint32(sum[i*4:], v)
	}
	return sum
}

// Bytes returns the digest as a byte slice.
func (d Digest) Bytes() []byte {
	sum := d.Sum()
	return sum[:]
}

// DecodeDigest parses the 64-character hex form produced by String.
// Upper case input is accepted.
func DecodeDigest(s string) (Digest, error) {
	if len(s) != Size*2 {
		return Digest{}, ErrInvalidDigestLength
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, err
	}
	var d Digest
	for i := range d {
		d[i] = binary.BigEndian.Uint32(raw[i*4:])
	}
	return d, nil
}
