// Package sha256 implements the SHA-256 hash algorithm as defined in FIPS 180-4.
//
// The Engine accepts input in chunks of any size and always processes
// exactly one 64-byte block per compression.
package sha256

import (
	"encoding/binary"
	"errors"
	"hash"
)

const (
	magic256          = "sha\x03"
	marshaledSize     = len(magic256) + 8*4 + chunk + 8
	maxBufferedLength = chunk - lenFieldSize
)

var (
	// ErrInvalidStateIdentifier indicates a marshaled state of another algorithm.
	ErrInvalidStateIdentifier = errors.New("sha256: invalid hash state identifier")
	// ErrInvalidStateSize indicates a marshaled state of the wrong size.
	ErrInvalidStateSize = errors.New("sha256: invalid hash state size")
)

// Engine is a streaming SHA-256 hasher.
//
// An Engine owns mutable state and must have a single caller at a time;
// callers sharing one across goroutines must provide their own locking.
// Distinct engines are fully independent.
type Engine struct {
	h   State
	x   [chunk]byte
	nx  int
	len uint64
}

var (
	_ hash.Hash = (*Engine)(nil)
)

// New returns an engine ready to hash a new message.
func New() *Engine {
	e := new(Engine)
	e.Reset()
	return e
}

// Reset discards everything written so far.
func (e *Engine) Reset() {
	e.h = initState
	e.x = [chunk]byte{}
	e.nx = 0
	e.len = 0
}

// Update feeds p into the hash. Empty input is allowed.
func (e *Engine) Update(p []byte) {
	e.len += uint64(len(p))

	for e.nx+len(p) >= chunk {
		n := copy(e.x[e.nx:], p)
		e.nx += n
		p = p[n:]
		e.block()
	}

	e.nx += copy(e.x[e.nx:], p)
}

// Digest finishes the message, returns its digest and resets the engine
// so it can be reused for an unrelated message.
func (e *Engine) Digest() Digest {
	var lenField [lenFieldSize]byte
	binary.BigEndian.PutUint64(lenField[:], e.len<<3)

	var zeros [chunk]byte
	e.Update([]byte{0x80})
	if e.nx > maxBufferedLength {
		e.Update(zeros[:chunk-e.nx])
	}
	e.Update(zeros[:maxBufferedLength-e.nx])
	e.Update(lenField[:])

	d := Digest(e.h)
	e.Reset()
	return d
}

// Write implements io.Writer. It never fails.
func (e *Engine) Write(p []byte) (int, error) {
	e.Update(p)
	return len(p), nil
}

// Sum appends the digest of everything written so far to in.
// Unlike Digest, it leaves the engine untouched.
func (e *Engine) Sum(in []byte) []byte {
	dup := *e
	sum := dup.Digest().Sum()
	return append(in, sum[:]...)
}

// Size returns the number of bytes Sum appends.
func (e *Engine) Size() int { return Size }

// BlockSize returns the hash's block size.
func (e *Engine) BlockSize() int { return BlockSize }

// Len returns the number of message bytes written since the last reset.
func (e *Engine) Len() uint64 { return e.len }

// MarshalBinary snapshots the engine so hashing can be resumed later.
func (e *Engine) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize)
	b = append(b, magic256...)
	for _, v := range e.h {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	b = append(b, e.x[:e.nx]...)
	b = b[:len(b)+len(e.x)-e.nx]
	b = binary.BigEndian.AppendUint64(b, e.len)
	return b, nil
}

// UnmarshalBinary restores a snapshot produced by MarshalBinary.
func (e *Engine) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic256) || string(b[:len(magic256)]) != magic256 {
		return ErrInvalidStateIdentifier
	}
	if len(b) != marshaledSize {
		return ErrInvalidStateSize
	}
	b = b[len(magic256):]
	for i := range e.h {
		e.h[i] = binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	b = b[copy(e.x[:], b):]
	e.len = binary.BigEndian.Uint64(b)
	e.nx = int(e.len % chunk)
	return nil
}

// Sum256 returns the SHA-256 checksum of data.
func Sum256(data []byte) [Size]byte {
	var e Engine
	e.Reset()
	e.Update(data)
	return e.Digest().Sum()
}
