// SHA-256 block step: message schedule expansion and the compression rounds.
// Blocks are processed strictly one at a time.

package sha256

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/davecgh/go-spew/spew"

	"sha2sum.org/sha2sum/logging"
)

// State is the running hash value, eight 32-bit words.
type State [8]uint32

// Schedule is the message schedule derived from one block.
type Schedule [64]uint32

func smallSigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ (x >> 3)
}

func smallSigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ (x >> 10)
}

func bigSigma0(a uint32) uint32 {
	return bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
}

func bigSigma1(e uint32) uint32 {
	return bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
}

func ch(e, f, g uint32) uint32 {
	return (e & f) ^ (^e & g)
}

func maj(a, b, c uint32) uint32 {
	return (a & b) ^ (a & c) ^ (b & c)
}

// MessageSchedule expands one block into its 64 schedule words.
// Words 0-15 are the block read as big-endian integers, the rest follow
// the σ0/σ1 recurrence.
func MessageSchedule(block *[BlockSize]byte) Schedule {
	var w Schedule
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		w[i] = smallSigma1(w[i-2]) + smallSigma0(w[i-15]) + w[i-16] + w[i-7]
	}
	return w
}

// Compress runs the 64 rounds over one block's schedule and returns the
// next running state. It has no side effects on its inputs.
func Compress(state State, w *Schedule) State {
	trace := logging.IsLevelEnabled(logging.TRACE)

	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]
	for i := 0; i < 64; i++ {
		t1 := _K[i] + w[i] + ch(e, f, g) + h + bigSigma1(e)
		t2 := bigSigma0(a) + maj(a, b, c)

		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2

		if trace {
			logging.VPrint(logging.TRACE, "sha256 round", logging.LogFormat{
				"round": i,
				"vars":  fmt.Sprintf("%08x %08x %08x %08x %08x %08x %08x %08x", a, b, c, d, e, f, g, h),
			})
		}
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
	state[4] += e
	state[5] += f
	state[6] += g
	state[7] += h
	return state
}

// block compresses the accumulation buffer into the running state.
// It must only be reached with a full buffer.
func (e *Engine) block() {
	if e.nx != chunk {
		panic(fmt.Sprintf("sha256: block processed with %d of %d buffered bytes", e.nx, chunk))
	}

	w := MessageSchedule(&e.x)
	if logging.IsLevelEnabled(logging.TRACE) {
		logging.VPrint(logging.TRACE, "sha256 block", logging.LogFormat{"schedule": spew.Sdump(w)})
	}
	e.h = Compress(e.h, &w)
	e.nx = 0
}
