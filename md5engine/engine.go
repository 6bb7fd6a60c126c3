package md5engine

import (
	"encoding/binary"
	"hash"
)

const (
	// Size is the length of a finalized MD5 digest in bytes.
	Size = 16

	// BlockSize is the number of bytes consumed by one
	// compression.
	BlockSize = 64
)

const (
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
)

var _ hash.Hash = (*Engine)(nil)

// Engine holds the running MD5 state. The zero value must be
// Reset before use; New returns a ready engine.
type Engine struct {
	s  [4]uint32
	x  [BlockSize]byte
	nx int

	// message length in bits, low word first
	count [2]uint32
}

// New returns a freshly reset Engine.
func New() *Engine {
	en := new(Engine)
	en.Reset()

	return en
}

// Reset restores the initial chaining values and clears the
// buffer and bit counter.
func (en *Engine) Reset() {
	en.s = [4]uint32{init0, init1, init2, init3}
	en.x = [BlockSize]byte{}
	en.nx = 0
	en.count = [2]uint32{}
}

// Size returns Size.
func (en *Engine) Size() int { return Size }

// BlockSize returns BlockSize.
func (en *Engine) BlockSize() int { return BlockSize }

// Write absorbs p. Every complete 64-byte block is compressed
// immediately; fewer than BlockSize bytes stay buffered. It
// never returns an error.
func (en *Engine) Write(p []byte) (int, error) {
	nn := len(p)
	en.addBits(nn)

	if en.nx > 0 {
		n := copy(en.x[en.nx:], p)
		en.nx += n

		if en.nx == BlockSize {
			compress(&en.s, en.x[:])
			en.nx = 0
		}

		p = p[n:]
	}

	for len(p) >= BlockSize {
		compress(&en.s, p[:BlockSize])
		p = p[BlockSize:]
	}

	if len(p) > 0 {
		en.nx = copy(en.x[:], p)
	}

	return nn, nil
}

// addBits adds 8*n to the two-word bit counter, carrying
// into the high word when the low word wraps.
func (en *Engine) addBits(n int) {
	bits := uint64(n) << 3
	lo := uint32(bits)

	en.count[0] += lo
	if en.count[0] < lo {
		en.count[1]++
	}

	en.count[1] += uint32(bits >> 32)
}

// State returns the chaining values (A, B, C, D) as they
// stand. No padding or length is applied, so after absorbing
// whole blocks this is the intermediate state, not a digest.
func (en *Engine) State() [4]uint32 {
	return en.s
}

// AppendState appends the four chaining values to b, each as
// a little-endian 32-bit word.
func (en *Engine) AppendState(b []byte) []byte {
	return appendWords(b, en.s)
}

// Buffered returns the number of absorbed bytes not yet
// compressed. It is always below BlockSize.
func (en *Engine) Buffered() int {
	return en.nx
}

// BitLen returns the number of bits absorbed since the last
// Reset, modulo 2^64.
func (en *Engine) BitLen() uint64 {
	return uint64(en.count[1])<<32 | uint64(en.count[0])
}

// Sum appends the finalized digest to b. The receiver is
// left untouched, so absorption can continue afterwards.
func (en *Engine) Sum(b []byte) []byte {
	cp := *en
	sum := cp.checkSum()

	return append(b, sum[:]...)
}

func (en *Engine) checkSum() [Size]byte {
	lo, hi := en.count[0], en.count[1]

	var tmp [1 + 63 + 8]byte
	tmp[0] = 0x80

	pad := (55 - en.nx) & (BlockSize - 1)
	en.Write(tmp[:1+pad]) //nolint:errcheck // never fails

	binary.LittleEndian.PutUint32(tmp[:], lo)
	binary.LittleEndian.PutUint32(tmp[4:], hi)
	en.Write(tmp[:8]) //nolint:errcheck // never fails

	if en.nx != 0 {
		panic("md5engine: buffer not empty after padding")
	}

	var digest [Size]byte
	for i, w := range en.s {
		binary.LittleEndian.PutUint32(digest[4*i:], w)
	}

	return digest
}

// Sum returns the finalized MD5 digest of data.
func Sum(data []byte) [Size]byte {
	var en Engine

	en.Reset()
	en.Write(data) //nolint:errcheck // never fails

	return en.checkSum()
}

func appendWords(b []byte, s [4]uint32) []byte {
	for _, w := range s {
		b = binary.LittleEndian.AppendUint32(b, w)
	}

	return b
}
