// Package wyhash implements the 64-bit wyhash variant used by the Go
// runtime's portable map hash, with a one-shot Sum64 and an incremental
// Digest that produces the same digest for any split of its input.
package wyhash

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

var _ hash.Hash64 = (*Digest)(nil)

// wyhash secrets from the reference implementation.
const (
	k0 = uint64(0xa0761d6478bd642f)
	k1 = uint64(0xe7037ed1a0b428db)
	k2 = uint64(0x8ebc6af09c88c6e3)
	k3 = uint64(0x589965cc75374cc3)
	k4 = uint64(0x1d8e4e27c47d124f)
)

// blockSize is the stride of the three-lane main loop.
const blockSize = 48

// Sum64 returns the wyhash digest of data under seed.
func Sum64(data []byte, seed uint64) uint64 {
	var a, c uint64
	n := len(data)
	seed ^= k0

	switch {
	case n == 0:
		return seed
	case n < 4:
		a = uint64(data[0]) | uint64(data[n>>1])<<8 | uint64(data[n-1])<<16
	case n == 4:
		a = uint64(binary.LittleEndian.Uint32(data))
		c = a
	case n < 8:
		a = uint64(binary.LittleEndian.Uint32(data))
		c = uint64(binary.LittleEndian.Uint32(data[n-4:]))
	case n == 8:
		a = binary.LittleEndian.Uint64(data)
		c = a
	case n <= 16:
		a = binary.LittleEndian.Uint64(data)
		c = binary.LittleEndian.Uint64(data[n-8:])
	default:
		p := data
		if len(p) > blockSize {
			s1, s2 := seed, seed
			for len(p) > blockSize {
				seed, s1, s2 = mixBlock(p, seed, s1, s2)
				p = p[blockSize:]
			}
			seed ^= s1 ^ s2
		}
		for len(p) > 16 {
			seed = mix(binary.LittleEndian.Uint64(p)^k1, binary.LittleEndian.Uint64(p[8:])^seed)
			p = p[16:]
		}
		a = binary.LittleEndian.Uint64(data[n-16:])
		c = binary.LittleEndian.Uint64(data[n-8:])
	}
	return mix(k4^uint64(n), mix(a^k1, c^seed))
}

// Digest is the incremental form of Sum64.
//
// A 48-byte block is only mixed once more input is known to follow it, which
// is the condition the one-shot loop uses; up to one block stays buffered.
type Digest struct {
	seed   uint64 // caller's seed
	s0     uint64
	s1     uint64
	s2     uint64
	total  int
	mixed  bool // at least one block has been mixed
	last   [16]byte
	buf    [blockSize]byte
	buffed int
}

// New returns a Digest seeded with seed.
func New(seed uint64) *Digest {
	d := &Digest{seed: seed}
	d.Reset()
	return d
}

// Reset restores the initial state, keeping the seed.
func (d *Digest) Reset() {
	*d = Digest{seed: d.seed}
	d.s0 = d.seed ^ k0
	d.s1, d.s2 = d.s0, d.s0
}

// Write absorbs p. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)
	d.total += n
	if d.buffed+n <= blockSize {
		d.buffed += copy(d.buf[d.buffed:], p)
		return n, nil
	}
	if d.buffed > 0 {
		k := copy(d.buf[d.buffed:], p)
		p = p[k:]
		d.block(d.buf[:])
		d.buffed = 0
	}
	for len(p) > blockSize {
		d.block(p)
		p = p[blockSize:]
	}
	d.buffed = copy(d.buf[:], p)
	return n, nil
}

func (d *Digest) block(b []byte) {
	d.s0, d.s1, d.s2 = mixBlock(b, d.s0, d.s1, d.s2)
	copy(d.last[:], b[blockSize-16:blockSize])
	d.mixed = true
}

// Sum64 returns the digest of everything written so far without changing
// the state.
func (d *Digest) Sum64() uint64 {
	pending := d.buf[:d.buffed]
	if !d.mixed {
		return Sum64(pending, d.seed)
	}
	seed := d.s0 ^ d.s1 ^ d.s2
	p := pending
	for len(p) > 16 {
		seed = mix(binary.LittleEndian.Uint64(p)^k1, binary.LittleEndian.Uint64(p[8:])^seed)
		p = p[16:]
	}
	// The final 16 bytes may reach back into the last mixed block.
	var tail [16 + blockSize]byte
	copy(tail[:], d.last[:])
	copy(tail[16:], pending)
	end := 16 + len(pending)
	a := binary.LittleEndian.Uint64(tail[end-16:])
	c := binary.LittleEndian.Uint64(tail[end-8:])
	return mix(k4^uint64(d.total), mix(a^k1, c^seed))
}

// Sum appends the big-endian digest to b.
func (d *Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, d.Sum64())
}

// Size returns the digest size in bytes.
func (d *Digest) Size() int { return 8 }

// BlockSize returns the block size of the main loop.
func (d *Digest) BlockSize() int { return blockSize }

func mixBlock(b []byte, s0, s1, s2 uint64) (uint64, uint64, uint64) {
	s0 = mix(binary.LittleEndian.Uint64(b)^k1, binary.LittleEndian.Uint64(b[8:])^s0)
	s1 = mix(binary.LittleEndian.Uint64(b[16:])^k2, binary.LittleEndian.Uint64(b[24:])^s1)
	s2 = mix(binary.LittleEndian.Uint64(b[32:])^k3, binary.LittleEndian.Uint64(b[40:])^s2)
	return s0, s1, s2
}

func mix(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return hi ^ lo
}
