// Package hashmap implements an open-addressing counter map keyed by byte
// strings. The hash function is supplied by the caller, so the cost of a
// candidate hash can be measured inside a real probe/compare/insert path.
package hashmap

import (
	"bytes"
	"math/bits"
)

// HashFunc hashes a key. Seeding is the caller's concern.
type HashFunc func(key []byte) uint64

const (
	minSlots = 16

	// Grow once occupancy would exceed maxLoadNum/maxLoadDen.
	maxLoadNum = 7
	maxLoadDen = 8
)

type slot struct {
	hash  uint64
	key   []byte
	count uint32
	used  bool
}

// Map counts occurrences of byte-string keys.
//
// Keys are stored by reference: the caller must not modify a key slice after
// it has been inserted. Map is not safe for concurrent use.
type Map struct {
	hash  HashFunc
	slots []slot
	n     int
}

// New returns an empty map using hash for bucketing. sizeHint pre-sizes the
// table for that many distinct keys; zero or negative means the minimum size.
func New(hash HashFunc, sizeHint int) *Map {
	size := minSlots
	for size*maxLoadNum/maxLoadDen < sizeHint {
		size *= 2
	}
	return &Map{hash: hash, slots: make([]slot, size)}
}

// Len returns the number of distinct keys.
func (m *Map) Len() int { return m.n }

// Get returns the count stored for key.
func (m *Map) Get(key []byte) (uint32, bool) {
	s := &m.slots[m.find(m.hash(key), key)]
	if !s.used {
		return 0, false
	}
	return s.count, true
}

// Inc increments the count for key, inserting it with zero first if absent,
// and returns the count as it was before the increment.
func (m *Map) Inc(key []byte) uint32 {
	h := m.hash(key)
	i := m.find(h, key)
	s := &m.slots[i]
	if !s.used {
		if (m.n+1)*maxLoadDen > len(m.slots)*maxLoadNum {
			m.grow()
			i = m.find(h, key)
			s = &m.slots[i]
		}
		s.hash, s.key, s.used = h, key, true
		m.n++
	}
	old := s.count
	s.count++
	return old
}

// find returns the index of the slot holding key, or of the empty slot where
// key would be inserted. The load factor guarantees an empty slot exists.
func (m *Map) find(h uint64, key []byte) int {
	n := len(m.slots)
	i := int(fastRange(h, uint64(n)))
	for {
		s := &m.slots[i]
		if !s.used || (s.hash == h && bytes.Equal(s.key, key)) {
			return i
		}
		i++
		if i == n {
			i = 0
		}
	}
}

func (m *Map) grow() {
	old := m.slots
	m.slots = make([]slot, 2*len(old))
	n := uint64(len(m.slots))
	for _, s := range old {
		if !s.used {
			continue
		}
		i := fastRange(s.hash, n)
		for m.slots[i].used {
			i++
			if i == n {
				i = 0
			}
		}
		m.slots[i] = s
	}
}

// fastRange maps a 64-bit hash uniformly to [0, n).
// Uses the "fastrange" technique: multiply and take high bits, which draws
// on the high bits of the hash instead of the low bits a mask would use.
func fastRange(hash, n uint64) uint64 {
	hi, _ := bits.Mul64(hash, n)
	return hi
}
