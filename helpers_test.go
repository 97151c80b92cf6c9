package benchhash

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math/rand/v2"
	"testing"

	"github.com/cespare/xxhash/v2"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// xxhashCandidate is a correct streaming candidate.
func xxhashCandidate() Candidate {
	return Candidate{
		Name: "xxHash64",
		Hash: func(data []byte, seed uint64) uint64 {
			d := xxhash.NewWithSeed(seed)
			_, _ = d.Write(data)
			return d.Sum64()
		},
		NewStream: func(seed uint64) hash.Hash64 { return xxhash.NewWithSeed(seed) },
	}
}

// chunkSensitive wraps a hash.Hash64 and perturbs the digest whenever any
// single Write carries fewer than minChunk bytes, empty writes included
// unless allowEmpty is set.
type chunkSensitive struct {
	hash.Hash64
	minChunk   int
	allowEmpty bool
	broken     bool
}

func (c *chunkSensitive) Write(p []byte) (int, error) {
	if len(p) < c.minChunk && (len(p) > 0 || !c.allowEmpty) {
		c.broken = true
	}
	return c.Hash64.Write(p)
}

func (c *chunkSensitive) Sum64() uint64 {
	if c.broken {
		return c.Hash64.Sum64() ^ 1
	}
	return c.Hash64.Sum64()
}

// brokenCandidate returns a candidate whose streaming form misbehaves on
// writes shorter than minChunk.
func brokenCandidate(minChunk int, allowEmpty bool) Candidate {
	c := xxhashCandidate()
	c.Name = "broken"
	c.NewStream = func(seed uint64) hash.Hash64 {
		return &chunkSensitive{Hash64: xxhash.NewWithSeed(seed), minChunk: minChunk, allowEmpty: allowEmpty}
	}
	return c
}

// recordingStream records the length of every write.
type recordingStream struct {
	hash.Hash64
	writes *[]int
}

func (r recordingStream) Write(p []byte) (int, error) {
	*r.writes = append(*r.writes, len(p))
	return r.Hash64.Write(p)
}

// countingStream counts writes across every stream sharing n.
type countingStream struct {
	recordingStream
	n *int
}

func (c countingStream) Write(p []byte) (int, error) {
	*c.n++
	return c.recordingStream.Write(p)
}

func mustCorpus(t testing.TB, keys ...string) *Corpus {
	t.Helper()
	raw := make([][]byte, len(keys))
	for i, k := range keys {
		raw[i] = []byte(k)
	}
	c, err := NewCorpus(raw)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
