package benchhash

import "hash"

// DefaultSeed is the seed shared by every candidate within one run.
const DefaultSeed uint64 = 34432

// HashFunc computes the one-shot digest of data under seed.
type HashFunc func(data []byte, seed uint64) uint64

// StreamFunc creates the incremental form of a hash, initialized with seed.
// Write absorbs input and Sum64 finalizes; the digest must equal the
// one-shot HashFunc over the concatenation of everything written.
type StreamFunc func(seed uint64) hash.Hash64

// Candidate is a named hash function under benchmark.
type Candidate struct {
	Name      string
	Hash      HashFunc
	NewStream StreamFunc // nil when the hash has no streaming form
}

// Streaming reports whether c has an incremental form.
func (c Candidate) Streaming() bool { return c.NewStream != nil }

// StreamingVariant returns a candidate that hashes through c's incremental
// form: a fresh stream per call, one Write, then Sum64. The variant has no
// streaming form of its own, so validation skips it. It returns c unchanged
// when c has no streaming form.
func (c Candidate) StreamingVariant() Candidate {
	if c.NewStream == nil {
		return c
	}
	newStream := c.NewStream
	return Candidate{
		Name: c.Name + " streaming",
		Hash: func(data []byte, seed uint64) uint64 {
			h := newStream(seed)
			_, _ = h.Write(data)
			return h.Sum64()
		},
	}
}
