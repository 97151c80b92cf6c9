package benchhash

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	berrors "github.com/tamirms/benchhash/errors"
)

// DefaultSampleSize is the length of the buffer whose every prefix is
// checked by ValidateStreaming.
const DefaultSampleSize = 8

// NewSample returns length pseudo-random bytes drawn from a PCG generator
// seeded with seed.
func NewSample(length int, seed uint64) []byte {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	buf := make([]byte, length)
	for i := 0; i+8 <= len(buf); i += 8 {
		binary.LittleEndian.PutUint64(buf[i:], rng.Uint64())
	}
	if tail := len(buf) % 8; tail > 0 {
		v := rng.Uint64()
		start := len(buf) - tail
		for j := 0; j < tail; j++ {
			buf[start+j] = byte(v >> (j * 8))
		}
	}
	return buf
}

// ChunkBoundaries splits a prefix of length i into four contiguous chunks
// [0,l1) [l1,l2) [l2,l3) [l3,l4). Boundaries never decrease but may
// coincide, which yields empty chunks.
func ChunkBoundaries(i int) [4]int {
	return [4]int{i / 4, i / 2, i - i/4, i}
}

// ValidateStreaming checks that the streaming form of c matches its one-shot
// form on every prefix of sample.
//
// Each prefix is written as four chunks (see ChunkBoundaries) with an empty
// write before, between and after them, so empty writes are exercised at
// every boundary. It stops at the first prefix whose digests differ.
func ValidateStreaming(c Candidate, sample []byte, seed uint64) error {
	if c.Hash == nil {
		return fmt.Errorf("%w: %q", berrors.ErrInvalidCandidate, c.Name)
	}
	if !c.Streaming() {
		return fmt.Errorf("%w: %q", berrors.ErrNoStreaming, c.Name)
	}
	for i := 0; i <= len(sample); i++ {
		prefix := sample[:i]
		want := c.Hash(prefix, seed)

		h := c.NewStream(seed)
		prev := 0
		_, _ = h.Write(prefix[:0])
		for _, l := range ChunkBoundaries(i) {
			_, _ = h.Write(prefix[prev:l])
			_, _ = h.Write(prefix[l:l])
			prev = l
		}
		if got := h.Sum64(); got != want {
			return fmt.Errorf("%w: %s at length %d: streaming %#016x, one-shot %#016x",
				berrors.ErrStreamingMismatch, c.Name, i, got, want)
		}
	}
	return nil
}

// ValidateAll runs ValidateStreaming for every streaming candidate in
// parallel. Candidates without a streaming form are skipped. The first
// failure cancels the remaining checks and is returned. Validation is not
// timed; callers finish it before starting any benchmark run, so the
// parallel checks never compete with a measurement.
func ValidateAll(ctx context.Context, candidates []Candidate, sample []byte, seed uint64) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, c := range candidates {
		if !c.Streaming() {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return ValidateStreaming(c, sample, seed)
		})
	}
	return g.Wait()
}
