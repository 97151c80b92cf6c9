// Package hashes provides the library-backed hash candidates benchmarked by
// cmd/benchhash.
package hashes

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	metro "github.com/dgryski/go-metro"
	"github.com/minio/highwayhash"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	"github.com/tamirms/benchhash"
	berrors "github.com/tamirms/benchhash/errors"
	"github.com/tamirms/benchhash/internal/wyhash"
)

// All returns every registered candidate in report order. Each candidate
// with a streaming form is followed by its streaming variant, so the
// incremental path is benchmarked alongside the one-shot one.
func All() []benchhash.Candidate {
	base := []benchhash.Candidate{
		Wyhash(),
		XXHash64(),
		XXH3(),
		Murmur3(),
		Metro(),
		SipHash(),
		HighwayHash(),
		Maphash(),
	}
	all := make([]benchhash.Candidate, 0, 2*len(base))
	for _, c := range base {
		all = append(all, c)
		if c.Streaming() {
			all = append(all, c.StreamingVariant())
		}
	}
	return all
}

// Names returns the names of every registered candidate in report order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the named registered candidates in the order given.
// Unknown names yield ErrUnknownCandidate.
func Lookup(names ...string) ([]benchhash.Candidate, error) {
	return Select(All(), names...)
}

// Select returns the named candidates from from, in the order given.
// Unknown names yield ErrUnknownCandidate.
func Select(from []benchhash.Candidate, names ...string) ([]benchhash.Candidate, error) {
	byName := make(map[string]benchhash.Candidate, len(from))
	for _, c := range from {
		byName[c.Name] = c
	}
	out := make([]benchhash.Candidate, 0, len(names))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", berrors.ErrUnknownCandidate, name)
		}
		out = append(out, c)
	}
	return out, nil
}

// Wyhash is the runtime's portable wyhash with an incremental form that
// buffers one 48-byte block.
func Wyhash() benchhash.Candidate {
	return benchhash.Candidate{
		Name: "wyhash",
		Hash: wyhash.Sum64,
		NewStream: func(seed uint64) hash.Hash64 {
			return wyhash.New(seed)
		},
	}
}

// XXHash64 is cespare's XXH64.
func XXHash64() benchhash.Candidate {
	return benchhash.Candidate{
		Name: "xxHash64",
		Hash: func(data []byte, seed uint64) uint64 {
			var d xxhash.Digest
			d.ResetWithSeed(seed)
			_, _ = d.Write(data)
			return d.Sum64()
		},
		NewStream: func(seed uint64) hash.Hash64 {
			return xxhash.NewWithSeed(seed)
		},
	}
}

// XXH3 is zeebo's XXH3-64, which picks an AVX2, SSE2 or scalar kernel
// at startup.
func XXH3() benchhash.Candidate {
	return benchhash.Candidate{
		Name: "XXH3",
		Hash: xxh3.HashSeed,
		NewStream: func(seed uint64) hash.Hash64 {
			return xxh3.NewSeed(seed)
		},
	}
}

// Murmur3 is the low half of MurmurHash3 x64-128. The seed is truncated to
// 32 bits, the width murmur3 accepts.
func Murmur3() benchhash.Candidate {
	return benchhash.Candidate{
		Name: "murmur3",
		Hash: func(data []byte, seed uint64) uint64 {
			return murmur3.Sum64WithSeed(data, uint32(seed))
		},
		NewStream: func(seed uint64) hash.Hash64 {
			return murmur3.New64WithSeed(uint32(seed))
		},
	}
}

// Metro is MetroHash64. It has no streaming form.
func Metro() benchhash.Candidate {
	return benchhash.Candidate{
		Name: "metro",
		Hash: metro.Hash64,
	}
}

// SipHash is SipHash-2-4 keyed with (seed, ^seed).
func SipHash() benchhash.Candidate {
	return benchhash.Candidate{
		Name: "siphash",
		Hash: func(data []byte, seed uint64) uint64 {
			return siphash.Hash(seed, ^seed, data)
		},
		NewStream: func(seed uint64) hash.Hash64 {
			var key [16]byte
			binary.LittleEndian.PutUint64(key[0:8], seed)
			binary.LittleEndian.PutUint64(key[8:16], ^seed)
			return siphash.New(key[:])
		},
	}
}

// HighwayHash is HighwayHash-64 with a 256-bit key expanded from the seed.
func HighwayHash() benchhash.Candidate {
	return benchhash.Candidate{
		Name: "highwayhash",
		Hash: func(data []byte, seed uint64) uint64 {
			key := highwayKey(seed)
			return highwayhash.Sum64(data, key[:])
		},
		NewStream: func(seed uint64) hash.Hash64 {
			key := highwayKey(seed)
			h, err := highwayhash.New64(key[:])
			if err != nil {
				// Only returned for keys that are not 32 bytes long.
				panic(err)
			}
			return h
		},
	}
}

const highwayKeySize = 32

// highwayKey expands seed into the four words of a HighwayHash key.
// Each word is the seed multiplied by a distinct odd constant.
func highwayKey(seed uint64) [highwayKeySize]byte {
	var key [highwayKeySize]byte
	binary.LittleEndian.PutUint64(key[0:8], seed)
	binary.LittleEndian.PutUint64(key[8:16], seed*0x9e3779b97f4a7c15)
	binary.LittleEndian.PutUint64(key[16:24], seed*0xc2b2ae3d27d4eb4f)
	binary.LittleEndian.PutUint64(key[24:32], seed*0x165667b19e3779f9)
	return key
}

// Maphash is the Go runtime's map hash. maphash seeds are opaque, so the
// numeric seed is ignored; a seed is drawn once when the candidate is built
// and shared by its one-shot and streaming forms.
func Maphash() benchhash.Candidate {
	s := maphash.MakeSeed()
	return benchhash.Candidate{
		Name: "maphash",
		Hash: func(data []byte, _ uint64) uint64 {
			return maphash.Bytes(s, data)
		},
		NewStream: func(uint64) hash.Hash64 {
			var h maphash.Hash
			h.SetSeed(s)
			return &h
		},
	}
}
