package wyhash

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"
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

func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Uint32())
	}
	return b
}

func TestSum64Empty(t *testing.T) {
	if got := Sum64(nil, 7); got != 7^k0 {
		t.Fatalf("Sum64(nil, 7) = %#x, want %#x", got, 7^k0)
	}
}

// TestDigestEverySplit writes every input of up to 200 bytes as two chunks
// split at every offset. Lengths cross the 16- and 48-byte thresholds.
func TestDigestEverySplit(t *testing.T) {
	rng := newTestRNG(t)
	data := randomBytes(rng, 200)
	for n := 0; n <= len(data); n++ {
		want := Sum64(data[:n], 34432)
		for split := 0; split <= n; split++ {
			d := New(34432)
			_, _ = d.Write(data[:split])
			_, _ = d.Write(data[split:n])
			if got := d.Sum64(); got != want {
				t.Fatalf("n=%d split=%d: got %#x, want %#x", n, split, got, want)
			}
		}
	}
}

// TestDigestRandomChunks feeds long inputs in random chunk sizes, empty
// chunks included.
func TestDigestRandomChunks(t *testing.T) {
	rng := newTestRNG(t)
	for range 200 {
		data := randomBytes(rng, rng.IntN(2000))
		seed := rng.Uint64()
		d := New(seed)
		for p := data; len(p) > 0; {
			k := min(rng.IntN(100), len(p))
			_, _ = d.Write(p[:k])
			p = p[k:]
		}
		if got, want := d.Sum64(), Sum64(data, seed); got != want {
			t.Fatalf("len=%d: got %#x, want %#x", len(data), got, want)
		}
	}
}

func TestDigestSumDoesNotFinalize(t *testing.T) {
	rng := newTestRNG(t)
	data := randomBytes(rng, 150)
	d := New(1)
	_, _ = d.Write(data[:100])
	if got, want := d.Sum64(), Sum64(data[:100], 1); got != want {
		t.Fatalf("intermediate Sum64 = %#x, want %#x", got, want)
	}
	_, _ = d.Write(data[100:])
	if got, want := d.Sum64(), Sum64(data, 1); got != want {
		t.Fatalf("Sum64 after more writes = %#x, want %#x", got, want)
	}
}

func TestDigestReset(t *testing.T) {
	d := New(9)
	_, _ = d.Write(bytes.Repeat([]byte("x"), 500))
	d.Reset()
	_, _ = d.Write([]byte("abc"))
	if got, want := d.Sum64(), Sum64([]byte("abc"), 9); got != want {
		t.Fatalf("after Reset = %#x, want %#x", got, want)
	}
	want := binary.BigEndian.AppendUint64([]byte{0xaa}, Sum64([]byte("abc"), 9))
	if got := d.Sum([]byte{0xaa}); !bytes.Equal(got, want) {
		t.Fatalf("Sum = %x, want %x", got, want)
	}
}

func TestSeedMatters(t *testing.T) {
	for _, n := range []int{1, 4, 7, 8, 16, 17, 49, 100} {
		data := bytes.Repeat([]byte{0x5a}, n)
		if Sum64(data, 1) == Sum64(data, 2) {
			t.Errorf("len %d: seeds 1 and 2 collide", n)
		}
	}
}

func BenchmarkSum64(b *testing.B) {
	buf := make([]byte, 1<<16)
	b.SetBytes(int64(len(buf)))
	var total uint64
	for range b.N {
		total += Sum64(buf, 34432)
	}
	_ = total
}
