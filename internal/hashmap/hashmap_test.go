package hashmap

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
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

func TestIncReturnsPreviousCount(t *testing.T) {
	m := New(xxhash.Sum64, 0)
	key := []byte("apple")
	for want := uint32(0); want < 5; want++ {
		if got := m.Inc(key); got != want {
			t.Fatalf("Inc #%d = %d, want %d", want, got, want)
		}
	}
	if got, ok := m.Get(key); !ok || got != 5 {
		t.Fatalf("Get = (%d, %v), want (5, true)", got, ok)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
}

func TestGetMissing(t *testing.T) {
	m := New(xxhash.Sum64, 0)
	m.Inc([]byte("a"))
	if _, ok := m.Get([]byte("b")); ok {
		t.Fatal("Get reported a key that was never inserted")
	}
}

// TestCountsSurviveGrowth inserts enough keys to force several resizes and
// checks that every count is preserved.
func TestCountsSurviveGrowth(t *testing.T) {
	rng := newTestRNG(t)
	m := New(xxhash.Sum64, 0)
	want := make(map[string]uint32)
	keys := make([][]byte, 5000)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("key-%d", i))
	}
	for range 20000 {
		k := keys[rng.IntN(len(keys))]
		if got := m.Inc(k); got != want[string(k)] {
			t.Fatalf("Inc(%q) = %d, want %d", k, got, want[string(k)])
		}
		want[string(k)]++
	}
	if m.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", m.Len(), len(want))
	}
	for k, c := range want {
		if got, ok := m.Get([]byte(k)); !ok || got != c {
			t.Fatalf("Get(%q) = (%d, %v), want (%d, true)", k, got, ok, c)
		}
	}
}

// TestConstantHash forces every key onto one probe chain, including the
// wrap-around from the last slot to the first.
func TestConstantHash(t *testing.T) {
	m := New(func([]byte) uint64 { return math.MaxUint64 }, 0)
	for i := range 100 {
		m.Inc([]byte{byte(i)})
	}
	for i := range 100 {
		if got, ok := m.Get([]byte{byte(i)}); !ok || got != 1 {
			t.Fatalf("Get(%d) = (%d, %v), want (1, true)", i, got, ok)
		}
	}
}

func TestSizeHint(t *testing.T) {
	for _, hint := range []int{-1, 0, 1, 14, 15, 1000} {
		m := New(xxhash.Sum64, hint)
		if len(m.slots) < minSlots {
			t.Errorf("hint %d: %d slots, want >= %d", hint, len(m.slots), minSlots)
		}
		if len(m.slots)*maxLoadNum/maxLoadDen < hint {
			t.Errorf("hint %d: %d slots cannot hold the hint without growing", hint, len(m.slots))
		}
	}
}

// TestFastRangeMonotonicity verifies that for a fixed n,
// h1 < h2 implies fastRange(h1,n) <= fastRange(h2,n).
func TestFastRangeMonotonicity(t *testing.T) {
	rng := newTestRNG(t)
	for i := 0; i < 10000; i++ {
		n := rng.Uint64N(math.MaxUint32) + 1
		h1, h2 := rng.Uint64(), rng.Uint64()
		if h1 > h2 {
			h1, h2 = h2, h1
		}
		if r1, r2 := fastRange(h1, n), fastRange(h2, n); r1 > r2 {
			t.Fatalf("iter %d: fastRange(0x%X, %d)=%d > fastRange(0x%X, %d)=%d", i, h1, n, r1, h2, n, r2)
		}
	}
}

// TestFastRangeRange verifies that the result is always in [0, n).
func TestFastRangeRange(t *testing.T) {
	rng := newTestRNG(t)
	for i := 0; i < 10000; i++ {
		n := rng.Uint64N(math.MaxUint32) + 1
		h := rng.Uint64()
		if got := fastRange(h, n); got >= n {
			t.Fatalf("iter %d: fastRange(0x%X, %d)=%d >= %d", i, h, n, got, n)
		}
	}
	if got := fastRange(math.MaxUint64, 16); got != 15 {
		t.Fatalf("fastRange(MaxUint64, 16) = %d, want 15", got)
	}
	if got := fastRange(0, 16); got != 0 {
		t.Fatalf("fastRange(0, 16) = %d, want 0", got)
	}
}

func BenchmarkInc(b *testing.B) {
	rng := newTestRNG(b)
	keys := make([][]byte, 1<<14)
	for i := range keys {
		keys[i] = binary.LittleEndian.AppendUint64(nil, rng.Uint64())
	}
	m := New(xxhash.Sum64, len(keys))
	b.ResetTimer()
	b.ReportAllocs()
	var sink uint32
	for i := range b.N {
		sink += m.Inc(keys[i%len(keys)])
	}
	_ = sink
}
