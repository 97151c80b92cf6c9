package benchhash

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	berrors "github.com/tamirms/benchhash/errors"
)

// Corpus is an ordered, immutable set of non-empty benchmark keys.
type Corpus struct {
	keys  [][]byte
	bytes int
}

// NewCorpus builds a corpus from keys, dropping empty ones. The key bytes are
// copied, so the caller may reuse the slices afterwards.
// Returns ErrEmptyCorpus when no non-empty key remains.
func NewCorpus(keys [][]byte) (*Corpus, error) {
	total := 0
	for _, k := range keys {
		total += len(k)
	}
	arena := make([]byte, 0, total)
	c := &Corpus{keys: make([][]byte, 0, len(keys))}
	for _, k := range keys {
		if len(k) == 0 {
			continue
		}
		start := len(arena)
		arena = append(arena, k...)
		c.keys = append(c.keys, arena[start:len(arena):len(arena)])
		c.bytes += len(k)
	}
	if len(c.keys) == 0 {
		return nil, berrors.ErrEmptyCorpus
	}
	return c, nil
}

// LoadCorpus reads whitespace-separated keys from the file at path.
//
// The file is memory-mapped read-only and scanned once; keys are copied into
// the corpus before the mapping is released.
func LoadCorpus(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat corpus %s: %w", path, err)
	}
	if info.Size() == 0 {
		// mmap rejects zero-length mappings.
		return nil, fmt.Errorf("%s: %w", path, berrors.ErrEmptyCorpus)
	}
	fadviseSequential(int(f.Fd()), 0, info.Size())

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap corpus %s: %w", path, err)
	}
	madviseSequential(m)

	c, err := NewCorpus(splitFields(m))
	unmapErr := m.Unmap()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if unmapErr != nil {
		return nil, fmt.Errorf("unmap corpus %s: %w", path, unmapErr)
	}
	return c, nil
}

// splitFields splits data around runs of ASCII whitespace. The returned
// slices alias data.
func splitFields(data []byte) [][]byte {
	var fields [][]byte
	start := -1
	for i, b := range data {
		if isSpace(b) {
			if start >= 0 {
				fields = append(fields, data[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, data[start:])
	}
	return fields
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Len returns the number of keys.
func (c *Corpus) Len() int { return len(c.keys) }

// Bytes returns the total length of all keys.
func (c *Corpus) Bytes() int { return c.bytes }

// Key returns the i-th key. The slice must not be modified.
func (c *Corpus) Key(i int) []byte { return c.keys[i] }
