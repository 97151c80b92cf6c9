package benchhash

import (
	"fmt"

	"go.uber.org/zap"

	berrors "github.com/tamirms/benchhash/errors"
	"github.com/tamirms/benchhash/internal/hashmap"
)

// Result holds the throughput of one candidate across the four phases.
type Result struct {
	Name string

	Words   float64 // corpus keys hashed per second
	Hashmap float64 // corpus keys counted in the hash table per second
	Bulk64K float64 // bytes per second over the small buffer
	Bulk16M float64 // bytes per second over the large buffer

	// Sink accumulates every digest computed during the run so the calls
	// cannot be optimized away. It has no meaning beyond that.
	Sink uint64
}

// bulkDivergence is the largest ratio between the two bulk throughputs that
// is still plausible for one algorithm.
const bulkDivergence = 10

// BulkConsistent reports whether the small and large buffer throughputs are
// within an order of magnitude of each other. A larger gap points at a
// measurement problem rather than at the hash. Results with a skipped bulk
// phase are considered consistent.
func (r Result) BulkConsistent() bool {
	if r.Bulk64K <= 0 || r.Bulk16M <= 0 {
		return true
	}
	return r.Bulk64K <= bulkDivergence*r.Bulk16M && r.Bulk16M <= bulkDivergence*r.Bulk64K
}

// Repetitions returns how many passes over n keys approximate target hashes,
// target/n. Unlike a plain integer division it never returns 0 for a
// non-empty corpus: a corpus with more keys than target still gets one
// timed pass, so the rate is never computed over zero work.
func Repetitions(target uint64, n int) uint64 {
	if n <= 0 {
		return 0
	}
	r := target / uint64(n)
	if r == 0 {
		r = 1
	}
	return r
}

// Run benchmarks candidate c over corpus.
//
// Phases run sequentially on the calling goroutine. An empty corpus or a
// candidate without a one-shot hash is rejected before any timing starts.
func Run(corpus *Corpus, c Candidate, opts ...Option) (Result, error) {
	if corpus == nil || corpus.Len() == 0 {
		return Result{}, berrors.ErrEmptyCorpus
	}
	if c.Hash == nil {
		return Result{}, fmt.Errorf("%w: %q", berrors.ErrInvalidCandidate, c.Name)
	}

	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.smallBulkSize < 1 || cfg.largeBulkSize < 1 || cfg.smallBulkReps < 0 || cfg.largeBulkReps < 0 {
		return Result{}, fmt.Errorf("%w: bulk sizes must be positive and repetitions non-negative",
			berrors.ErrInvalidConfig)
	}

	e := &engine{
		keys:   corpus.keys,
		hash:   c.Hash,
		seed:   cfg.seed,
		reps:   Repetitions(cfg.targetHashes, corpus.Len()),
		logger: cfg.logger.With(zap.String("candidate", c.Name)),
	}

	res := Result{Name: c.Name}
	if cfg.phases[PhaseWords] {
		res.Words = e.words()
	}
	if cfg.phases[PhaseHashmap] {
		res.Hashmap = e.lookups()
	}
	if cfg.phases[PhaseBulkSmall] {
		res.Bulk64K = e.bulk(PhaseBulkSmall, cfg.smallBulkSize, cfg.smallBulkReps)
	}
	if cfg.phases[PhaseBulkLarge] {
		res.Bulk16M = e.bulk(PhaseBulkLarge, cfg.largeBulkSize, cfg.largeBulkReps)
	}
	res.Sink = e.sink
	return res, nil
}

// engine carries the state of one Run.
type engine struct {
	keys   [][]byte
	hash   HashFunc
	seed   uint64
	reps   uint64
	sink   uint64
	logger *zap.Logger
}

// words hashes every key R times after one untimed warm-up pass.
func (e *engine) words() float64 {
	hash, seed := e.hash, e.seed
	var sink uint64
	for _, k := range e.keys {
		sink += hash(k, seed)
	}

	s := startSample()
	for r := uint64(0); r < e.reps; r++ {
		for _, k := range e.keys {
			sink += hash(k, seed)
		}
	}
	s = s.stop()

	e.sink += sink
	return e.record(PhaseWords, s, e.reps*uint64(len(e.keys)))
}

// lookups counts every key R times in a table bucketed by the candidate.
// The untimed first pass inserts all keys so the timed loop measures
// lookup and increment only.
func (e *engine) lookups() float64 {
	hash, seed := e.hash, e.seed
	m := hashmap.New(func(key []byte) uint64 { return hash(key, seed) }, len(e.keys))
	for _, k := range e.keys {
		m.Inc(k)
	}

	var sink uint64
	s := startSample()
	for r := uint64(0); r < e.reps; r++ {
		for _, k := range e.keys {
			sink += uint64(m.Inc(k))
		}
	}
	s = s.stop()

	e.sink += sink
	return e.record(PhaseHashmap, s, e.reps*uint64(len(e.keys)))
}

// bulk hashes a zeroed buffer reps times, bumping its first byte between
// calls so no two consecutive inputs are identical.
func (e *engine) bulk(p Phase, size, reps int) float64 {
	hash, seed := e.hash, e.seed
	buf := make([]byte, size)
	sink := hash(buf, seed)

	s := startSample()
	for range reps {
		sink += hash(buf, seed)
		buf[0]++
	}
	s = s.stop()

	e.sink += sink
	return e.record(p, s, uint64(reps)*uint64(size))
}

func (e *engine) record(p Phase, s Sample, n uint64) float64 {
	rate := s.Rate(n)
	e.logger.Debug("phase complete",
		zap.Stringer("phase", p),
		zap.Uint64("units", n),
		zap.Float64("seconds", s.Seconds()),
		zap.Float64("rate", rate),
	)
	return rate
}
