package benchhash

import "go.uber.org/zap"

const (
	// DefaultTargetHashes is the number of key hashes each corpus phase
	// aims for, split across R = target/N passes over the corpus.
	DefaultTargetHashes uint64 = 1 << 32

	// DefaultSmallBulkSize and DefaultSmallBulkReps give 16 GiB hashed in total.
	DefaultSmallBulkSize = 1 << 16
	DefaultSmallBulkReps = 1 << 18

	// DefaultLargeBulkSize and DefaultLargeBulkReps give 16 GiB hashed in total.
	DefaultLargeBulkSize = 1 << 24
	DefaultLargeBulkReps = 1024
)

// Phase identifies one of the engine's timed workloads.
type Phase int

const (
	// PhaseWords hashes every corpus key in turn. Reported in elements/sec.
	PhaseWords Phase = iota
	// PhaseHashmap increments a per-key counter in a hashmap keyed by the
	// candidate. Reported in elements/sec.
	PhaseHashmap
	// PhaseBulkSmall repeatedly hashes a small buffer, 64 KiB by
	// default. Reported in bytes/sec.
	PhaseBulkSmall
	// PhaseBulkLarge repeatedly hashes a large buffer, 16 MiB by
	// default. Reported in bytes/sec.
	PhaseBulkLarge
)

var phaseNames = [...]string{"words", "hashmap", "bulk-small", "bulk-large"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Option is a functional option for configuring a benchmark run.
type Option func(*runConfig)

type runConfig struct {
	seed          uint64
	targetHashes  uint64
	smallBulkSize int
	smallBulkReps int
	largeBulkSize int
	largeBulkReps int
	phases        [4]bool
	logger        *zap.Logger
}

func defaultRunConfig() *runConfig {
	return &runConfig{
		seed:          DefaultSeed,
		targetHashes:  DefaultTargetHashes,
		smallBulkSize: DefaultSmallBulkSize,
		smallBulkReps: DefaultSmallBulkReps,
		largeBulkSize: DefaultLargeBulkSize,
		largeBulkReps: DefaultLargeBulkReps,
		phases:        [4]bool{true, true, true, true},
		logger:        zap.NewNop(),
	}
}

// WithSeed sets the seed passed to every hash call.
func WithSeed(seed uint64) Option {
	return func(c *runConfig) {
		c.seed = seed
	}
}

// WithTargetHashes sets the total number of key hashes for the corpus phases.
func WithTargetHashes(n uint64) Option {
	return func(c *runConfig) {
		c.targetHashes = n
	}
}

// WithSmallBulk sets the buffer size and repetition count of the small bulk phase.
func WithSmallBulk(size, reps int) Option {
	return func(c *runConfig) {
		c.smallBulkSize = size
		c.smallBulkReps = reps
	}
}

// WithLargeBulk sets the buffer size and repetition count of the large bulk phase.
func WithLargeBulk(size, reps int) Option {
	return func(c *runConfig) {
		c.largeBulkSize = size
		c.largeBulkReps = reps
	}
}

// WithPhases restricts the run to the listed phases. Skipped phases report
// zero throughput.
func WithPhases(phases ...Phase) Option {
	return func(c *runConfig) {
		c.phases = [4]bool{}
		for _, p := range phases {
			if p >= 0 && int(p) < len(c.phases) {
				c.phases[p] = true
			}
		}
	}
}

// WithLogger sets the logger for per-phase debug output.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *runConfig) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}
