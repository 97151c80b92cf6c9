// Package config holds the benchhash configuration file format.
package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/tamirms/benchhash"
	berrors "github.com/tamirms/benchhash/errors"
)

// DefaultCorpus is the word list used when no corpus is configured.
const DefaultCorpus = "/usr/share/dict/words"

type commonConfig struct {
	Corpus     string   `toml:"corpus"`
	Seed       uint64   `toml:"seed"`
	LogLevel   string   `toml:"log-level"`
	Candidates []string `toml:"candidates"`
}

type validateConfig struct {
	SampleSize int `toml:"sample-size"`
}

type benchConfig struct {
	TargetHashes  uint64 `toml:"target-hashes"`
	SmallBulkSize int    `toml:"small-bulk-size"`
	SmallBulkReps int    `toml:"small-bulk-reps"`
	LargeBulkSize int    `toml:"large-bulk-size"`
	LargeBulkReps int    `toml:"large-bulk-reps"`
}

// Config is the top-level configuration.
type Config struct {
	Common     commonConfig   `toml:"common"`
	Validation validateConfig `toml:"validate"`
	Bench      benchConfig    `toml:"bench"`
}

// New returns a config with the default settings. An empty candidate list
// selects every registered candidate.
func New() *Config {
	return &Config{
		Common: commonConfig{
			Corpus:   DefaultCorpus,
			Seed:     benchhash.DefaultSeed,
			LogLevel: "info",
		},
		Validation: validateConfig{
			SampleSize: benchhash.DefaultSampleSize,
		},
		Bench: benchConfig{
			TargetHashes:  benchhash.DefaultTargetHashes,
			SmallBulkSize: benchhash.DefaultSmallBulkSize,
			SmallBulkReps: benchhash.DefaultSmallBulkReps,
			LargeBulkSize: benchhash.DefaultLargeBulkSize,
			LargeBulkReps: benchhash.DefaultLargeBulkReps,
		},
	}
}

// Parse overlays the TOML file at filename onto cfg. An empty filename
// leaves cfg untouched.
func Parse(filename string, cfg *Config) error {
	if filename == "" {
		return nil
	}
	md, err := toml.DecodeFile(filename, cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", berrors.ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q in %s", berrors.ErrInvalidConfig, undecoded[0].String(), filename)
	}
	return nil
}

// Validate checks the settings for values the harness cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Common.Corpus == "":
		return fmt.Errorf("%w: corpus path is empty", berrors.ErrInvalidConfig)
	case c.Validation.SampleSize < 0:
		return fmt.Errorf("%w: sample-size %d is negative", berrors.ErrInvalidConfig, c.Validation.SampleSize)
	case c.Bench.TargetHashes == 0:
		return fmt.Errorf("%w: target-hashes must be positive", berrors.ErrInvalidConfig)
	case c.Bench.SmallBulkSize < 1 || c.Bench.LargeBulkSize < 1:
		return fmt.Errorf("%w: bulk buffer sizes must be positive", berrors.ErrInvalidConfig)
	case c.Bench.SmallBulkReps < 0 || c.Bench.LargeBulkReps < 0:
		return fmt.Errorf("%w: bulk repetitions must not be negative", berrors.ErrInvalidConfig)
	}
	return nil
}

// Options translates the bench settings into engine options.
func (c *Config) Options() []benchhash.Option {
	return []benchhash.Option{
		benchhash.WithSeed(c.Common.Seed),
		benchhash.WithTargetHashes(c.Bench.TargetHashes),
		benchhash.WithSmallBulk(c.Bench.SmallBulkSize, c.Bench.SmallBulkReps),
		benchhash.WithLargeBulk(c.Bench.LargeBulkSize, c.Bench.LargeBulkReps),
	}
}

// Print writes cfg as TOML.
func Print(w io.Writer, cfg *Config) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""
	return encoder.Encode(cfg)
}
