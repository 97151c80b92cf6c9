// Package errors defines all exported error sentinels for the benchhash module.
//
// This is the single source of truth for error values. The root package,
// the candidate registry and the config loader all import from here,
// ensuring errors.Is checks work across package boundaries.
package errors

import "errors"

// Corpus errors
var (
	ErrEmptyCorpus = errors.New("benchhash: corpus contains no keys")
)

// Candidate errors
var (
	ErrInvalidCandidate = errors.New("benchhash: candidate has no one-shot hash function")
	ErrNoStreaming      = errors.New("benchhash: candidate has no streaming form")
	ErrUnknownCandidate = errors.New("benchhash: unknown candidate")
)

// Validation errors
var (
	ErrStreamingMismatch = errors.New("benchhash: streaming digest differs from one-shot digest")
)

// Configuration errors
var (
	ErrInvalidConfig = errors.New("benchhash: invalid configuration")
)
