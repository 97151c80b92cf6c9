// Package benchhash implements a benchmarking and correctness harness for
// keyed non-cryptographic 64-bit hash functions.
//
// Every candidate hash is checked for streaming self-consistency before any
// timing starts, then measured over four workloads: hashing a corpus of short
// keys, counting those keys in a hash table driven by the candidate,
// and hashing a 64 KiB and a 16 MiB buffer.
//
// # Basic Usage
//
//	sample := benchhash.NewSample(benchhash.DefaultSampleSize, seed)
//	if err := benchhash.ValidateAll(ctx, candidates, sample, seed); err != nil {
//	    log.Fatal(err)
//	}
//
//	corpus, err := benchhash.LoadCorpus("/usr/share/dict/words")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, _ := benchhash.NewReport(os.Stdout, "/usr/share/dict/words")
//	for _, c := range candidates {
//	    res, err := benchhash.Run(corpus, c, benchhash.WithSeed(benchhash.DefaultSeed))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = report.Add(res)
//	}
//
// # Package Structure
//
//   - Candidate model: candidate.go (Candidate, HashFunc, StreamFunc)
//   - Configuration: options.go (Option, With* functions)
//   - Streaming validation: validate.go (ChunkBoundaries, ValidateStreaming, ValidateAll)
//   - Benchmark engine: engine.go (Run, Result), sample.go (timing samples)
//   - Corpus loading: corpus.go (LoadCorpus, NewCorpus), fadvise_*.go (OS-specific hints)
//   - Output: report.go (Report)
//   - Candidate registry: internal/hashes/
//   - Hash table driven by a candidate: internal/hashmap/
package benchhash
