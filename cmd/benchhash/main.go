// Benchhash measures the throughput of keyed 64-bit hash functions and checks
// that their streaming forms agree with their one-shot forms.
//
// Usage:
//
//	go run ./cmd/benchhash [flags] [corpus]
//
// The corpus is a whitespace-separated word list (default:
// /usr/share/dict/words). Every streaming candidate is validated first; a
// mismatch aborts the run with status 1 before any timing starts.
//
// Flags:
//
//	-config                Path to a TOML config file
//	-config-print-default  Print the default config and exit
//	-only                  Comma-separated candidate names (default: all)
//	-debug                 Log per-phase timings to stderr
//
// Exit status is 0 or the low byte of the accumulated digest sum after a
// completed run, 1 on a streaming mismatch and 2 on configuration or
// corpus errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/klauspost/cpuid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tamirms/benchhash"
	"github.com/tamirms/benchhash/internal/config"
	"github.com/tamirms/benchhash/internal/hashes"
)

const (
	exitInvalidStreaming = 1
	exitConfig           = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	return runWith(args, nil, stdout, stderr)
}

// runWith is run with the candidate registry replaced by registry when it is
// non-nil. The -only filter selects from registry by name.
func runWith(args []string, registry []benchhash.Candidate, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("benchhash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "filename of config")
	printDefaultConfig := fs.Bool("config-print-default", false, "print default config")
	only := fs.String("only", "", "comma-separated candidate names (default: all)")
	debug := fs.Bool("debug", false, "log per-phase timings")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}

	if *printDefaultConfig {
		if err := config.Print(stdout, config.New()); err != nil {
			fmt.Fprintf(stderr, "print config: %v\n", err)
			return exitConfig
		}
		return 0
	}

	cfg := config.New()
	if err := config.Parse(*configFile, cfg); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitConfig
	}
	if fs.NArg() > 0 {
		cfg.Common.Corpus = fs.Arg(0)
	}
	if *only != "" {
		cfg.Common.Candidates = splitNames(*only)
	}
	if *debug {
		cfg.Common.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitConfig
	}

	logger, err := newLogger(stderr, cfg.Common.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return exitConfig
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("host",
		zap.String("cpu", cpuid.CPU.BrandName),
		zap.Int("cores", cpuid.CPU.PhysicalCores),
		zap.Bool("avx2", cpuid.CPU.Supports(cpuid.AVX2)),
	)

	candidates, err := selectCandidates(registry, cfg.Common.Candidates)
	if err != nil {
		logger.Error("select candidates", zap.Error(err))
		return exitConfig
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seed := uint64(time.Now().Unix())
	sample := benchhash.NewSample(cfg.Validation.SampleSize, seed)
	if err := benchhash.ValidateAll(ctx, candidates, sample, seed); err != nil {
		fmt.Fprintln(stdout, "streaming version is not valid!")
		logger.Error("streaming validation failed", zap.Uint64("seed", seed), zap.Error(err))
		return exitInvalidStreaming
	}

	corpus, err := benchhash.LoadCorpus(cfg.Common.Corpus)
	if err != nil {
		logger.Error("load corpus", zap.Error(err))
		return exitConfig
	}
	logger.Info("corpus loaded",
		zap.String("path", cfg.Common.Corpus),
		zap.Int("keys", corpus.Len()),
		zap.Int("bytes", corpus.Bytes()),
		zap.Uint64("passes", benchhash.Repetitions(cfg.Bench.TargetHashes, corpus.Len())),
	)

	report, err := benchhash.NewReport(stdout, cfg.Common.Corpus)
	if err != nil {
		logger.Error("write report", zap.Error(err))
		return exitConfig
	}

	opts := append(cfg.Options(), benchhash.WithLogger(logger))
	var sum uint64
	for _, c := range candidates {
		res, err := benchhash.Run(corpus, c, opts...)
		if err != nil {
			logger.Error("benchmark", zap.String("candidate", c.Name), zap.Error(err))
			return exitConfig
		}
		if !res.BulkConsistent() {
			logger.Warn("bulk throughputs differ by more than 10x",
				zap.String("candidate", c.Name),
				zap.Float64("bulk64k", res.Bulk64K),
				zap.Float64("bulk16m", res.Bulk16M),
			)
		}
		if err := report.Add(res); err != nil {
			logger.Error("write report", zap.Error(err))
			return exitConfig
		}
		sum += res.Sink
	}
	return int(byte(sum))
}

// selectCandidates returns the named candidates from registry, or all of
// them when names is empty. A nil registry means the built-in one.
func selectCandidates(registry []benchhash.Candidate, names []string) ([]benchhash.Candidate, error) {
	if registry == nil {
		registry = hashes.All()
	}
	if len(names) == 0 {
		return registry, nil
	}
	return hashes.Select(registry, names...)
}

// splitNames splits a comma-separated -only value, trimming blanks around
// each name and dropping empty entries.
func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// newLogger returns a console logger writing to w at the named level.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}
