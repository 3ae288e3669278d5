// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ticcl-indexer enumerates candidate correction pairs: for every
// focus hash (produced by ticcl-anahash's --artifrq option), it searches
// a corpus hash set for neighbors whose difference is a legal character
// confusion, in parallel across a configurable number of workers.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/proycon/goticcl/cmd/common"
	"github.com/proycon/goticcl/internal/anaval"
	"github.com/proycon/goticcl/internal/confset"
	"github.com/proycon/goticcl/internal/hashfile"
	"github.com/proycon/goticcl/internal/indexer"
	"github.com/proycon/goticcl/internal/ticclcfg"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

// followList collects repeated --follow flag occurrences.
type followList []string

func (f *followList) String() string { return strings.Join(*f, ",") }

func (f *followList) Set(value string) error {
	*f = append(*f, value)
	return nil
}

var (
	configFile   = flag.String("config", "", "TOML configuration file")
	hashFile     = flag.String("hash", "", "anagram hash file produced by ticcl-anahash (required)")
	charConfFile = flag.String("charconf", "", "character confusion file (required)")
	fociFile     = flag.String("foci", "", "foci file produced by ticcl-anahash --artifrq (required)")
	outFile      = flag.String("o", "", "output file name")
	confStats    = flag.String("confstats", "", "write confusion statistics to this file")
	low          = flag.Int("low", 5, "skip hash-set entries shorter than this many characters")
	high         = flag.Int("high", 35, "skip hash-set entries longer than this many characters")
	threads      = flag.String("t", "1", "number of worker goroutines, or \"max\"")
	verbose      = flag.Bool("v", false, "verbose logging")
	follow       followList
)

func init() {
	flag.StringVar(threads, "threads", "1", "alias for -t")
}

func init() {
	flag.Var(&follow, "follow", "trace this hash or difference value (repeatable)")
}

func main() {
	flag.Parse()

	cfg := ticclcfg.Default()
	if *configFile != "" {
		cfg = ticclcfg.MustParse(*configFile)
	}
	applyIndexerFlags(&cfg)

	logger := common.NewLogger(cfg.Verbose)

	if cfg.Hash == "" {
		logger.Fatal("missing --hash option")
	}
	if cfg.CharConf == "" {
		logger.Fatal("missing --charconf option")
	}
	if cfg.Foci == "" {
		logger.Fatal("missing --foci option")
	}

	numThreads, err := resolveThreads(cfg.Threads)
	if err != nil {
		logger.Fatal(err.Error())
	}

	followSet := buildFollowSet(follow)

	outName := indexerOutputName(cfg.Hash, cfg.Output)

	hashIn, err := os.Open(cfg.Hash)
	common.ExitIfError("cannot open anagram hash file", err)
	defer hashIn.Close()

	logger.Info("reading corpus word anagram hash values", "file", cfg.Hash)
	hashSet, skipped, err := hashfile.ReadHashSet(hashIn, cfg.Low, cfg.High)
	common.ExitIfError("cannot read anagram hash file", err)
	logger.Info("read corpus word anagram values", "count", hashSet.Len())
	logger.Info("skipped out-of-band corpus word values", "count", skipped)

	fociIn, err := os.Open(cfg.Foci)
	common.ExitIfError("cannot open foci file", err)
	defer fociIn.Close()
	foci, err := hashfile.ReadFociSet(fociIn)
	common.ExitIfError("cannot read foci file", err)
	logger.Info("read foci values", "count", foci.Len())

	confIn, err := os.Open(cfg.CharConf)
	common.ExitIfError("cannot open character confusion file", err)
	defer confIn.Close()
	confSet, err := confset.Read(confIn)
	common.ExitIfError("cannot read character confusion file", err)
	logger.Info("read character confusion anagram values", "count", confSet.Len())

	experiments := indexer.Partition(foci, numThreads)
	logger.Info("created separate experiments", "count", len(experiments))

	result := indexer.Run(foci, hashSet, confSet, indexer.Options{
		Threads: numThreads,
		Follow:  followSet,
		Trace:   os.Stderr,
	})

	out, err := os.Create(outName)
	common.ExitIfError("cannot create output file", err)
	defer out.Close()
	common.ExitIfError("cannot write index file", indexer.WriteIndex(out, result))
	logger.Info("wrote indexes", "file", outName)

	if cfg.ConfStats != "" {
		statsOut, err := os.Create(cfg.ConfStats)
		common.ExitIfError("cannot create confusion statistics file", err)
		common.ExitIfError("cannot write confusion statistics file", indexer.WriteConfStats(statsOut, result))
		statsOut.Close()
		logger.Info("wrote confusion statistics", "file", cfg.ConfStats)
	}
}

func applyIndexerFlags(cfg *ticclcfg.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hash":
			cfg.Hash = *hashFile
		case "charconf":
			cfg.CharConf = *charConfFile
		case "foci":
			cfg.Foci = *fociFile
		case "o":
			cfg.Output = *outFile
		case "confstats":
			cfg.ConfStats = *confStats
		case "low":
			cfg.Low = *low
		case "high":
			cfg.High = *high
		case "t", "threads":
			cfg.Threads = *threads
		case "v":
			cfg.Verbose = *verbose
		}
	})
}

// resolveThreads turns the -t/--threads value into a worker count. The
// special value "max" follows the original's OMP_NUM_THREADS - 2
// heuristic, leaving a couple of cores free for the rest of the system.
func resolveThreads(value string) (int, error) {
	if strings.ToLower(value) == "max" {
		n := runtime.NumCPU() - 2
		if n < 1 {
			n = 1
		}
		return n, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("illegal value for -t/--threads: %q", value)
	}
	return n, nil
}

func buildFollowSet(values []string) indexer.FollowSet {
	hashes := make([]anaval.Hash, 0, len(values))
	for _, v := range values {
		h, err := anaval.Parse(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "illegal value for --follow (%s)\n", v)
			os.Exit(1)
		}
		hashes = append(hashes, h)
	}
	return indexer.NewFollowSet(hashes)
}

func indexerOutputName(hashFileName, configured string) string {
	const suffix = ".indexNT"
	if configured == "" {
		base := hashFileName
		if idx := strings.LastIndex(base, "."); idx >= 0 {
			base = base[:idx]
		}
		return base + suffix
	}
	if strings.HasSuffix(configured, suffix) {
		return configured
	}
	return configured + suffix
}
