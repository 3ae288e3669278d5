// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ticcl-anahash reads a word frequency list and computes the
// additive anagram hash of every word, grouping words that collide into
// anagram buckets. It can additionally extract a "foci" subset worth
// searching for candidate corrections, and merge a background corpus's
// frequencies into the primary corpus.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/proycon/goticcl/cmd/common"
	"github.com/proycon/goticcl/internal/alphabet"
	"github.com/proycon/goticcl/internal/anafile"
	"github.com/proycon/goticcl/internal/corpus"
	"github.com/proycon/goticcl/internal/ticclcfg"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <frequency file>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

var (
	configFile = flag.String("config", "", "TOML configuration file")
	alphaFile  = flag.String("alph", "", "alphabet file (required)")
	background = flag.String("background", "", "background corpus frequency file")
	separator  = flag.String("separator", corpus.DefaultSeparator, "n-gram separator")
	clip       = flag.Int64("clip", 0, "cut-off frequency for the alphabet file")
	artiFreq   = flag.Int64("artifrq", 0, "extract a foci list of hashes with frequency below this value")
	nGrams     = flag.Bool("ngrams", false, "treat input words as separator-joined n-grams")
	listMode   = flag.Bool("list", false, "write a word/hash list instead of an anagram hash file")
	outFile    = flag.String("o", "", "output file name")
	verbose    = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()

	cfg := ticclcfg.Default()
	if *configFile != "" {
		cfg = ticclcfg.MustParse(*configFile)
	}
	applyAnahashFlags(&cfg)

	logger := common.NewLogger(cfg.Verbose)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputName := flag.Arg(0)

	if cfg.Alphabet == "" {
		logger.Fatal("missing --alph option")
	}
	if cfg.List {
		if cfg.ArtiFreq > 0 {
			logger.Fatal("option --artifrq not supported for --list")
		}
		if cfg.Background != "" {
			logger.Fatal("option --background not supported for --list")
		}
	}

	outName := anahashOutputName(inputName, cfg.Output, cfg.List)

	alphaIn, err := os.Open(cfg.Alphabet)
	common.ExitIfError("cannot open alphabet file", err)
	defer alphaIn.Close()

	logger.Info("reading alphabet", "file", cfg.Alphabet)
	alph, err := alphabet.Load(alphaIn, cfg.Clip)
	common.ExitIfError("cannot read alphabet file", err)
	logger.Info("finished reading alphabet", "characters", alph.Size())

	in, err := os.Open(inputName)
	common.ExitIfError("cannot open corpus frequency file", err)
	defer in.Close()

	out, err := os.Create(outName)
	common.ExitIfError("cannot create output file", err)
	defer out.Close()

	builder := corpus.NewBuilder(alph, corpus.Config{
		Separator: cfg.Separator,
		ArtiFreq:  cfg.ArtiFreq,
		NGrams:    cfg.NGrams,
		Merge:     cfg.Background != "",
	})

	logger.Info("hashing corpus frequency file", "file", inputName)
	if cfg.List {
		common.ExitIfError("cannot build word/hash list", builder.ReadData(in, out))
		logger.Info("created list file", "file", outName)
		return
	}
	common.ExitIfError("cannot read corpus frequency file", builder.ReadData(in, nil))

	if cfg.ArtiFreq > 0 {
		fociName := inputName + ".corpusfoci"
		foci := builder.ExtractFoci()
		fociOut, err := os.Create(fociName)
		common.ExitIfError("cannot create foci file", err)
		common.ExitIfError("cannot write foci file", anafile.Write(fociOut, foci))
		fociOut.Close()
		logger.Info("wrote foci file", "file", fociName, "entries", len(foci))
	}

	if cfg.Background != "" {
		back, err := os.Open(cfg.Background)
		common.ExitIfError("cannot open background corpus", err)
		logger.Info("merging background corpus", "file", cfg.Background)
		common.ExitIfError("cannot read background corpus", builder.ReadBackground(back))
		back.Close()

		mergedName := inputName + ".merged"
		mergedOut, err := os.Create(mergedName)
		common.ExitIfError("cannot create merged frequency file", err)
		common.ExitIfError("cannot write merged frequency file", builder.WriteMerged(mergedOut))
		mergedOut.Close()
		logger.Info("stored merged corpus", "file", mergedName)
	}

	logger.Info("generating anagram hash file", "file", outName)
	common.ExitIfError("cannot write anagram hash file", anafile.Write(out, builder.Anagrams))
	logger.Info("done")
}

// applyAnahashFlags overrides cfg with every flag the user explicitly
// set on the command line, so a configuration file supplies defaults
// but never silently shadows an explicit flag.
func applyAnahashFlags(cfg *ticclcfg.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "alph":
			cfg.Alphabet = *alphaFile
		case "background":
			cfg.Background = *background
		case "separator":
			cfg.Separator = *separator
		case "clip":
			cfg.Clip = *clip
		case "artifrq":
			cfg.ArtiFreq = *artiFreq
		case "ngrams":
			cfg.NGrams = *nGrams
		case "list":
			cfg.List = *listMode
		case "o":
			cfg.Output = *outFile
		case "v":
			cfg.Verbose = *verbose
		}
	})
}

func anahashOutputName(inputName, configured string, list bool) string {
	suffix := ".anahash"
	if list {
		suffix = ".list"
	}
	if configured == "" {
		return inputName + suffix
	}
	if strings.HasSuffix(configured, suffix) {
		return configured
	}
	return configured + suffix
}
