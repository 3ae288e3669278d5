// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpus implements the anahash builder: the frequency-list
// reader, the anagram table and foci extraction, and the
// background-corpus merger.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/proycon/goticcl/internal/alphabet"
	"github.com/proycon/goticcl/internal/anafile"
	"github.com/proycon/goticcl/internal/anaval"
)

// Config holds the builder's process-wide flags, passed by value into
// the constructor rather than kept as globals: artifreq and separator
// are immutable configuration for the lifetime of a Builder.
type Config struct {
	// Separator splits n-gram words into their parts. Defaults to "_".
	Separator string
	// ArtiFreq is the foci frequency ceiling; 0 disables foci
	// extraction entirely.
	ArtiFreq int64
	// NGrams treats input words as separator-joined n-grams for foci
	// extraction.
	NGrams bool
	// Merge enables background-corpus merging semantics for the
	// primary pass (only affects whether the primary pass also starts
	// populating Merged; ReadBackground always accumulates into it).
	Merge bool
}

// DefaultSeparator is used when Config.Separator is empty.
const DefaultSeparator = "_"

// Builder accumulates the anagram table, frequency table and merged
// frequency table while walking frequency-list input. All fields are
// populated incrementally and are read-only once the relevant pass
// completes.
type Builder struct {
	cfg      Config
	alphabet *alphabet.Table

	Anagrams anafile.Buckets
	FreqList map[string]int64
	Merged   map[string]int64
}

// NewBuilder constructs an empty Builder for the given alphabet and
// configuration.
func NewBuilder(alph *alphabet.Table, cfg Config) *Builder {
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}
	return &Builder{
		cfg:      cfg,
		alphabet: alph,
		Anagrams: anafile.NewBuckets(),
		FreqList: make(map[string]int64),
		Merged:   make(map[string]int64),
	}
}

// ReadData performs the primary corpus pass: reading the frequency
// list and (outside list mode) populating the anagram and frequency
// tables. Each line is `word` or `word\tfreq`; any other column count
// is a format error that aborts processing, matching
// TICCL-anahash.cxx's read_data.
//
// In list mode, list is non-nil and every line's original word and hash
// are written to it as `word\thash`, in input order, and neither the
// anagram table nor the frequency table is populated.
func (b *Builder) ReadData(r io.Reader, list io.Writer) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	var listWriter *bufio.Writer
	if list != nil {
		listWriter = bufio.NewWriter(list)
		defer listWriter.Flush()
	}
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		orig, freq, err := splitFrequencyLine(line)
		if err != nil {
			return fmt.Errorf("corpus: frequency file in wrong format at line %d: %w", lineNo, err)
		}
		word := Sanitize(orig)
		h := b.alphabet.HashString(word)
		if listWriter != nil {
			if _, err := fmt.Fprintf(listWriter, "%s\t%s\n", orig, h.String()); err != nil {
				return fmt.Errorf("corpus: %w", err)
			}
			continue
		}
		b.Anagrams.Insert(h, word)
		b.FreqList[word] = freq
		if b.cfg.Merge {
			b.Merged[orig] = freq
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("corpus: %w", err)
	}
	return nil
}

// ReadBackground merges a second frequency-list stream into the anagram
// table and the merged-frequency table. Unlike the
// primary pass, the merged table accumulates rather than assigns: a
// word seen in both the primary corpus and the background corpus has
// its frequencies summed (TICCL-anahash.cxx's read_backgound).
func (b *Builder) ReadBackground(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		orig, freq, err := splitFrequencyLine(line)
		if err != nil {
			return fmt.Errorf("corpus: background file in wrong format at line %d: %w", lineNo, err)
		}
		word := Sanitize(orig)
		h := b.alphabet.HashString(word)
		b.Anagrams.Insert(h, word)
		b.Merged[orig] += freq
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("corpus: %w", err)
	}
	return nil
}

// ExtractFoci computes the foci table. It must be called using the
// FreqList as it stood right after ReadData and before ReadBackground,
// so callers extract foci before merging a background corpus.
func (b *Builder) ExtractFoci() anafile.Buckets {
	foci := anafile.NewBuckets()
	if b.cfg.ArtiFreq <= 0 {
		return foci
	}
	for word, freq := range b.FreqList {
		h := b.alphabet.HashString(word)
		if b.cfg.NGrams {
			b.extractNGramFocus(foci, h, word)
		} else {
			b.extractUnigramFocus(foci, h, word, freq)
		}
	}
	return foci
}

func (b *Builder) extractUnigramFocus(foci anafile.Buckets, h anaval.Hash, word string, freq int64) {
	if freq >= b.cfg.ArtiFreq {
		return
	}
	lower := strings.ToLower(word)
	if lf, ok := b.FreqList[lower]; ok && lf >= b.cfg.ArtiFreq {
		return
	}
	foci.Insert(h, lower)
}

func (b *Builder) extractNGramFocus(foci anafile.Buckets, h anaval.Hash, word string) {
	parts := strings.Split(word, b.cfg.Separator)
	if len(parts) == 0 {
		return
	}
	accept := false
	for _, part := range parts {
		partFreq, ok := b.FreqList[part]
		if !ok || partFreq >= b.cfg.ArtiFreq {
			continue
		}
		// part is present in the input but below artifreq; accept the
		// whole n-gram unless the lowercase form of this part is itself
		// a known, frequent word.
		lower := strings.ToLower(part)
		if lf, ok := b.FreqList[lower]; ok && lf >= b.cfg.ArtiFreq {
			continue
		}
		accept = true
	}
	if accept {
		foci.Insert(h, strings.ToLower(word))
	}
}

// WriteMerged writes the merged frequency table as `word\tfreq` lines
// sorted by collation. The keys are the original, unsanitized words:
// downstream tools that expect sanitized words must not assume this
// file never contains '~' or '#'.
func (b *Builder) WriteMerged(w io.Writer) error {
	words := make([]string, 0, len(b.Merged))
	for word := range b.Merged {
		words = append(words, word)
	}
	sort.Strings(words)
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", word, b.Merged[word]); err != nil {
			return fmt.Errorf("corpus: %w", err)
		}
	}
	return bw.Flush()
}

// splitFrequencyLine splits a `word` or `word\tfreq` line, defaulting the
// frequency to 1 when absent.
func splitFrequencyLine(line string) (word string, freq int64, err error) {
	cols := strings.Split(line, "\t")
	if len(cols) != 1 && len(cols) != 2 {
		return "", 0, fmt.Errorf("expected 1 or 2 tab-separated columns, got %d: %q", len(cols), line)
	}
	if len(cols) == 1 {
		return cols[0], 1, nil
	}
	freq, err = strconv.ParseInt(cols[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad frequency %q: %w", cols[1], err)
	}
	return cols[0], freq, nil
}
