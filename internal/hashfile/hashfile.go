// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hashfile reads anagram bucket files (as written by
// internal/anafile for ticcl-anahash's anahash and foci outputs) into the
// ordered hash sets the indexer operates on.
package hashfile

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/proycon/goticcl/internal/anafile"
	"github.com/proycon/goticcl/internal/anaval"
)

// ReadHashSet consumes an anahash-format stream and returns the ordered
// set of hashes whose bucket contains at least one word with rune length
// in [low, high]. Hashes whose every word falls outside the band are
// counted in skipped but not retained, matching the "corpus word anagram
// hash values" filter the indexer applies to its main hashSet input.
func ReadHashSet(r io.Reader, low, high int) (anaval.Set, int, error) {
	scanner := bufio.NewScanner(r)
	var kept []anaval.Hash
	skipped := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			break
		}
		h, words, err := anafile.ParseLine(line)
		if err != nil {
			return anaval.Set{}, 0, fmt.Errorf("hashfile: line %d: %w", lineNo, err)
		}
		if bucketInBand(words, low, high) {
			kept = append(kept, h)
		} else {
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return anaval.Set{}, 0, fmt.Errorf("hashfile: %w", err)
	}
	return anaval.NewSet(kept), skipped, nil
}

// ReadFociSet consumes a foci file (the same bucket grammar as an
// anahash file) and returns the set of hash keys, with no length
// filtering — the foci file has already been restricted to the
// "worth searching" vocabulary by internal/corpus's ExtractFoci.
func ReadFociSet(r io.Reader) (anaval.Set, error) {
	scanner := bufio.NewScanner(r)
	var values []anaval.Hash
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			break
		}
		h, _, err := anafile.ParseLine(line)
		if err != nil {
			return anaval.Set{}, fmt.Errorf("hashfile: line %d: %w", lineNo, err)
		}
		values = append(values, h)
	}
	if err := scanner.Err(); err != nil {
		return anaval.Set{}, fmt.Errorf("hashfile: %w", err)
	}
	return anaval.NewSet(values), nil
}

func bucketInBand(words []string, low, high int) bool {
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		if n >= low && n <= high {
			return true
		}
	}
	return false
}
