// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package alphabet reads the per-corpus character weight table and
// computes the anagram value of a string from it.
package alphabet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/proycon/goticcl/internal/anaval"
)

// Table maps a Unicode code point to its anagram weight. Code points not
// present in the table contribute anaval.Zero, the identity element, so
// hashing never fails on unknown input.
type Table struct {
	weights map[rune]anaval.Hash
}

// Load reads an alphabet file: tab-separated `char\tfrequency\tweight`
// lines, with blank lines and lines starting with '#' treated as
// comments. An entry is dropped when its frequency is strictly below
// clip, except a frequency of exactly 0 is never dropped.
func Load(r io.Reader, clip int64) (*Table, error) {
	t := &Table{weights: make(map[rune]anaval.Hash)}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != 3 {
			return nil, fmt.Errorf("alphabet: line %d: wrong format, expected char\\tfreq\\tweight: %q", lineNo, line)
		}
		runes := []rune(cols[0])
		if len(runes) != 1 {
			return nil, fmt.Errorf("alphabet: line %d: character column must be a single code point: %q", lineNo, cols[0])
		}
		freq, err := strconv.ParseInt(cols[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("alphabet: line %d: bad frequency %q: %w", lineNo, cols[1], err)
		}
		if freq != 0 && freq < clip {
			continue
		}
		weight, err := anaval.Parse(cols[2])
		if err != nil {
			return nil, fmt.Errorf("alphabet: line %d: bad weight %q: %w", lineNo, cols[2], err)
		}
		t.weights[runes[0]] = weight
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("alphabet: %w", err)
	}
	return t, nil
}

// Size returns the number of characters retained after clipping.
func (t *Table) Size() int {
	return len(t.weights)
}

// Weight returns the anagram weight of a single code point, anaval.Zero
// if the alphabet has no entry for it.
func (t *Table) Weight(r rune) anaval.Hash {
	if w, ok := t.weights[r]; ok {
		return w
	}
	return anaval.Zero
}

// HashString computes the anagram value of s: the sum of the weights of
// its code points. The primitive is pure, total (unknown code points
// contribute zero) and independent of character order, which gives the
// difference-equivalence property the rest of the module relies on.
func (t *Table) HashString(s string) anaval.Hash {
	h := anaval.Zero
	for _, r := range s {
		h = anaval.Add(h, t.Weight(r))
	}
	return h
}
