// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anafile implements the anagram bucket file format shared by the
// anahash builder's main output, its foci output, and the indexer's
// hash-set and foci readers:
//
//	<hash>~<word1>#<word2>#...#<wordK>
//
// one bucket per line, words within a bucket in ascending collation
// order, a trailing blank line terminating the file.
package anafile

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/proycon/goticcl/internal/anaval"
)

// Buckets maps an anagram value to the set of distinct words sharing it.
type Buckets map[anaval.Hash]map[string]struct{}

// NewBuckets returns an empty Buckets map.
func NewBuckets() Buckets {
	return make(Buckets)
}

// Insert adds word to the bucket for h.
func (b Buckets) Insert(h anaval.Hash, word string) {
	set, ok := b[h]
	if !ok {
		set = make(map[string]struct{})
		b[h] = set
	}
	set[word] = struct{}{}
}

// ParseLine parses a single non-blank bucket line into its hash and
// word list, in the order the words appear on the line. Since every
// writer in this package (Write) already emits words in ascending
// collation order, callers that only ever read files this package
// wrote see them in that order too; ParseLine itself does no sorting.
func ParseLine(line string) (anaval.Hash, []string, error) {
	idx := strings.IndexByte(line, '~')
	if idx < 0 {
		return anaval.Hash{}, nil, fmt.Errorf("anafile: malformed bucket line, missing '~': %q", line)
	}
	h, err := anaval.Parse(line[:idx])
	if err != nil {
		return anaval.Hash{}, nil, fmt.Errorf("anafile: %w", err)
	}
	rest := line[idx+1:]
	if rest == "" {
		return h, nil, nil
	}
	return h, strings.Split(rest, "#"), nil
}

// Read parses an entire bucket file into a Buckets map. Reading stops at
// the first blank line, or at EOF if no blank line is present.
func Read(r io.Reader) (Buckets, error) {
	out := NewBuckets()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		h, words, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			out.Insert(h, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("anafile: %w", err)
	}
	return out, nil
}

// sortedHashes returns the keys of b in ascending numeric order.
func sortedHashes(b Buckets) []anaval.Hash {
	keys := make([]anaval.Hash, 0, len(b))
	for h := range b {
		keys = append(keys, h)
	}
	sort.Slice(keys, func(i, j int) bool { return anaval.Less(keys[i], keys[j]) })
	return keys
}

// Write serializes b in ascending hash order, each bucket's words in
// ascending collation order, terminated by a blank line.
func Write(w io.Writer, b Buckets) error {
	bw := bufio.NewWriter(w)
	for _, h := range sortedHashes(b) {
		words := make([]string, 0, len(b[h]))
		for word := range b[h] {
			words = append(words, word)
		}
		sort.Strings(words)
		if _, err := fmt.Fprintf(bw, "%s~%s\n", h.String(), strings.Join(words, "#")); err != nil {
			return fmt.Errorf("anafile: %w", err)
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return fmt.Errorf("anafile: %w", err)
	}
	return bw.Flush()
}
