// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package confset reads the character confusion file: one anagram
// difference value per line, with an optional trailing "#metadata"
// comment ignored. The indexer uses the cached maximum as its
// early-exit bound for the bidirectional window walk.
package confset

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/proycon/goticcl/internal/anaval"
)

// Set is the ordered set of legal confusion-difference values, with the
// maximum cached for O(1) access.
type Set struct {
	anaval.Set
	max    anaval.Hash
	hasMax bool
}

// Max returns the largest confusion value and whether the set is
// non-empty.
func (s Set) Max() (anaval.Hash, bool) {
	return s.max, s.hasMax
}

// Read parses a confusion file.
func Read(r io.Reader) (Set, error) {
	scanner := bufio.NewScanner(r)
	var values []anaval.Hash
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		h, err := anaval.Parse(line)
		if err != nil {
			return Set{}, fmt.Errorf("confset: line %d: %w", lineNo, err)
		}
		values = append(values, h)
	}
	if err := scanner.Err(); err != nil {
		return Set{}, fmt.Errorf("confset: %w", err)
	}
	set := anaval.NewSet(values)
	mx, ok := set.Max()
	return Set{Set: set, max: mx, hasMax: ok}, nil
}
