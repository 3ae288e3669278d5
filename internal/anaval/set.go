// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anaval

import "sort"

// Set is an ordered set of Hash values backed by a sorted slice. Sorted
// vectors give O(log n) membership via binary search and cheap
// bidirectional iteration from a located element, which the parallel
// indexer's inner loop depends on.
type Set struct {
	values []Hash
}

// NewSet builds a Set from an unsorted, possibly duplicate-containing
// slice of values.
func NewSet(values []Hash) Set {
	cp := append([]Hash(nil), values...)
	sort.Slice(cp, func(i, j int) bool { return Less(cp[i], cp[j]) })
	out := cp[:0]
	for i, v := range cp {
		if i == 0 || Cmp(v, out[len(out)-1]) != 0 {
			out = append(out, v)
		}
	}
	return Set{values: out}
}

// Len returns the number of distinct elements.
func (s Set) Len() int { return len(s.values) }

// At returns the element at the given ascending position.
func (s Set) At(i int) Hash { return s.values[i] }

// Slice returns the underlying ascending slice. Callers must not mutate
// it.
func (s Set) Slice() []Hash { return s.values }

// IndexOf returns the position of h in ascending order and whether it is
// present.
func (s Set) IndexOf(h Hash) (int, bool) {
	i := sort.Search(len(s.values), func(i int) bool { return !Less(s.values[i], h) })
	if i < len(s.values) && Cmp(s.values[i], h) == 0 {
		return i, true
	}
	return i, false
}

// Contains reports whether h is in the set.
func (s Set) Contains(h Hash) bool {
	_, ok := s.IndexOf(h)
	return ok
}

// Max returns the largest element and whether the set is non-empty.
func (s Set) Max() (Hash, bool) {
	if len(s.values) == 0 {
		return Hash{}, false
	}
	return s.values[len(s.values)-1], true
}
