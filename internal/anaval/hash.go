// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anaval implements the wide unsigned integer used as an anagram
// value (hash). Two strings collide under Hash iff they are anagrams of
// each other, and Hash is additive: Hash(xy) == Hash(x) + Hash(y) for
// concatenation interpreted as multiset union. That additivity is what
// lets the rest of this module do candidate-pair search by arithmetic on
// precomputed hash sets instead of computing string edit distance.
package anaval

import (
	"fmt"
	"math/big"
)

// Hash is a 128-bit unsigned integer, wide enough that a corpus of long
// strings with large character weights cannot overflow it. It is a plain
// comparable struct (not *big.Int) so it can be used directly as a map
// key and compared with ==, which the indexer's result map and hash-set
// membership checks rely on.
type Hash struct {
	Hi, Lo uint64
}

// Zero is the identity element: the anagram value of the empty string,
// and the value that any character absent from the alphabet contributes.
var Zero = Hash{}

// FromUint64 builds a Hash from a small, non-negative value.
func FromUint64(v uint64) Hash {
	return Hash{Lo: v}
}

// Add returns a + b.
func Add(a, b Hash) Hash {
	lo := a.Lo + b.Lo
	carry := uint64(0)
	if lo < a.Lo {
		carry = 1
	}
	return Hash{Hi: a.Hi + b.Hi + carry, Lo: lo}
}

// Sub returns a - b. The caller must ensure a >= b; the indexer only ever
// subtracts in the direction that the sorted walk guarantees is
// non-negative.
func Sub(a, b Hash) Hash {
	lo := a.Lo - b.Lo
	borrow := uint64(0)
	if a.Lo < b.Lo {
		borrow = 1
	}
	return Hash{Hi: a.Hi - b.Hi - borrow, Lo: lo}
}

// Cmp returns -1, 0 or 1 as a is less than, equal to, or greater than b.
func Cmp(a, b Hash) int {
	if a.Hi != b.Hi {
		if a.Hi < b.Hi {
			return -1
		}
		return 1
	}
	switch {
	case a.Lo < b.Lo:
		return -1
	case a.Lo > b.Lo:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b; convenient for sort.Slice.
func Less(a, b Hash) bool {
	return Cmp(a, b) < 0
}

// big returns the value as a math/big.Int, used only at the decimal
// string I/O boundary: every on-disk anagram value is a decimal integer,
// so callers never observe the internal Hi/Lo split.
func (h Hash) big() *big.Int {
	r := new(big.Int).Lsh(new(big.Int).SetUint64(h.Hi), 64)
	r.Or(r, new(big.Int).SetUint64(h.Lo))
	return r
}

// String renders the hash in decimal, as required by the anagram and
// index file formats.
func (h Hash) String() string {
	return h.big().String()
}

// Parse reads a decimal-encoded Hash, as found in anagram, foci,
// confusion and index files.
func Parse(s string) (Hash, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Hash{}, fmt.Errorf("anaval: invalid decimal value %q", s)
	}
	if b.Sign() < 0 {
		return Hash{}, fmt.Errorf("anaval: negative value %q", s)
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(b, mask).Uint64()
	hi := new(big.Int).Rsh(b, 64)
	if hi.BitLen() > 64 {
		return Hash{}, fmt.Errorf("anaval: value %q exceeds 128 bits", s)
	}
	return Hash{Hi: hi.Uint64(), Lo: lo}, nil
}
