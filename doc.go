// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goticcl implements TICCL-style anagram-hash candidate
// generation for noisy or historical corpora: an additive character-hash
// scheme that turns "is this word a plausible OCR/spelling variant of
// that word" into integer arithmetic over sorted hash sets, plus the
// parallel indexer that enumerates candidate pairs from a character
// confusion set.
//
// The package is organized as two command-line tools, ticcl-anahash and
// ticcl-indexer, built on the internal packages that implement each
// stage of the pipeline: alphabet weights, the anagram/foci builder, the
// shared bucket file format, length-banded hash-set loading, confusion
// sets, and the indexer itself.
package goticcl
