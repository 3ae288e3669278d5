// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package indexer implements the parallel candidate-pair search: for
// every focus hash present in both the foci set and the corpus hash
// set, walk the corpus hash set in both directions from the focus and
// record every pair whose difference is a legal character confusion.
package indexer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/proycon/goticcl/internal/anaval"
	"github.com/proycon/goticcl/internal/confset"
)

// Experiment is a contiguous slice of the foci set assigned to one
// worker.
type Experiment struct {
	Foci []anaval.Hash
}

// Partition splits foci into at most workers contiguous experiments: the
// first workers-1 slices hold len(foci)/workers elements each, and the
// last absorbs the remainder. If the foci set is smaller than workers, a
// single experiment covering all of it is returned.
func Partition(foci anaval.Set, workers int) []Experiment {
	if workers < 1 {
		workers = 1
	}
	values := foci.Slice()
	n := len(values)
	partSize := n / workers
	if partSize < 1 {
		return []Experiment{{Foci: values}}
	}
	exps := make([]Experiment, workers)
	pos := 0
	for i := 0; i < workers; i++ {
		exps[i] = Experiment{Foci: values[pos : pos+partSize]}
		pos += partSize
	}
	if pos < n {
		exps[workers-1].Foci = values[(workers-1)*partSize : n]
	}
	return exps
}

// Result maps a confusion difference to the set of hash values stored
// under it.
type Result map[anaval.Hash]map[anaval.Hash]struct{}

func newResult() Result { return make(Result) }

func (r Result) insert(diff, value anaval.Hash) {
	set, ok := r[diff]
	if !ok {
		set = make(map[anaval.Hash]struct{})
		r[diff] = set
	}
	set[value] = struct{}{}
}

func mergeInto(dst, src Result) {
	for diff, values := range src {
		for v := range values {
			dst.insert(diff, v)
		}
	}
}

// FollowSet is a diagnostic set of hash values to trace during the
// search. It never changes Run's output, only what is written to the
// trace writer.
type FollowSet struct {
	values map[anaval.Hash]struct{}
}

// NewFollowSet builds a FollowSet from a list of hash values.
func NewFollowSet(values []anaval.Hash) FollowSet {
	m := make(map[anaval.Hash]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return FollowSet{values: m}
}

// Contains reports whether h is being traced.
func (f FollowSet) Contains(h anaval.Hash) bool {
	if f.values == nil {
		return false
	}
	_, ok := f.values[h]
	return ok
}

// Options configures a Run.
type Options struct {
	// Threads is the number of foci partitions to process concurrently.
	// Values below 1 behave as 1.
	Threads int
	// Follow traces individual hash and difference values; nil disables
	// tracing.
	Follow FollowSet
	// Trace receives human-readable tracing lines when Follow matches.
	// A nil Trace discards them.
	Trace io.Writer
}

// Run partitions foci according to opts.Threads, processes each
// partition against hashSet and confSet concurrently, and merges the
// per-partition results. The merge is a plain set union keyed by
// (diff, value) pairs, so the merged Result — and therefore any output
// written from it — does not depend on the number of worker goroutines.
func Run(foci, hashSet anaval.Set, confSet confset.Set, opts Options) Result {
	experiments := Partition(foci, opts.Threads)
	partial := make([]Result, len(experiments))

	var traceMu sync.Mutex
	trace := func(format string, args ...interface{}) {
		if opts.Trace == nil {
			return
		}
		traceMu.Lock()
		defer traceMu.Unlock()
		fmt.Fprintf(opts.Trace, format+"\n", args...)
	}

	var wg sync.WaitGroup
	for i, exp := range experiments {
		wg.Add(1)
		go func(i int, exp Experiment) {
			defer wg.Done()
			partial[i] = runExperiment(exp, hashSet, confSet, opts.Follow, trace)
		}(i, exp)
	}
	wg.Wait()

	merged := newResult()
	for _, r := range partial {
		mergeInto(merged, r)
	}
	return merged
}

// runExperiment implements the per-focus window walk (handle_exp in the
// original source): for every focus present in hashSet, it walks
// downward to smaller neighbors and upward to larger ones, stopping each
// direction as soon as the difference exceeds the largest legal
// confusion value. A downward match stores the neighbor; an upward match
// stores the focus. This asymmetry is deliberate and preserved so that
// index files from different implementations agree byte for byte.
func runExperiment(exp Experiment, hashSet anaval.Set, confSet confset.Set, follow FollowSet, trace func(string, ...interface{})) Result {
	result := newResult()
	max, ok := confSet.Max()
	if !ok {
		return result
	}
	for _, focus := range exp.Foci {
		idx, found := hashSet.IndexOf(focus)
		if !found {
			continue
		}
		for j := idx - 1; j >= 0; j-- {
			neighbor := hashSet.At(j)
			if follow.Contains(neighbor) {
				trace("following: %s", neighbor)
			}
			diff := anaval.Sub(focus, neighbor)
			if anaval.Less(max, diff) {
				break
			}
			if confSet.Contains(diff) {
				result.insert(diff, neighbor)
				if follow.Contains(diff) || follow.Contains(neighbor) {
					trace("stored: %s:%s", diff, neighbor)
				}
			}
		}
		for j := idx + 1; j < hashSet.Len(); j++ {
			neighbor := hashSet.At(j)
			if follow.Contains(focus) {
				trace("following: %s", focus)
			}
			diff := anaval.Sub(neighbor, focus)
			if anaval.Less(max, diff) {
				break
			}
			if confSet.Contains(diff) {
				result.insert(diff, focus)
				if follow.Contains(diff) || follow.Contains(focus) {
					trace("stored: %s:%s", diff, focus)
				}
			}
		}
	}
	return result
}

func sortedDiffs(r Result) []anaval.Hash {
	diffs := make([]anaval.Hash, 0, len(r))
	for d := range r {
		diffs = append(diffs, d)
	}
	sort.Slice(diffs, func(i, j int) bool { return anaval.Less(diffs[i], diffs[j]) })
	return diffs
}

func sortedValues(values map[anaval.Hash]struct{}) []anaval.Hash {
	out := make([]anaval.Hash, 0, len(values))
	for v := range values {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return anaval.Less(out[i], out[j]) })
	return out
}

// WriteIndex writes result as the index file format: one
// "<diff>#<h1>,<h2>,..." line per difference, in ascending difference
// order with values in ascending order.
func WriteIndex(w io.Writer, result Result) error {
	bw := bufio.NewWriter(w)
	for _, diff := range sortedDiffs(result) {
		values := sortedValues(result[diff])
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = v.String()
		}
		if _, err := fmt.Fprintf(bw, "%s#%s\n", diff.String(), strings.Join(strs, ",")); err != nil {
			return fmt.Errorf("indexer: %w", err)
		}
	}
	return bw.Flush()
}

// WriteConfStats writes result as the confusion-statistics file format:
// one "<diff>#<count>" line per difference, in ascending difference
// order, where count is the number of values stored under that
// difference.
func WriteConfStats(w io.Writer, result Result) error {
	bw := bufio.NewWriter(w)
	for _, diff := range sortedDiffs(result) {
		if _, err := fmt.Fprintf(bw, "%s#%d\n", diff.String(), len(result[diff])); err != nil {
			return fmt.Errorf("indexer: %w", err)
		}
	}
	return bw.Flush()
}
