package indexer

import (
	"strings"
	"testing"

	"github.com/proycon/goticcl/internal/anaval"
	"github.com/proycon/goticcl/internal/confset"
)

func mustSet(values ...uint64) anaval.Set {
	hashes := make([]anaval.Hash, len(values))
	for i, v := range values {
		hashes[i] = anaval.FromUint64(v)
	}
	return anaval.NewSet(hashes)
}

func mustConfSet(t *testing.T, values ...uint64) confset.Set {
	t.Helper()
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(anaval.FromUint64(v).String())
		sb.WriteByte('\n')
	}
	set, err := confset.Read(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("confset.Read: %v", err)
	}
	return set
}

// Soundness: every (diff, value) present in the output corresponds to an
// actual focus/neighbor pair whose difference is a legal confusion.
func TestRunSoundness(t *testing.T) {
	hashSet := mustSet(10, 17, 25, 40)
	foci := mustSet(17, 25)
	conf := mustConfSet(t, 7, 8, 15)

	result := Run(foci, hashSet, conf, Options{Threads: 1})

	want := Result{
		anaval.FromUint64(7):  {anaval.FromUint64(10): struct{}{}},
		anaval.FromUint64(8):  {anaval.FromUint64(17): struct{}{}},
		anaval.FromUint64(15): {anaval.FromUint64(10): struct{}{}, anaval.FromUint64(25): struct{}{}},
	}
	assertResultEqual(t, result, want)

	for diff, values := range result {
		if !conf.Contains(diff) {
			t.Fatalf("diff %s is not a legal confusion value", diff)
		}
		for h := range values {
			if !hashSet.Contains(h) {
				t.Fatalf("stored value %s is not in hashSet", h)
			}
		}
	}
}

// The downward direction stores the neighbor below the focus; the
// upward direction stores the focus itself, never the neighbor above.
func TestRunAsymmetricStorage(t *testing.T) {
	hashSet := mustSet(10, 17, 25, 40)
	foci := mustSet(17, 25)
	conf := mustConfSet(t, 7, 8, 15)

	result := Run(foci, hashSet, conf, Options{Threads: 1})

	// 40 - 25 = 15 is a legal confusion, but 40 is not itself a focus, so
	// the only way it could appear is via focus=25's upward walk, which
	// stores the focus (25), never the neighbor (40).
	if _, ok := result[anaval.FromUint64(15)][anaval.FromUint64(40)]; ok {
		t.Fatal("40 must not appear: it is never a focus and upward storage never records the neighbor")
	}
}

func TestRunDeterministicAcrossThreadCounts(t *testing.T) {
	hashSet := mustSet(10, 17, 23, 25, 31, 40, 44, 52, 60)
	foci := mustSet(17, 23, 25, 31, 44)
	conf := mustConfSet(t, 6, 7, 8, 15, 21)

	var want string
	for _, threads := range []int{1, 2, 3, 4, 8} {
		result := Run(foci, hashSet, conf, Options{Threads: threads})
		var buf strings.Builder
		if err := WriteIndex(&buf, result); err != nil {
			t.Fatalf("WriteIndex: %v", err)
		}
		got := buf.String()
		if want == "" {
			want = got
		} else if got != want {
			t.Fatalf("threads=%d produced different output:\n%s\nwant:\n%s", threads, got, want)
		}
	}
}

func TestPartitionLastSliceAbsorbsRemainder(t *testing.T) {
	foci := mustSet(1, 2, 3, 4, 5, 6, 7)
	exps := Partition(foci, 3)
	if len(exps) != 3 {
		t.Fatalf("expected 3 experiments, got %d", len(exps))
	}
	total := 0
	for _, e := range exps {
		total += len(e.Foci)
	}
	if total != 7 {
		t.Fatalf("expected all 7 foci partitioned, got %d", total)
	}
	if len(exps[2].Foci) != 3 {
		t.Fatalf("expected the last slice to absorb the remainder (3 elements), got %d", len(exps[2].Foci))
	}
}

func TestPartitionFewerFociThanWorkers(t *testing.T) {
	foci := mustSet(1, 2)
	exps := Partition(foci, 8)
	if len(exps) != 1 || len(exps[0].Foci) != 2 {
		t.Fatalf("expected a single experiment covering both foci, got %+v", exps)
	}
}

func TestFollowSetDoesNotAlterResult(t *testing.T) {
	hashSet := mustSet(10, 17, 25, 40)
	foci := mustSet(17, 25)
	conf := mustConfSet(t, 7, 8, 15)

	var trace strings.Builder
	traced := Run(foci, hashSet, conf, Options{
		Threads: 1,
		Follow:  NewFollowSet([]anaval.Hash{anaval.FromUint64(17)}),
		Trace:   &trace,
	})
	untraced := Run(foci, hashSet, conf, Options{Threads: 1})

	assertResultEqual(t, traced, untraced)
	if trace.Len() == 0 {
		t.Fatal("expected the follow set to produce trace output")
	}
}

func TestWriteConfStatsCountsValues(t *testing.T) {
	hashSet := mustSet(10, 17, 25, 40)
	foci := mustSet(17, 25)
	conf := mustConfSet(t, 7, 8, 15)
	result := Run(foci, hashSet, conf, Options{Threads: 1})

	var buf strings.Builder
	if err := WriteConfStats(&buf, result); err != nil {
		t.Fatalf("WriteConfStats: %v", err)
	}
	want := "7#1\n8#1\n15#2\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestRunEmptyConfSetYieldsEmptyResult(t *testing.T) {
	hashSet := mustSet(10, 17, 25, 40)
	foci := mustSet(17, 25)
	conf := mustConfSet(t)
	result := Run(foci, hashSet, conf, Options{Threads: 2})
	if len(result) != 0 {
		t.Fatalf("expected an empty result, got %v", result)
	}
}

func assertResultEqual(t *testing.T, got, want Result) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d differences, want %d (got=%v want=%v)", len(got), len(want), got, want)
	}
	for diff, values := range want {
		gotValues, ok := got[diff]
		if !ok {
			t.Fatalf("missing diff %s in result", diff)
		}
		if len(gotValues) != len(values) {
			t.Fatalf("diff %s: got %d values, want %d", diff, len(gotValues), len(values))
		}
		for v := range values {
			if _, ok := gotValues[v]; !ok {
				t.Fatalf("diff %s: missing value %s", diff, v)
			}
		}
	}
}
