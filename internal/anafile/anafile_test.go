package anafile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/proycon/goticcl/internal/anaval"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	b := NewBuckets()
	b.Insert(anaval.FromUint64(6), "bca")
	b.Insert(anaval.FromUint64(6), "abc")
	b.Insert(anaval.FromUint64(6), "cab")
	b.Insert(anaval.FromUint64(10), "zzz")

	var buf bytes.Buffer
	if err := Write(&buf, b); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "6~abc#bca#cab\n10~zzz\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected serialization:\n got: %q\nwant: %q", buf.String(), want)
	}

	got, err := Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(b) {
		t.Fatalf("bucket count mismatch: got %d want %d", len(got), len(b))
	}
	for h, words := range b {
		gotWords, ok := got[h]
		if !ok {
			t.Fatalf("missing bucket %v", h)
		}
		if len(gotWords) != len(words) {
			t.Fatalf("bucket %v: word count mismatch", h)
		}
		for w := range words {
			if _, ok := gotWords[w]; !ok {
				t.Fatalf("bucket %v missing word %q", h, w)
			}
		}
	}
}

func TestParseLineSingleWord(t *testing.T) {
	h, words, err := ParseLine("42~onlyword")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if h.Lo != 42 {
		t.Fatalf("expected hash 42, got %d", h.Lo)
	}
	if len(words) != 1 || words[0] != "onlyword" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestParseLineRejectsMissingTilde(t *testing.T) {
	if _, _, err := ParseLine("nohashtilde"); err == nil {
		t.Fatal("expected error for missing '~'")
	}
}

func TestReadStopsAtBlankLine(t *testing.T) {
	input := "1~a\n\n2~b\n"
	got, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected reading to stop at the blank line, got %d buckets", len(got))
	}
}
