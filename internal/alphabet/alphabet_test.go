package alphabet

import (
	"strings"
	"testing"

	"github.com/proycon/goticcl/internal/anaval"
)

const sample = "a\t1\t1\nb\t1\t2\nc\t1\t3\n"

func TestLoadAndHash(t *testing.T) {
	tbl, err := Load(strings.NewReader(sample), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Size() != 3 {
		t.Fatalf("expected 3 characters, got %d", tbl.Size())
	}

	// Hash equivalence: anagrams collide.
	h1 := tbl.HashString("abc")
	h2 := tbl.HashString("bca")
	h3 := tbl.HashString("cab")
	if anaval.Cmp(h1, h2) != 0 || anaval.Cmp(h2, h3) != 0 {
		t.Fatalf("anagrams should hash equal: %v %v %v", h1, h2, h3)
	}
	if h1.Lo != 6 {
		t.Fatalf("expected hash 6, got %d", h1.Lo)
	}

	// Unknown characters contribute zero.
	h4 := tbl.HashString("abcz")
	if anaval.Cmp(h4, h1) != 0 {
		t.Fatalf("unknown character should not change hash: %v vs %v", h4, h1)
	}
}

func TestHashAdditivity(t *testing.T) {
	tbl, err := Load(strings.NewReader(sample), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	x, y := "ab", "cba"
	got := tbl.HashString(x + y)
	want := anaval.Add(tbl.HashString(x), tbl.HashString(y))
	if anaval.Cmp(got, want) != 0 {
		t.Fatalf("hash(xy) != hash(x)+hash(y): %v != %v", got, want)
	}
}

func TestClipNeverDropsZeroFrequency(t *testing.T) {
	data := "a\t0\t1\nb\t2\t2\n"
	tbl, err := Load(strings.NewReader(data), 5)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Size() != 1 {
		t.Fatalf("expected only the zero-frequency entry to survive clip, got %d", tbl.Size())
	}
	if _, ok := tbl.weights['a']; !ok {
		t.Fatal("zero-frequency character must never be clipped")
	}
}

func TestLoadSkipsCommentsAndBlankLines(t *testing.T) {
	data := "# a comment\n\na\t1\t1\n"
	tbl, err := Load(strings.NewReader(data), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Size() != 1 {
		t.Fatalf("expected 1 character, got %d", tbl.Size())
	}
}

func TestLoadRejectsWrongFormat(t *testing.T) {
	if _, err := Load(strings.NewReader("a\t1\n"), 0); err == nil {
		t.Fatal("expected error for two-column line")
	}
}
