package confset

import (
	"strings"
	"testing"
)

func TestReadIgnoresMetadataAndBlankLines(t *testing.T) {
	data := "7\n8 # e<->c confusion\n\n15\n"
	set, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("expected 3 values, got %d", set.Len())
	}
	mx, ok := set.Max()
	if !ok || mx.Lo != 15 {
		t.Fatalf("expected max 15, got %+v (%v)", mx, ok)
	}
}

func TestReadEmptySetHasNoMax(t *testing.T) {
	set, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := set.Max(); ok {
		t.Fatal("expected no max for an empty confusion set")
	}
}
