package stringwindow

import (
	"strconv"
	"testing"
)

func TestGlobalDictAddAndLookup(t *testing.T) {
	d := NewGlobalDict()
	idx1, ok := d.Add("foo")
	if !ok || idx1 != 0 {
		t.Fatalf("Add(foo) = %d, %v, want 0, true", idx1, ok)
	}
	idx2, ok := d.Add("bar")
	if !ok || idx2 != 1 {
		t.Fatalf("Add(bar) = %d, %v, want 1, true", idx2, ok)
	}
	// Re-adding an existing string returns its original index.
	idx3, ok := d.Add("foo")
	if !ok || idx3 != 0 {
		t.Errorf("re-Add(foo) = %d, %v, want 0, true", idx3, ok)
	}
	if got, ok := d.Lookup("bar"); !ok || got != 1 {
		t.Errorf("Lookup(bar) = %d, %v, want 1, true", got, ok)
	}
	if _, ok := d.Lookup("nope"); ok {
		t.Errorf("Lookup(nope) = true, want false")
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}

func TestGlobalDictRejectsOverCapacity(t *testing.T) {
	d := NewGlobalDict()
	for i := 0; i < MaxGlobalDictSize; i++ {
		if _, ok := d.Add("s" + strconv.Itoa(i)); !ok {
			t.Fatalf("Add #%d unexpectedly rejected before reaching capacity", i)
		}
	}
	if _, ok := d.Add("one-too-many"); ok {
		t.Errorf("Add at capacity %d: want rejection, got accepted", MaxGlobalDictSize)
	}
}
