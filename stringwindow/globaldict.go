package stringwindow

import (
	"fmt"
	"sync"

	"github.com/derekparker/trie"
)

// MaxGlobalDictSize is the hard cap on the global string dictionary named
// in the entropy-coding external interfaces: up to 4096 strings map to a
// stable index shared by every file in a corpus run.
const MaxGlobalDictSize = 4096

// GlobalDict is the corpus-wide string→index table consulted on a
// StringCache miss before falling back to a per-file literal. Lookups go
// through a map; every added string is also stored in a derekparker/trie,
// which backs Keys and PrefixSearch.
type GlobalDict struct {
	mu    sync.Mutex
	t     *trie.Trie
	byStr map[string]int
	order []string
}

// NewGlobalDict returns an empty dictionary.
func NewGlobalDict() *GlobalDict {
	return &GlobalDict{t: trie.New(), byStr: make(map[string]int)}
}

// Add inserts str if it is not already present and the dictionary has not
// reached MaxGlobalDictSize, returning its index either way. ok is false
// only when str is new but the dictionary is already full.
func (d *GlobalDict) Add(str string) (index int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if idx, found := d.byStr[str]; found {
		return idx, true
	}
	if len(d.order) >= MaxGlobalDictSize {
		return 0, false
	}
	idx := len(d.order)
	d.t.Add(str, idx)
	d.byStr[str] = idx
	d.order = append(d.order, str)
	return idx, true
}

// Lookup returns str's index without inserting it.
func (d *GlobalDict) Lookup(str string) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, found := d.byStr[str]
	return idx, found
}

// Len returns the number of strings currently in the dictionary.
func (d *GlobalDict) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

// String returns the string at index i.
func (d *GlobalDict) String(i int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.order) {
		return "", fmt.Errorf("stringwindow: global dict index %d out of range", i)
	}
	return d.order[i], nil
}

// Keys returns every string currently in the dictionary, insertion order
// not guaranteed (delegates to the underlying trie).
func (d *GlobalDict) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.t.Keys()
}

// PrefixSearch returns every dictionary string with the given prefix.
func (d *GlobalDict) PrefixSearch(prefix string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.t.PrefixSearch(prefix)
}
