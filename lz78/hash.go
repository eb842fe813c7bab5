package lz78

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// HashFunc hashes a packed (parent, symbol) key. Pluggable per §4.9.
type HashFunc func(key uint64) uint64

// MixHash is the default 64-bit multiplicative mix with avalanche
// (xor-shift-multiply-xor-shift), the splitmix64 finalizer.
func MixHash(key uint64) uint64 {
	key ^= key >> 30
	key *= 0xbf58476d1ce4e5b9
	key ^= key >> 27
	key *= 0x94d049bb133111eb
	key ^= key >> 31
	return key
}

// XXHash64 is an alternate hash function built on cespare/xxhash/v2,
// grounded on elliotnunn-BeHierarchic's use of that package to hash
// fixed-size identifiers (its fileid package feeds a small struct
// through an xxhash.Digest the same way this trie feeds an 8-byte key).
func XXHash64(key uint64) uint64 {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(key >> uint(8*i))
	}
	return xxhash.Sum64(b[:])
}

// packKey packs (parent, symbol) into one machine word per §4.9:
// parent occupies the high bits, symbol the low byte. Injective as long
// as parent < 2^56.
const maxParent = 1<<56 - 1

func packKey(parent int, symbol byte) (uint64, bool) {
	if parent < 0 || uint64(parent) > maxParent {
		return 0, false
	}
	return uint64(parent)<<8 | uint64(symbol), true
}

type slot struct {
	key  uint64
	node int
	used bool
}

// openTable is a linear-probed open-addressing table over slot, shared
// by the primary (power-of-two sized) and secondary (direct sized)
// tables of HashTrie.
type openTable struct {
	slots   []slot
	entries int
}

func newOpenTable(size int) *openTable {
	if size < 1 {
		size = 1
	}
	return &openTable{slots: make([]slot, size)}
}

func (t *openTable) capacity() int { return len(t.slots) }

// find returns (slot, node, true) on a hit, or probes to the first free
// slot and reports (slot, 0, false) on a miss -- the caller inserts there.
func (t *openTable) find(key uint64, h HashFunc) (int, int, bool) {
	n := len(t.slots)
	i := int(h(key) % uint64(n))
	for {
		s := &t.slots[i]
		if !s.used {
			return i, 0, false
		}
		if s.key == key {
			return i, s.node, true
		}
		i++
		if i == n {
			i = 0
		}
	}
}

func (t *openTable) insertAt(i int, key uint64, node int) {
	t.slots[i] = slot{key: key, node: node, used: true}
	t.entries++
}

// HashTrie is the two-table compacting hash trie of §4.9: a low-load
// power-of-two primary table absorbs inserts until the estimated final
// size is known, then a single migration moves everything into a
// high-load secondary table sized for that estimate. Ported from
// HashTriePlus.hpp.
type HashTrie struct {
	hash HashFunc
	est  Estimator

	primary   *openTable
	secondary *openTable
	migrated  bool

	maxLoadPrimary   float64
	maxLoadSecondary float64

	size int // node count, roots included
}

// NewHashTrie returns an empty two-table hash trie. hash defaults to
// MixHash; est defaults to LinearEstimator{}.
func NewHashTrie(hash HashFunc, est Estimator) *HashTrie {
	if hash == nil {
		hash = MixHash
	}
	if est == nil {
		est = LinearEstimator{}
	}
	return &HashTrie{
		hash:             hash,
		est:              est,
		primary:          newOpenTable(16),
		maxLoadPrimary:   0.30,
		maxLoadSecondary: 0.95,
	}
}

func (t *HashTrie) Size() int { return t.size }

func (t *HashTrie) Clear() {
	t.primary = newOpenTable(16)
	t.secondary = nil
	t.migrated = false
	t.size = 0
}

func (t *HashTrie) active() *openTable {
	if t.migrated {
		return t.secondary
	}
	return t.primary
}

// AddRoot registers symbol as a root child and returns its node id,
// which is always int(symbol): depth-1 nodes share index space with
// symbols, exactly as in BinarySortedTrie. No table entry is needed
// since roots never collide with a non-root (parent, symbol) key. Like
// BinarySortedTrie.AddRoot's padding loop, this must tolerate roots
// added out of order or with gaps (trie.go's Trie doc only promises
// "once per distinct root symbol", not "for all 256 symbols in order"):
// Size() is kept at a high-water mark of int(symbol)+1 rather than a
// plain call counter, so GetRoot(symbol) == AddRoot(symbol) regardless
// of how many, or which, roots were registered before it.
func (t *HashTrie) AddRoot(symbol byte) int {
	if int(symbol)+1 > t.size {
		t.size = int(symbol) + 1
	}
	return int(symbol)
}

func (t *HashTrie) GetRoot(symbol byte) int { return int(symbol) }

func (t *HashTrie) FindOrInsert(parent int, symbol byte) int {
	return t.FindOrInsertSized(parent, symbol, 0, 0)
}

// FindOrInsertSized is FindOrInsert with estimator hints forwarded to
// the growth trigger.
func (t *HashTrie) FindOrInsertSized(parent int, symbol byte, textLength, remainingChars int) int {
	key, ok := packKey(parent, symbol)
	if !ok {
		panic("huffz78/lz78: parent id overflows the composite key")
	}

	tbl := t.active()
	i, node, hit := tbl.find(key, t.hash)
	if hit {
		return node
	}

	newID := t.size
	tbl.insertAt(i, key, newID)
	t.size++

	t.maybeGrow(textLength, remainingChars)

	return UNDEF
}

// maybeGrow implements the growth trigger of §4.9 step 2: once the
// primary table would exceed its max load factor, decide whether the
// estimated final size still fits comfortably in a directly-sized
// secondary table, and migrate if so; otherwise the primary doubles.
// After migration the secondary doubles whenever it exceeds its own
// max load factor.
func (t *HashTrie) maybeGrow(textLength, remainingChars int) {
	rehash := func(src *openTable, size int) *openTable {
		dst := newOpenTable(size)
		for _, s := range src.slots {
			if !s.used {
				continue
			}
			i, _, hit := dst.find(s.key, t.hash)
			if hit {
				panic("huffz78/lz78: duplicate key during hash trie migration")
			}
			dst.insertAt(i, s.key, s.node)
		}
		return dst
	}

	if t.migrated {
		s := t.secondary
		if float64(s.entries) > float64(s.capacity())*t.maxLoadSecondary {
			t.secondary = rehash(s, 2*s.capacity())
		}
		return
	}

	p := t.primary
	if float64(p.entries) <= float64(p.capacity())*t.maxLoadPrimary {
		return
	}

	estRemaining := t.est.ExpectedRemaining(t.size, textLength, remainingChars)
	expected := int(float64(p.entries+estRemaining)/t.maxLoadSecondary) + 1

	if float64(expected) >= float64(p.capacity())*2*t.maxLoadSecondary {
		t.primary = rehash(p, 2*p.capacity())
		return
	}

	t.secondary = rehash(p, expected)
	t.primary = newOpenTable(1)
	t.migrated = true
}

// Print writes node count and each table's fill level, the diagnostic
// counterpart of the growth-trigger arithmetic in maybeGrow.
func (t *HashTrie) Print(w io.Writer) {
	fmt.Fprintf(w, "nodes=%d migrated=%v\n", t.size, t.migrated)
	fmt.Fprintf(w, "  primary:   entries=%d capacity=%d\n", t.primary.entries, t.primary.capacity())
	if t.secondary != nil {
		fmt.Fprintf(w, "  secondary: entries=%d capacity=%d\n", t.secondary.entries, t.secondary.capacity())
	}
}
