package lz78

import (
	"fmt"
	"io"
)

// BinarySortedTrie stores, for every node, (firstChild, nextSibling,
// edgeSymbol) in three parallel growable slices. Children of a node
// form a singly-linked list sorted by edge symbol ascending. Ported
// directly from BinarySortedTrie.hpp's find_or_insert walk: prepend at
// the head, append at the tail, or insert between two siblings,
// whichever the walk finds first.
type BinarySortedTrie struct {
	firstChild []int
	nextSib    []int
	edgeSym    []byte

	estimator Estimator
}

// NewBinarySortedTrie returns an empty trie. est is consulted on
// capacity growth; LinearEstimator{} is a reasonable default.
func NewBinarySortedTrie(est Estimator) *BinarySortedTrie {
	if est == nil {
		est = LinearEstimator{}
	}
	return &BinarySortedTrie{estimator: est}
}

func (t *BinarySortedTrie) Size() int { return len(t.firstChild) }

func (t *BinarySortedTrie) Clear() {
	t.firstChild = t.firstChild[:0]
	t.nextSib = t.nextSib[:0]
	t.edgeSym = t.edgeSym[:0]
}

// appendNode grows the three parallel slices by one node and returns
// its id. When the slices are full it applies the capacity growth
// policy of §4.8: reserve current+expected_remaining if that is below
// 2x current, otherwise fall back to Go's own geometric growth.
func (t *BinarySortedTrie) appendNode(sym byte, textLength, remainingChars int) int {
	if cap(t.firstChild) == len(t.firstChild) {
		current := len(t.firstChild)
		expected := t.estimator.ExpectedRemaining(current, textLength, remainingChars)
		newbound := current + expected
		if newbound > 0 && newbound < current*2 {
			t.reserve(newbound)
		}
	}

	id := len(t.firstChild)
	t.firstChild = append(t.firstChild, UNDEF)
	t.nextSib = append(t.nextSib, UNDEF)
	t.edgeSym = append(t.edgeSym, sym)
	return id
}

func (t *BinarySortedTrie) reserve(n int) {
	if cap(t.firstChild) >= n {
		return
	}
	fc := make([]int, len(t.firstChild), n)
	copy(fc, t.firstChild)
	t.firstChild = fc

	ns := make([]int, len(t.nextSib), n)
	copy(ns, t.nextSib)
	t.nextSib = ns

	es := make([]byte, len(t.edgeSym), n)
	copy(es, t.edgeSym)
	t.edgeSym = es
}

// AddRoot and GetRoot both return the symbol value itself: depth-1
// nodes share index space with symbols, as §4.7 prescribes for this
// variant. AddRoot still must append backing storage for the root's own
// child list.
func (t *BinarySortedTrie) AddRoot(symbol byte) int {
	for len(t.firstChild) <= int(symbol) {
		t.appendNode(0, 0, 0)
	}
	return int(symbol)
}

func (t *BinarySortedTrie) GetRoot(symbol byte) int { return int(symbol) }

// FindOrInsert implements the sorted-sibling-list walk of §4.8.
func (t *BinarySortedTrie) FindOrInsert(parent int, symbol byte) int {
	return t.findOrInsert(parent, symbol, 0, 0)
}

// FindOrInsertSized is FindOrInsert with growth-estimator hints
// (textLength, remainingChars) forwarded to the capacity policy; a
// streaming caller that knows these numbers gets better-sized growth
// than the zero-hint FindOrInsert.
func (t *BinarySortedTrie) FindOrInsertSized(parent int, symbol byte, textLength, remainingChars int) int {
	return t.findOrInsert(parent, symbol, textLength, remainingChars)
}

func (t *BinarySortedTrie) findOrInsert(parent int, symbol byte, textLength, remainingChars int) int {
	if t.firstChild[parent] == UNDEF {
		newID := t.appendNode(symbol, textLength, remainingChars)
		t.firstChild[parent] = newID
		return UNDEF
	}

	node := t.firstChild[parent]
	if t.edgeSym[node] > symbol {
		newID := t.appendNode(symbol, textLength, remainingChars)
		t.nextSib[newID] = node
		t.firstChild[parent] = newID
		return UNDEF
	}

	for {
		if t.edgeSym[node] == symbol {
			return node
		}
		if t.nextSib[node] == UNDEF {
			newID := t.appendNode(symbol, textLength, remainingChars)
			t.nextSib[node] = newID
			return UNDEF
		}
		if t.edgeSym[t.nextSib[node]] > symbol {
			newID := t.appendNode(symbol, textLength, remainingChars)
			t.nextSib[newID] = t.nextSib[node]
			t.nextSib[node] = newID
			return UNDEF
		}
		node = t.nextSib[node]
	}
}

// Print writes node count and backing-slice capacity, the binary-sorted
// variant's equivalent of HashTrie.Print's load-factor report.
func (t *BinarySortedTrie) Print(w io.Writer) {
	fmt.Fprintf(w, "nodes=%d capacity=%d\n", len(t.firstChild), cap(t.firstChild))
}
