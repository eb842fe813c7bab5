// Package lzss holds the simple factor container used by LZ78-derived
// compressors once a dictionary match has been found: a (position,
// source, length) triple plus an append-only buffer tracking the
// shortest and longest factor seen. Ported from LZSSFactors.hpp.
package lzss

import "sort"

// Factor is an (earlier-prefix-id, next-symbol) match recorded as a
// (position, source, length) triple: the literal run starting at Pos
// is a copy of the Len bytes starting at Src.
type Factor struct {
	Pos uint64
	Src uint64
	Len uint64
}

// FactorBuffer is an append-only sequence of factors. It tracks whether
// the sequence is currently sorted by Pos and the shortest/longest
// factor lengths seen, exactly as LZSSFactors.hpp's FactorBuffer does,
// so that a caller can ask for either without re-scanning.
type FactorBuffer struct {
	factors  []Factor
	sorted   bool
	shortest uint64
	longest  uint64
}

// NewFactorBuffer returns an empty buffer.
func NewFactorBuffer() *FactorBuffer {
	return &FactorBuffer{sorted: true}
}

// Append records f. The buffer is no longer considered sorted unless f
// extends the existing order (Pos >= last factor's Pos).
func (b *FactorBuffer) Append(f Factor) {
	if len(b.factors) == 0 {
		b.shortest = f.Len
		b.longest = f.Len
	} else {
		if f.Pos < b.factors[len(b.factors)-1].Pos {
			b.sorted = false
		}
		if f.Len < b.shortest {
			b.shortest = f.Len
		}
		if f.Len > b.longest {
			b.longest = f.Len
		}
	}
	b.factors = append(b.factors, f)
}

// Len reports how many factors have been recorded.
func (b *FactorBuffer) Len() int { return len(b.factors) }

// Factors returns the recorded factors in their current order.
func (b *FactorBuffer) Factors() []Factor { return b.factors }

// Shortest and Longest return the minimum and maximum factor length
// seen so far. Both are zero for an empty buffer.
func (b *FactorBuffer) Shortest() uint64 { return b.shortest }
func (b *FactorBuffer) Longest() uint64  { return b.longest }

// Sorted reports whether Append calls have kept Factors in ascending
// Pos order.
func (b *FactorBuffer) Sorted() bool { return b.sorted }

// Sort orders the factors by Pos ascending, matching FactorBuffer's own
// sort() method, and marks the buffer sorted.
func (b *FactorBuffer) Sort() {
	if b.sorted {
		return
	}
	sort.Slice(b.factors, func(i, j int) bool { return b.factors[i].Pos < b.factors[j].Pos })
	b.sorted = true
}
