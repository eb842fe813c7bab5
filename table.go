package huffz78

import (
	"fmt"
	"io"
	"sort"
)

// noRank marks "this symbol does not appear in the effective alphabet"
// in Table.rankBySymbol.
const noRank = -1

// Table is the canonical Huffman code for some effective alphabet. The
// exported fields are exactly the minimum data needed to decode, the
// persisted form written to a header; the unexported fields are the
// additional, lazily-derived arrays an encoder or decoder needs at
// runtime. Splitting the two means a caller that only decodes never
// materializes the encode-side arrays.
type Table struct {
	Longest      byte     // L: length of the longest code word
	NumOfLength  []uint64 // len == Longest; NumOfLength[i] counts code words of length i+1
	AlphabetSize int      // sigma
	SymbolByRank []byte   // canonical rank -> symbol, len == AlphabetSize

	// decode-side, derived by deriveDecode
	lengthByRank   []byte
	firstCodeOfLen []uint64
	firstRankOfLen []int

	// encode-side, derived by deriveEncode
	codewordByRank []uint64
	rankBySymbol   [256]int16
}

// newTable builds the canonical Huffman table for a 256-entry frequency
// table. Panics if the effective alphabet has fewer than two symbols:
// callers must handle the sigma<=1 trivial modes before reaching for
// the general path -- the same precondition gen_huffmantable documents
// ("C must contain at least two non-zero values") rather than checks
// at runtime.
func newTable(counts []uint64) *Table {
	symbols := buildSymbolTable(counts)
	sigma := len(symbols)
	if sigma < 2 {
		panic("huffz78: newTable requires an effective alphabet of size >= 2")
	}

	rankCounts := make([]uint64, sigma)
	for i, s := range symbols {
		rankCounts[i] = counts[s]
	}
	lengths := assignCodeLengths(rankCounts)

	// codeword_order: permutation sorting (length, symbol) ascending.
	// symbols is already ascending, so a stable sort on length alone
	// would do, but sorting on both keeps the intent explicit.
	order := make([]int, sigma)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if lengths[a] != lengths[b] {
			return lengths[a] < lengths[b]
		}
		return symbols[a] < symbols[b]
	})

	t := &Table{AlphabetSize: sigma}
	t.SymbolByRank = make([]byte, sigma)
	t.lengthByRank = make([]byte, sigma)
	for rank, i := range order {
		t.SymbolByRank[rank] = symbols[i]
		t.lengthByRank[rank] = lengths[i]
	}

	t.Longest = t.lengthByRank[sigma-1]
	t.NumOfLength = make([]uint64, t.Longest)
	for _, l := range t.lengthByRank {
		t.NumOfLength[l-1]++
	}

	t.deriveDecode()
	return t
}

// deriveDecode computes the decode-side auxiliary arrays
// (lengthByRank, firstCodeOfLen, firstRankOfLen) from the persisted
// fields. Idempotent: a no-op once already derived.
func (t *Table) deriveDecode() {
	if t.firstCodeOfLen != nil {
		return
	}

	if t.lengthByRank == nil {
		t.lengthByRank = expandCodeLengths(t.NumOfLength, t.AlphabetSize)
	}

	t.firstCodeOfLen = firstCodeOfLength(t.NumOfLength)
	t.firstRankOfLen = firstRankOfLength(t.NumOfLength)
}

// deriveEncode additionally computes the encode-side arrays
// (codewordByRank, rankBySymbol). Only the encoder calls this: a
// decode-only table never pays for it.
func (t *Table) deriveEncode() {
	if t.codewordByRank != nil {
		return
	}
	t.deriveDecode()

	next := make([]uint64, len(t.firstCodeOfLen))
	copy(next, t.firstCodeOfLen)

	t.codewordByRank = make([]uint64, t.AlphabetSize)
	for rank, l := range t.lengthByRank {
		t.codewordByRank[rank] = next[l-1]
		next[l-1]++
	}

	for i := range t.rankBySymbol {
		t.rankBySymbol[i] = noRank
	}
	for rank, s := range t.SymbolByRank {
		t.rankBySymbol[s] = int16(rank)
	}
}

// expandCodeLengths is gen_ordered_codelengths from the design notes: it
// expands the run-length form (NumOfLength) back into one length per
// canonical rank, ascending.
func expandCodeLengths(numOfLength []uint64, sigma int) []byte {
	lengths := make([]byte, 0, sigma)
	for i, n := range numOfLength {
		for j := uint64(0); j < n; j++ {
			lengths = append(lengths, byte(i+1))
		}
	}
	return lengths
}

// firstCodeOfLength implements the canonical code rule's descending
// recurrence: first_code_of_length[L] = 0, and for l < L,
// first_code_of_length[l] = (first_code_of_length[l+1] + num_of_length[l+1]) / 2.
func firstCodeOfLength(numOfLength []uint64) []uint64 {
	l := len(numOfLength)
	first := make([]uint64, l)
	first[l-1] = 0
	for i := l - 1; i > 0; i-- {
		first[i-1] = (first[i] + numOfLength[i]) / 2
	}
	return first
}

// firstRankOfLength returns, for each length, the canonical rank of its
// first code word.
func firstRankOfLength(numOfLength []uint64) []int {
	first := make([]int, len(numOfLength))
	rank := 0
	for i, n := range numOfLength {
		first[i] = rank
		rank += int(n)
	}
	return first
}

// encodeHeader writes the persisted table fields in wire order: longest,
// then num_of_length, then alphabet_size, then the raw symbol bytes.
func (t *Table) encodeHeader(w *bitWriter) {
	w.WriteUvarint(uint64(t.Longest))
	for _, n := range t.NumOfLength {
		w.WriteUvarint(n)
	}
	w.WriteUvarint(uint64(t.AlphabetSize))
	for _, s := range t.SymbolByRank {
		w.WriteInt(uint64(s), 8)
	}
}

// decodeHeader is huffmantable_decode: it reads exactly what
// encodeHeader wrote and rejects malformed headers -- varint overflow,
// or sigma or L out of range, are fatal for the current decode.
func decodeHeader(r *bitReader) (*Table, error) {
	longest := r.ReadUvarint()
	if err := r.Err(); err != nil {
		return nil, err
	}
	if longest == 0 || longest > 64 {
		return nil, fmt.Errorf("huffz78: malformed header: longest code length %d out of range", longest)
	}

	numOfLength := make([]uint64, longest)
	var sigma uint64
	for i := range numOfLength {
		numOfLength[i] = r.ReadUvarint()
		sigma += numOfLength[i]
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	alphabetSize := r.ReadUvarint()
	if err := r.Err(); err != nil {
		return nil, err
	}
	if alphabetSize > 256 || alphabetSize != sigma {
		return nil, fmt.Errorf("huffz78: malformed header: alphabet size %d inconsistent with code length counts %d", alphabetSize, sigma)
	}

	symbols := make([]byte, alphabetSize)
	for i := range symbols {
		symbols[i] = byte(r.ReadInt(8))
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	t := &Table{
		Longest:      byte(longest),
		NumOfLength:  numOfLength,
		AlphabetSize: int(alphabetSize),
		SymbolByRank: symbols,
	}
	t.deriveDecode()
	return t, nil
}

// decodeOne performs the bit-at-a-time canonical decode: shift the
// accumulator left, OR in the next bit, and stop once it is no longer
// below the first code word of the current length. Returns the
// canonical rank of the decoded symbol.
func (t *Table) decodeOne(br *bitReader) (int, error) {
	var v uint64
	length := 0

	for {
		v = (v << 1) | uint64(br.ReadBit())
		length++
		if err := br.Err(); err != nil {
			return 0, fmt.Errorf("huffz78: bit stream ended before all symbols were read: %w", err)
		}
		if length > int(t.Longest) {
			return 0, fmt.Errorf("huffz78: malformed Huffman stream: no matching code word after %d bits", length)
		}
		if v >= t.firstCodeOfLen[length-1] {
			break
		}
	}

	rank := t.firstRankOfLen[length-1] + int(v-t.firstCodeOfLen[length-1])
	if rank < 0 || rank >= t.AlphabetSize {
		return 0, fmt.Errorf("huffz78: malformed Huffman stream: decoded rank %d out of range", rank)
	}
	return rank, nil
}

// TableStats is a snapshot of a Table's shape, for callers that want to
// consume it programmatically (e.g. to compare tables across inputs)
// instead of parsing Print's text.
type TableStats struct {
	AlphabetSize int
	Longest      byte
	NumOfLength  []uint64
}

// Stats returns a TableStats snapshot. The returned NumOfLength is a
// copy: mutating it does not affect the Table.
func (t *Table) Stats() TableStats {
	numOfLength := make([]uint64, len(t.NumOfLength))
	copy(numOfLength, t.NumOfLength)
	return TableStats{
		AlphabetSize: t.AlphabetSize,
		Longest:      t.Longest,
		NumOfLength:  numOfLength,
	}
}

// Print writes a human-readable summary of the table: alphabet size,
// longest code length, and the per-length code word counts. Grounded
// on the teacher's htLut.Print/htCode.Print debug dumpers -- a plain
// diagnostic aid built on top of Stats, not part of the wire format.
func (t *Table) Print(w io.Writer) {
	s := t.Stats()
	fmt.Fprintf(w, "alphabet_size=%d longest=%d\n", s.AlphabetSize, s.Longest)
	for i, n := range s.NumOfLength {
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "  length %2d: %d code words\n", i+1, n)
	}
}
