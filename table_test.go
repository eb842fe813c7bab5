package huffz78

import (
	"bytes"
	"testing"
)

func countsOf(s string) []uint64 {
	counts := make([]uint64, 256)
	for _, b := range []byte(s) {
		counts[b]++
	}
	return counts
}

func TestTableKraftEquality(t *testing.T) {
	cases := []string{"ab", "abracadabra", "aaaabbbbccccddddeeee"}
	for _, c := range cases {
		tbl := newTable(countsOf(c))
		var sum uint64
		// Sigma * 2^L, compared length by length, avoids floating point.
		total := uint64(1) << tbl.Longest
		var kraft uint64
		for i, n := range tbl.NumOfLength {
			l := i + 1
			kraft += n * (total >> uint(l))
		}
		sum = kraft
		if sum != total {
			t.Fatalf("%q: Kraft sum = %d, want %d", c, sum, total)
		}
	}
}

func TestTableMonotoneLengths(t *testing.T) {
	tbl := newTable(countsOf("abracadabra"))
	for i := 1; i < len(tbl.lengthByRank); i++ {
		if tbl.lengthByRank[i] < tbl.lengthByRank[i-1] {
			t.Fatalf("lengths not monotone at rank %d: %v", i, tbl.lengthByRank)
		}
	}
}

func TestTableFrequencyLengthMonotonicity(t *testing.T) {
	counts := countsOf("abracadabra")
	tbl := newTable(counts)
	tbl.deriveEncode()

	for a := 0; a < 256; a++ {
		if counts[a] == 0 {
			continue
		}
		ra := tbl.rankBySymbol[a]
		for b := 0; b < 256; b++ {
			if counts[b] == 0 {
				continue
			}
			rb := tbl.rankBySymbol[b]
			if counts[a] > counts[b] && tbl.lengthByRank[ra] > tbl.lengthByRank[rb] {
				t.Fatalf("freq(%c)=%d > freq(%c)=%d but length %d > %d",
					a, counts[a], b, counts[b], tbl.lengthByRank[ra], tbl.lengthByRank[rb])
			}
		}
	}
}

func TestTableTwoSymbolCanonicalAssignment(t *testing.T) {
	tbl := newTable(countsOf("ab"))
	tbl.deriveEncode()

	if tbl.Longest != 1 {
		t.Fatalf("longest = %d, want 1", tbl.Longest)
	}
	ra := tbl.rankBySymbol['a']
	rb := tbl.rankBySymbol['b']
	if tbl.codewordByRank[ra] != 0 || tbl.codewordByRank[rb] != 1 {
		t.Fatalf("a -> %d, b -> %d, want a -> 0, b -> 1", tbl.codewordByRank[ra], tbl.codewordByRank[rb])
	}
}

func TestTableStatsIsIndependentCopy(t *testing.T) {
	tbl := newTable(countsOf("abracadabra"))

	s := tbl.Stats()
	if s.AlphabetSize != tbl.AlphabetSize || s.Longest != tbl.Longest {
		t.Fatalf("Stats() = %+v, want alphabet_size=%d longest=%d", s, tbl.AlphabetSize, tbl.Longest)
	}
	if len(s.NumOfLength) != len(tbl.NumOfLength) {
		t.Fatalf("Stats().NumOfLength has len %d, want %d", len(s.NumOfLength), len(tbl.NumOfLength))
	}
	for i := range s.NumOfLength {
		if s.NumOfLength[i] != tbl.NumOfLength[i] {
			t.Fatalf("Stats().NumOfLength[%d] = %d, want %d", i, s.NumOfLength[i], tbl.NumOfLength[i])
		}
	}

	s.NumOfLength[0] = 999
	if tbl.NumOfLength[0] == 999 {
		t.Fatal("mutating Stats().NumOfLength affected the Table")
	}
}

func TestTableHeaderRoundTrip(t *testing.T) {
	tbl := newTable(countsOf("abracadabra"))

	buf := new(bytes.Buffer)
	bw := newBitWriter(buf)
	tbl.encodeHeader(bw)
	if err := bw.Close(); err != nil {
		t.Fatal(err)
	}

	br := newBitReader(buf)
	got, err := decodeHeader(br)
	if err != nil {
		t.Fatal(err)
	}

	if got.Longest != tbl.Longest || got.AlphabetSize != tbl.AlphabetSize {
		t.Fatalf("header mismatch: got %+v, want %+v", got, tbl)
	}
	for i := range tbl.SymbolByRank {
		if got.SymbolByRank[i] != tbl.SymbolByRank[i] {
			t.Fatalf("symbol mismatch at rank %d: got %d want %d", i, got.SymbolByRank[i], tbl.SymbolByRank[i])
		}
	}
}
