package lz78

import "testing"

func TestBinarySortedTrieFindOrInsertOnce(t *testing.T) {
	tr := NewBinarySortedTrie(nil)
	for s := 0; s < 256; s++ {
		tr.AddRoot(byte(s))
	}

	seen := map[[2]int]int{}
	input := []struct {
		parent int
		sym    byte
	}{
		{int('a'), 'b'}, {int('a'), 'c'}, {int('a'), 'b'}, {int('a'), 'a'}, {int('b'), 'a'},
	}

	for _, in := range input {
		got := tr.FindOrInsert(in.parent, in.sym)
		key := [2]int{in.parent, int(in.sym)}
		if id, ok := seen[key]; ok {
			if got != id {
				t.Fatalf("expected hit id %d, got %d", id, got)
			}
			continue
		}
		if got != UNDEF {
			t.Fatalf("expected UNDEF on first insert of %v, got %d", in, got)
		}
		seen[key] = tr.Size() - 1
	}
}

func TestBinarySortedTrieSiblingOrdering(t *testing.T) {
	tr := NewBinarySortedTrie(nil)
	for s := 0; s < 256; s++ {
		tr.AddRoot(byte(s))
	}

	parent := int('z')
	// Insert out of order; the sibling list must stay sorted by symbol.
	for _, c := range []byte{'m', 'a', 'z', 'c'} {
		tr.FindOrInsert(parent, c)
	}

	var order []byte
	for node := tr.firstChild[parent]; node != UNDEF; node = tr.nextSib[node] {
		order = append(order, tr.edgeSym[node])
	}
	want := []byte{'a', 'c', 'm', 'z'}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}
