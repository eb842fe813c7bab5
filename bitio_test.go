package huffz78

import (
	"bytes"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	buf := new(bytes.Buffer)

	w := newBitWriter(buf)
	for i := uint64(0); i < 1000; i++ {
		w.WriteUvarint(i)
	}
	err := w.Close()
	if err != nil {
		t.Fatal(err)
	}

	r := newBitReader(buf)
	for i := uint64(0); i < 1000; i++ {
		j := r.ReadUvarint()
		if i != j {
			t.Fatalf("%d != %d", i, j)
		}

		if r.Err() != nil {
			t.Fatal(r.Err())
		}
	}
}

func TestBitIntRoundTrip(t *testing.T) {
	buf := new(bytes.Buffer)

	w := newBitWriter(buf)
	w.WriteBit(1)
	w.WriteInt(0x1a, 8)
	w.WriteInt(0x3, 2)
	w.WriteBit(0)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := newBitReader(buf)
	if r.ReadBit() != 1 {
		t.Fatal("bit mismatch")
	}
	if v := r.ReadInt(8); v != 0x1a {
		t.Fatalf("int mismatch: %#x", v)
	}
	if v := r.ReadInt(2); v != 0x3 {
		t.Fatalf("int mismatch: %#x", v)
	}
	if r.ReadBit() != 0 {
		t.Fatal("bit mismatch")
	}
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
}

func TestEof(t *testing.T) {
	buf := new(bytes.Buffer)
	w := newBitWriter(buf)
	w.WriteInt(0xff, 8)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := newBitReader(buf)
	if r.Eof() {
		t.Fatal("expected more data")
	}
	r.ReadInt(8)
	if !r.Eof() {
		t.Fatal("expected eof")
	}
}
