package huffz78

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := Encode(buf, data); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return got
}

func TestRoundTripBoundaryScenarios(t *testing.T) {
	cases := map[string][]byte{
		"empty":         {},
		"single symbol": []byte("aaaa"),
		"two symbols":   []byte("ab"),
		"abracadabra":   []byte("abracadabra"),
	}
	for name, data := range cases {
		got := roundTrip(t, data)
		if !bytes.Equal(got, data) {
			t.Fatalf("%s: round trip mismatch: got %q, want %q", name, got, data)
		}
	}
}

func TestRoundTrip256DistinctSymbols(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Fatal("round trip mismatch on 256 distinct symbols")
	}
}

func TestRoundTripSkewedDistribution(t *testing.T) {
	data := make([]byte, 0, 1_000_001)
	for i := 0; i < 1_000_000; i++ {
		data = append(data, 'x')
	}
	data = append(data, 'y')

	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Fatal("round trip mismatch on skewed distribution")
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		n := rng.Intn(2000)
		data := make([]byte, n)
		rng.Read(data)
		if got := roundTrip(t, data); !bytes.Equal(got, data) {
			t.Fatalf("trial %d: round trip mismatch (n=%d)", trial, n)
		}
	}
}

func TestTrivialModeBodyIsRawBytes(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := Encode(buf, []byte("aaaa")); err != nil {
		t.Fatal(err)
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x61, 0x61, 0x61, 0x61}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}

	// Past the mode bit and the text length, the body is the symbols
	// themselves as raw 8-bit values.
	br := newBitReader(bytes.NewReader(buf.Bytes()))
	if mode := br.ReadBit(); mode != 0 {
		t.Fatalf("mode bit = %d, want 0", mode)
	}
	if n := br.ReadUvarint(); n != 4 {
		t.Fatalf("text length = %d, want 4", n)
	}
	for i, w := range want {
		if b := byte(br.ReadInt(8)); b != w {
			t.Fatalf("body byte %d = %#x, want %#x", i, b, w)
		}
	}
}
