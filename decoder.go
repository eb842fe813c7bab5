package huffz78

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoMore is returned by Decoder.ReadByte once every symbol recorded
// in the stream's text length has been produced.
var ErrNoMore = errors.New("huffz78: no more symbols")

// Decoder reads a canonical Huffman stream one symbol at a time, mode
// bit and header decoded on construction, mirroring the teacher's
// Decompressor (NewDecompressor reads the stream's own header up front,
// then Read serves symbols on demand). log, when non-nil, receives a
// one-line summary of the decoded header -- the streaming counterpart
// of NewDecompressorWithLogging.
type Decoder struct {
	br        *bitReader
	table     *Table // nil in trivial mode
	remaining uint64
}

// NewDecoder reads the mode bit, header (if present) and text length
// from r, and returns a Decoder ready to serve symbols via ReadByte.
func NewDecoder(r io.Reader) (*Decoder, error) {
	return NewDecoderWithLogging(r, nil)
}

// NewDecoderWithLogging is NewDecoder, additionally writing a one-line
// description of the decoded header to log if log is non-nil.
func NewDecoderWithLogging(r io.Reader, log io.Writer) (*Decoder, error) {
	br := newBitReader(r)

	mode := br.ReadBit()
	if err := br.Err(); err != nil {
		return nil, fmt.Errorf("huffz78: reading mode bit: %w", err)
	}

	d := &Decoder{br: br}

	if mode == 0 {
		d.remaining = br.ReadUvarint()
		if err := br.Err(); err != nil {
			return nil, fmt.Errorf("huffz78: reading text length: %w", err)
		}
		if log != nil {
			fmt.Fprintf(log, "huffz78: trivial mode, %d symbols\n", d.remaining)
		}
		return d, nil
	}

	t, err := decodeHeader(br)
	if err != nil {
		return nil, err
	}
	d.table = t

	d.remaining = br.ReadUvarint()
	if err := br.Err(); err != nil {
		return nil, fmt.Errorf("huffz78: reading text length: %w", err)
	}

	if log != nil {
		fmt.Fprintf(log, "huffz78: sigma=%d longest=%d symbols=%d\n", t.AlphabetSize, t.Longest, d.remaining)
	}

	return d, nil
}

// Remaining reports how many symbols are still unread.
func (d *Decoder) Remaining() uint64 { return d.remaining }

// ReadByte returns the next decoded symbol, or ErrNoMore once Remaining
// reaches zero.
func (d *Decoder) ReadByte() (byte, error) {
	if d.remaining == 0 {
		return 0, ErrNoMore
	}

	var b byte
	if d.table == nil {
		b = byte(d.br.ReadInt(8))
		if err := d.br.Err(); err != nil {
			return 0, fmt.Errorf("huffz78: decoding raw symbol: %w", err)
		}
	} else {
		rank, err := d.table.decodeOne(d.br)
		if err != nil {
			return 0, err
		}
		b = d.table.SymbolByRank[rank]
	}

	d.remaining--
	return b, nil
}

// Decode decodes an entire stream produced by Encode and returns the
// original bytes. Equivalent to draining a Decoder, provided for
// callers that do not need incremental consumption.
func Decode(r io.Reader) ([]byte, error) {
	d, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, d.Remaining())
	for d.Remaining() > 0 {
		b, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
