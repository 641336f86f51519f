package huffman

import (
	"bytes"

	"github.com/icza/bitio"
)

// Encoder packs byte sequences into sentinel-terminated bit streams using a
// fixed CodeTable.
type Encoder struct {
	table  *CodeTable
	chunks [NumSymbols][]chunk
}

// NewEncoder constructs an Encoder for the given table.  The table is copied;
// later changes to it do not affect the Encoder.
func NewEncoder(table *CodeTable) *Encoder {
	e := &Encoder{table: table.Clone()}
	for _, symbol := range e.table.Symbols() {
		e.chunks[symbol] = e.table.codes[symbol].chunks()
	}
	return e
}

// Table returns the table used by this Encoder.
func (e *Encoder) Table() *CodeTable {
	return e.table
}

// Pack appends the code of every byte of data, in order, then a single 1
// bit, then 0 bits up to the next byte boundary.  Bits are packed MSB-first.
//
// Packing a byte that has no code returns a *FatalError.
//
func (e *Encoder) Pack(data []byte) ([]byte, error) {
	return e.pack(data, 0)
}

func (e *Encoder) pack(data []byte, sizeHint int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(sizeHint)

	w := bitio.NewWriter(&buf)
	for offset, b := range data {
		list := e.chunks[b]
		if list == nil {
			return nil, fatalErrorf("no code for byte %d at offset %d", b, offset)
		}
		if err := writeChunks(w, list); err != nil {
			return nil, err
		}
	}

	if err := w.WriteBool(true); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PackedSize returns the number of code bits that Pack would emit for an
// input with the given frequencies, excluding the sentinel and padding, along
// with the length in bytes of the packed result.
func (e *Encoder) PackedSize(freq *FrequencyTable) (bits uint64, size int, err error) {
	for _, symbol := range freq.Symbols() {
		hc, found := e.table.Lookup(symbol)
		if !found {
			return 0, 0, fatalErrorf("no code for byte %d", symbol)
		}
		bits += freq.Count(symbol) * uint64(len(hc))
	}
	size = int((bits + 1 + 7) / 8)
	return bits, size, nil
}

// Pack is a convenience function that constructs an Encoder for table and
// packs data with it.
func Pack(table *CodeTable, data []byte) ([]byte, error) {
	return NewEncoder(table).Pack(data)
}
