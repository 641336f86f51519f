package huffman

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
)

// Decoder reconstructs byte sequences from bit streams produced by Encoder.
//
// The CodeTable is inverted into a decoding trie that shares the Tree arena
// layout, with '1' following Left and '0' following Right.
type Decoder struct {
	trie Tree
}

// NewDecoder constructs a Decoder for the given table.  It returns a
// *FormatError if two symbols share a code, or if one code is a prefix of
// another, since either makes the stream ambiguous.
func NewDecoder(table *CodeTable) (*Decoder, error) {
	d := &Decoder{trie: Tree{root: NoNode}}
	if table.Len() == 0 {
		return d, nil
	}

	d.trie.nodes = make([]Node, 0, 2*table.Len())
	d.trie.root = d.trie.appendInternal(0, NoNode, NoNode)
	for _, symbol := range table.Symbols() {
		if err := d.insert(symbol, table.codes[symbol]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Decoder) insert(symbol Symbol, code Code) error {
	id := d.trie.root
	for i := 0; i < len(code); i++ {
		last := (i == len(code)-1)
		next := d.trie.child(id, code[i])

		if next == NoNode {
			if last {
				next = d.trie.appendLeaf(symbol, 0)
			} else {
				next = d.trie.appendInternal(0, NoNode, NoNode)
			}
			d.trie.setChild(id, code[i], next)
			id = next
			continue
		}

		node := d.trie.nodes[next]
		switch {
		case node.leaf && last:
			return formatErrorf("symbols %d and %d share the code %s", node.Symbol, symbol, code)
		case node.leaf:
			return formatErrorf("code %s for symbol %d is a prefix of code %s for symbol %d", code[:i+1], node.Symbol, code, symbol)
		case last:
			return formatErrorf("code %s for symbol %d is a prefix of another code", code, symbol)
		}
		id = next
	}
	return nil
}

// Decode reverses Encoder.Pack.  The last 1 bit of packed is the sentinel;
// it and everything after it are discarded, and the bits before it are
// matched against the code table from left to right.
//
// Decode returns a *FormatError if packed contains no 1 bit, or if the bits
// before the sentinel do not consist entirely of codes from the table.
//
func (d *Decoder) Decode(packed []byte) ([]byte, error) {
	end := sentinelIndex(packed)
	if end < 0 {
		return nil, formatErrorf("packed stream of %d bytes has no sentinel bit", len(packed))
	}

	out := make([]byte, 0, end)
	if end == 0 {
		return out, nil
	}
	if d.trie.Empty() {
		return nil, formatErrorf("packed stream holds %d bits but the code table is empty", end)
	}

	r := bitio.NewReader(bytes.NewReader(packed))
	id := d.trie.root
	start := 0
	for pos := 0; pos < end; pos++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, wrapFormatError(err, "reading bit %d", pos)
		}

		label := byte('0')
		if bit {
			label = '1'
		}
		next := d.trie.child(id, label)
		if next == NoNode {
			return nil, formatErrorf("bits %d .. %d match no code", start, pos)
		}

		node := d.trie.nodes[next]
		if node.leaf {
			out = append(out, byte(node.Symbol))
			id = d.trie.root
			start = pos + 1
		} else {
			id = next
		}
	}

	if id != d.trie.root {
		return nil, formatErrorf("%d trailing bits at offset %d match no code", end-start, start)
	}
	return out, nil
}

// Unpack expands packed into its logical bits, one 0 or 1 per byte of
// output, with the sentinel and padding removed.
func Unpack(packed []byte) ([]byte, error) {
	end := sentinelIndex(packed)
	if end < 0 {
		return nil, formatErrorf("packed stream of %d bytes has no sentinel bit", len(packed))
	}

	out := make([]byte, end)
	r := bitio.NewReader(bytes.NewReader(packed))
	for pos := range out {
		u64, err := r.ReadBits(1)
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, wrapFormatError(err, "reading bit %d", pos)
		}
		out[pos] = byte(u64)
	}
	return out, nil
}
