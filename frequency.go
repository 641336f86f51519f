package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// FrequencyTable holds the number of occurrences of each Symbol in some
// input.  A count of zero means the Symbol does not appear.
//
// The zero value is an empty table, ready to use.
type FrequencyTable struct {
	counts [NumSymbols]uint64
}

// CountFrequencies scans data and returns the number of occurrences of each
// byte value.
func CountFrequencies(data []byte) FrequencyTable {
	var ft FrequencyTable
	ft.Add(data)
	return ft
}

// Add counts the bytes of data into the table.
func (ft *FrequencyTable) Add(data []byte) {
	for _, b := range data {
		ft.counts[b]++
	}
}

// Count returns the number of occurrences of symbol.
func (ft *FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Len returns the number of distinct symbols with a non-zero count.
func (ft *FrequencyTable) Len() int {
	var n int
	for _, count := range ft.counts {
		if count != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts, i.e. the length of the input.
func (ft *FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range ft.counts {
		total += count
	}
	return total
}

// Symbols lists the symbols with a non-zero count, in ascending order.
func (ft *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, NumSymbols)
	for symbol, count := range ft.counts {
		if count != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ft *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for _, symbol := range ft.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%d) = %d\n", symbol, ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
