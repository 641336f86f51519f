package huffman

import (
	"bytes"
	"encoding"
	"io"
	"strconv"
	"strings"

	"github.com/icza/bitio"
	jsoniter "github.com/json-iterator/go"
)

// EntrySeparator separates the entries of a table in the text format.
const EntrySeparator = "-"

// SymbolSeparator separates the symbol from the code within an entry.
const SymbolSeparator = ":"

// maxBinaryCodeSize is the longest code the binary format can hold.  A
// Huffman tree over NumSymbols leaves is never deeper than this.
const maxBinaryCodeSize = NumSymbols - 1

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatTable renders the table as a single line of "<symbol>:<code>" entries
// joined by "-", in ascending symbol order.  An empty table renders as "".
func FormatTable(ct *CodeTable) string {
	var buf strings.Builder
	for index, symbol := range ct.Symbols() {
		if index > 0 {
			buf.WriteString(EntrySeparator)
		}
		buf.WriteString(strconv.Itoa(int(symbol)))
		buf.WriteString(SymbolSeparator)
		buf.WriteString(string(ct.codes[symbol]))
	}
	return buf.String()
}

// ParseTable parses the output of FormatTable.  A single trailing line ending
// is permitted.
func ParseTable(s string) (*CodeTable, error) {
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")

	ct := new(CodeTable)
	if s == "" {
		return ct, nil
	}

	for index, entry := range strings.Split(s, EntrySeparator) {
		if entry == "" {
			return nil, formatErrorf("table entry %d is empty", index)
		}

		symbolText, codeText, found := strings.Cut(entry, SymbolSeparator)
		if !found {
			return nil, formatErrorf("table entry %d %q is missing %q", index, entry, SymbolSeparator)
		}
		if strings.Contains(codeText, SymbolSeparator) {
			return nil, formatErrorf("table entry %d %q has more than one %q", index, entry, SymbolSeparator)
		}

		u64, err := strconv.ParseUint(symbolText, 10, 8)
		if err != nil {
			return nil, wrapFormatError(err, "table entry %d %q has an invalid symbol", index, entry)
		}
		if err := checkCode(codeText); err != nil {
			return nil, wrapFormatError(err, "table entry %d %q has an invalid code", index, entry)
		}

		symbol := Symbol(u64)
		if _, found := ct.Lookup(symbol); found {
			return nil, formatErrorf("table entry %d %q repeats symbol %d", index, entry, symbol)
		}
		ct.set(symbol, Code(codeText))
	}
	return ct, nil
}

// MarshalText fulfills encoding.TextMarshaler.
func (ct *CodeTable) MarshalText() ([]byte, error) {
	return []byte(FormatTable(ct)), nil
}

// UnmarshalText fulfills encoding.TextUnmarshaler.
func (ct *CodeTable) UnmarshalText(text []byte) error {
	parsed, err := ParseTable(string(text))
	if err != nil {
		return err
	}
	*ct = *parsed
	return nil
}

// MarshalBinary fulfills encoding.BinaryMarshaler.
//
// The layout is a 9-bit entry count, then for each entry in ascending symbol
// order an 8-bit symbol, an 8-bit code length and the code bits, all
// MSB-first and zero-padded to a whole number of bytes.
//
func (ct *CodeTable) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := w.WriteBits(uint64(ct.count), 9); err != nil {
		return nil, err
	}
	for _, symbol := range ct.Symbols() {
		hc := ct.codes[symbol]
		if len(hc) > maxBinaryCodeSize {
			return nil, formatErrorf("code for symbol %d is %d bits long, binary format allows at most %d", symbol, len(hc), maxBinaryCodeSize)
		}
		if err := w.WriteBits(uint64(symbol), 8); err != nil {
			return nil, err
		}
		if err := w.WriteBits(uint64(len(hc)), 8); err != nil {
			return nil, err
		}
		if err := writeChunks(w, hc.chunks()); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary fulfills encoding.BinaryUnmarshaler.
func (ct *CodeTable) UnmarshalBinary(data []byte) error {
	r := bitio.NewReader(bytes.NewReader(data))

	readBits := func(n uint8, what string) (uint64, error) {
		u64, err := r.ReadBits(n)
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, wrapFormatError(err, "binary table truncated while reading %s", what)
		}
		return u64, nil
	}

	count, err := readBits(9, "entry count")
	if err != nil {
		return err
	}
	if count > NumSymbols {
		return formatErrorf("binary table claims %d entries, max %d", count, NumSymbols)
	}

	parsed := new(CodeTable)
	totalBits := 9
	for index := uint64(0); index < count; index++ {
		u64, err := readBits(8, "symbol")
		if err != nil {
			return err
		}
		symbol := Symbol(u64)
		if _, found := parsed.Lookup(symbol); found {
			return formatErrorf("binary table entry %d repeats symbol %d", index, symbol)
		}

		size, err := readBits(8, "code length")
		if err != nil {
			return err
		}
		if size == 0 {
			return formatErrorf("binary table entry %d has an empty code", index)
		}

		code := make([]byte, size)
		for i := range code {
			bit, err := readBits(1, "code")
			if err != nil {
				return err
			}
			code[i] = '0' + byte(bit)
		}
		parsed.set(symbol, Code(code))
		totalBits += 16 + int(size)
	}

	if expect := (totalBits + 7) / 8; len(data) != expect {
		return formatErrorf("binary table has %d trailing bytes", len(data)-expect)
	}

	*ct = *parsed
	return nil
}

// MarshalJSON fulfills json.Marshaler.  The table is rendered as an object
// that maps each decimal symbol to its code, in ascending symbol order.
func (ct *CodeTable) MarshalJSON() ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	stream.WriteObjectStart()
	for index, symbol := range ct.Symbols() {
		if index > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(strconv.Itoa(int(symbol)))
		stream.WriteString(string(ct.codes[symbol]))
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// UnmarshalJSON fulfills json.Unmarshaler.
func (ct *CodeTable) UnmarshalJSON(raw []byte) error {
	var m map[string]string
	if err := jsonAPI.Unmarshal(raw, &m); err != nil {
		return wrapFormatError(err, "invalid JSON table")
	}

	parsed := new(CodeTable)
	for key, value := range m {
		u64, err := strconv.ParseUint(key, 10, 8)
		if err != nil {
			return wrapFormatError(err, "JSON table key %q is not a symbol", key)
		}
		if err := checkCode(value); err != nil {
			return wrapFormatError(err, "JSON table entry %q has an invalid code", key)
		}
		symbol := Symbol(u64)
		if _, found := parsed.Lookup(symbol); found {
			return formatErrorf("JSON table repeats symbol %d", symbol)
		}
		parsed.set(symbol, Code(value))
	}

	*ct = *parsed
	return nil
}

var (
	_ encoding.TextMarshaler     = (*CodeTable)(nil)
	_ encoding.TextUnmarshaler   = (*CodeTable)(nil)
	_ encoding.BinaryMarshaler   = (*CodeTable)(nil)
	_ encoding.BinaryUnmarshaler = (*CodeTable)(nil)
)
