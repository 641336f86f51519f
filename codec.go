package huffman

// Encode compresses data.  It returns the code table in the text format of
// FormatTable, and the packed bit stream.  Both are needed by Decode.
//
// Empty input yields an empty table and a packed stream holding only the
// sentinel bit.
//
func Encode(data []byte) (table []byte, packed []byte, err error) {
	freq := CountFrequencies(data)
	ct := NewCodeTable(&freq)

	e := NewEncoder(ct)
	_, size, err := e.PackedSize(&freq)
	if err != nil {
		return nil, nil, err
	}
	packed, err = e.pack(data, size)
	if err != nil {
		return nil, nil, err
	}

	table, err = ct.MarshalText()
	if err != nil {
		return nil, nil, err
	}
	return table, packed, nil
}

// Decode reverses Encode.
func Decode(table []byte, packed []byte) ([]byte, error) {
	ct, err := ParseTable(string(table))
	if err != nil {
		return nil, err
	}
	d, err := NewDecoder(ct)
	if err != nil {
		return nil, err
	}
	return d.Decode(packed)
}
