package huffman

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTable(t *testing.T) {
	assert.Equal(t, "0:0011-1:0010-2:011-3:010-4:000-5:1", FormatTable(makeTestCodeTable()))
	assert.Equal(t, "", FormatTable(new(CodeTable)))

	ft := CountFrequencies([]byte("aab"))
	assert.Equal(t, "97:0-98:1", FormatTable(NewCodeTable(&ft)))
}

func TestParseTable(t *testing.T) {
	ct, err := ParseTable("0:0011-1:0010-2:011-3:010-4:000-5:1")
	require.NoError(t, err)
	assert.True(t, makeTestCodeTable().Equal(ct))

	ct, err = ParseTable("255:1-0:0\r\n")
	require.NoError(t, err)
	assert.Equal(t, []Symbol{0, 255}, ct.Symbols())

	ct, err = ParseTable("")
	require.NoError(t, err)
	assert.Equal(t, 0, ct.Len())

	ct, err = ParseTable("\n")
	require.NoError(t, err)
	assert.Equal(t, 0, ct.Len())
}

func TestParseTable_Errors(t *testing.T) {
	testData := [...]string{
		"-",
		"97:0-",
		"-97:0",
		"97:0--98:1",
		"97",
		"97:0-98",
		"97:0:1",
		"x:0",
		":0",
		"256:0",
		"-1:0",
		"+1:0",
		" 97:0",
		"97:",
		"97:012",
		"97:0 ",
		"97:0-97:1",
		"97:0\n\n",
	}
	for _, input := range testData {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTable(input)
			require.Error(t, err)
			_, ok := errors.Cause(err).(*FormatError)
			assert.True(t, ok, "expected *FormatError, got %T: %v", errors.Cause(err), err)
		})
	}
}

func TestParseTable_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"aab",
		"abracadabra",
		"the quick brown fox jumps over the lazy dog",
	}
	for _, input := range inputs {
		ft := CountFrequencies([]byte(input))
		ct := NewCodeTable(&ft)
		parsed, err := ParseTable(FormatTable(ct))
		require.NoError(t, err)
		assert.True(t, ct.Equal(parsed), "input %q", input)
	}

	ft := makeFibonacciFrequencies(90)
	ct := NewCodeTable(&ft)
	parsed, err := ParseTable(FormatTable(ct))
	require.NoError(t, err)
	assert.True(t, ct.Equal(parsed))
}

func TestCodeTable_MarshalText(t *testing.T) {
	raw, err := makeTestCodeTable().MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0:0011-1:0010-2:011-3:010-4:000-5:1", string(raw))

	var ct CodeTable
	require.NoError(t, ct.UnmarshalText(raw))
	assert.True(t, makeTestCodeTable().Equal(&ct))

	err = ct.UnmarshalText([]byte("97"))
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
	assert.True(t, makeTestCodeTable().Equal(&ct), "failed unmarshal must not modify the table")
}

func TestCodeTable_MarshalBinary(t *testing.T) {
	ft := CountFrequencies([]byte("aab"))
	ct := NewCodeTable(&ft)

	raw, err := ct.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x30, 0x80, 0x98, 0x80, 0x60}, raw)

	var parsed CodeTable
	require.NoError(t, parsed.UnmarshalBinary(raw))
	assert.True(t, ct.Equal(&parsed))

	raw, err = new(CodeTable).MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00}, raw)
	require.NoError(t, parsed.UnmarshalBinary(raw))
	assert.Equal(t, 0, parsed.Len())
}

func TestCodeTable_MarshalBinary_RoundTrip(t *testing.T) {
	tables := []*CodeTable{makeTestCodeTable()}

	ft := makeFibonacciFrequencies(90)
	tables = append(tables, NewCodeTable(&ft))

	var all []byte
	for symbol := 0; symbol < NumSymbols; symbol++ {
		all = append(all, byte(symbol), byte(symbol/3))
	}
	ft = CountFrequencies(all)
	tables = append(tables, NewCodeTable(&ft))

	for _, ct := range tables {
		raw, err := ct.MarshalBinary()
		require.NoError(t, err)
		var parsed CodeTable
		require.NoError(t, parsed.UnmarshalBinary(raw))
		assert.True(t, ct.Equal(&parsed), "%v", ct)
	}
}

func TestCodeTable_UnmarshalBinary_Errors(t *testing.T) {
	testData := map[string][]byte{
		"empty":          {},
		"short count":    {0x01},
		"too many":       {0xff, 0xff},
		"truncated":      {0x01, 0x30, 0x80},
		"trailing bytes": {0x01, 0x30, 0x80, 0x98, 0x80, 0x60, 0x00},
		"zero length":    {0x00, 0xb0, 0x80, 0x00},
		"repeat":         {0x01, 0x30, 0x80, 0x98, 0x40, 0x60},
	}
	for name, raw := range testData {
		t.Run(name, func(t *testing.T) {
			var ct CodeTable
			err := ct.UnmarshalBinary(raw)
			var fe *FormatError
			assert.ErrorAs(t, err, &fe)
		})
	}
}

func TestCodeTable_MarshalJSON(t *testing.T) {
	ct := makeTestCodeTable()

	raw, err := json.Marshal(ct)
	require.NoError(t, err)
	expectJSON := `{"0":"0011","1":"0010","2":"011","3":"010","4":"000","5":"1"}`
	assert.Equal(t, expectJSON, string(raw))

	var parsed CodeTable
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.True(t, ct.Equal(&parsed))

	raw, err = json.Marshal(new(CodeTable))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}

func TestCodeTable_UnmarshalJSON_Errors(t *testing.T) {
	testData := [...]string{
		`[]`,
		`{"x":"0"}`,
		`{"256":"0"}`,
		`{"97":""}`,
		`{"97":"2"}`,
		`{"97":"0","097":"1"}`,
	}
	for _, input := range testData {
		t.Run(input, func(t *testing.T) {
			var ct CodeTable
			err := ct.UnmarshalJSON([]byte(input))
			var fe *FormatError
			assert.ErrorAs(t, err, &fe)
		})
	}
}
