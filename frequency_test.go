package huffman

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountFrequencies(t *testing.T) {
	ft := CountFrequencies([]byte("aab"))

	assert.Equal(t, uint64(2), ft.Count('a'))
	assert.Equal(t, uint64(1), ft.Count('b'))
	assert.Equal(t, uint64(0), ft.Count('c'))
	assert.Equal(t, 2, ft.Len())
	assert.Equal(t, uint64(3), ft.Total())
	assert.Equal(t, []Symbol{'a', 'b'}, ft.Symbols())
}

func TestCountFrequencies_Empty(t *testing.T) {
	ft := CountFrequencies(nil)

	assert.Equal(t, 0, ft.Len())
	assert.Equal(t, uint64(0), ft.Total())
	assert.Empty(t, ft.Symbols())
}

func TestCountFrequencies_SingleSymbol(t *testing.T) {
	ft := CountFrequencies(bytes.Repeat([]byte{65}, 1000))

	assert.Equal(t, 1, ft.Len())
	assert.Equal(t, uint64(1000), ft.Count(65))
}

func TestFrequencyTable_Add(t *testing.T) {
	var ft FrequencyTable
	ft.Add([]byte("ab"))
	ft.Add([]byte("ba"))
	ft.Add([]byte{0, 255})

	assert.Equal(t, uint64(2), ft.Count('a'))
	assert.Equal(t, uint64(2), ft.Count('b'))
	assert.Equal(t, uint64(1), ft.Count(0))
	assert.Equal(t, uint64(1), ft.Count(MaxSymbol))
	assert.Equal(t, []Symbol{0, 'a', 'b', 255}, ft.Symbols())
}

func TestFrequencyTable_Dump(t *testing.T) {
	ft := CountFrequencies([]byte("aab"))

	expectDump := strings.Join([]string{
		"FrequencyTable{\n",
		"\tCount(97) = 2\n",
		"\tCount(98) = 1\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, err := ft.Dump(&buf)
	require.NoError(t, err)
	assert.Equal(t, expectDump, buf.String())
}
