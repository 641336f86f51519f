package huffman

import (
	"fmt"
	"strconv"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// Code represents a sequence of bits, written as a string of '0' and '1'
// characters.  The first character is the first bit on the wire.
type Code string

// MakeCode is a convenience function that constructs a Code from the low size
// bits of bits.  The most significant of those bits is the first bit.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "size %d > 64", size)
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = '0' + byte((bits>>(uint(size)-1-uint(i)))&1)
	}
	return Code(buf)
}

// ParseCode validates s and returns it as a Code.  The string must be
// non-empty and consist only of '0' and '1'.
func ParseCode(s string) (Code, error) {
	if err := checkCode(s); err != nil {
		return "", wrapFormatError(err, "invalid code %q", s)
	}
	return Code(s), nil
}

// Size returns the number of bits in the code.
func (hc Code) Size() int {
	return len(hc)
}

// Bit returns the i'th bit of the code, either 0 or 1.
func (hc Code) Bit(i int) byte {
	return hc[i] - '0'
}

// IsPrefixOf reports whether hc is a proper prefix of other.
func (hc Code) IsPrefixOf(other Code) bool {
	return len(hc) < len(other) && other[:len(hc)] == hc
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(string(hc))
}

var _ fmt.Stringer = Code("")

func checkCode(s string) error {
	if s == "" {
		return errors.New("empty code")
	}
	for i := 0; i < len(s); i++ {
		if ch := s[i]; ch != '0' && ch != '1' {
			return errors.Errorf("invalid bit %q at offset %d", ch, i)
		}
	}
	return nil
}

// chunk is a run of up to 64 bits, ready for bitio.Writer.WriteBits.
type chunk struct {
	bits uint64
	size uint8
}

func (hc Code) chunks() []chunk {
	out := make([]chunk, 0, (len(hc)+63)/64)
	for start := 0; start < len(hc); start += 64 {
		end := start + 64
		if end > len(hc) {
			end = len(hc)
		}
		var c chunk
		for i := start; i < end; i++ {
			c.bits = c.bits<<1 | uint64(hc.Bit(i))
		}
		c.size = uint8(end - start)
		out = append(out, c)
	}
	return out
}

func writeChunks(w *bitio.Writer, list []chunk) error {
	for _, c := range list {
		if err := w.WriteBits(c.bits, c.size); err != nil {
			return err
		}
	}
	return nil
}
