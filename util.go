package huffman

import (
	mathbits "math/bits"
)

// sentinelIndex returns the position of the last 1 bit in buf, counting bits
// MSB-first from the start of buf, or -1 if buf holds no 1 bits at all.
func sentinelIndex(buf []byte) int {
	for i := len(buf) - 1; i >= 0; i-- {
		if b := buf[i]; b != 0 {
			return i*8 + 7 - mathbits.TrailingZeros8(b)
		}
	}
	return -1
}

// saturatingAdd returns a+b, clamped to the maximum uint64.
func saturatingAdd(a, b uint64) uint64 {
	sum, carry := mathbits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}
	return sum
}
