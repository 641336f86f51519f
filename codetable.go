package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// loneCode is the code assigned when the tree is a lone leaf, which would
// otherwise receive the empty path.
const loneCode = Code("0")

// CodeTable maps each Symbol to its Code.  Symbols are always visited in
// ascending order.
//
// The zero value is an empty table, ready to use.
type CodeTable struct {
	codes [NumSymbols]Code
	count int
}

// NewCodeTable derives the Huffman code table for the given frequencies.
func NewCodeTable(freq *FrequencyTable) *CodeTable {
	return DeriveCodes(BuildTree(freq))
}

// DeriveCodes walks the tree and records the path from the root to each leaf.
// Descending to the Left child appends a '1' and descending to the Right
// child appends a '0'.
func DeriveCodes(t Tree) *CodeTable {
	ct := new(CodeTable)
	if t.Empty() {
		return ct
	}

	root := t.Node(t.root)
	if root.leaf {
		ct.set(root.Symbol, loneCode)
		return ct
	}

	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children
	//
	// path holds one bit per edge between the root and the top of the
	// stack, so len(path) == len(stack)-1 between iterations.

	type stackItem struct {
		id NodeID
		x  byte
	}

	stack := make([]stackItem, 0, 16)
	path := make([]byte, 0, 16)

	stack = append(stack, stackItem{id: t.root})

	processChild := func(child NodeID, bit byte) {
		assert.Assertf(child != NoNode, "internal node is missing a child")
		path = append(path, bit)
		node := t.nodes[child]
		if node.leaf {
			ct.set(node.Symbol, Code(path))
			path = path[:len(path)-1]
			return
		}
		stack = append(stack, stackItem{id: child})
	}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(t.nodes[top.id].Left, '1')
		case 1:
			processChild(t.nodes[top.id].Right, '0')
		case 2:
			stack = stack[:len(stack)-1]
			if len(path) != 0 {
				path = path[:len(path)-1]
			}
		}
	}
	return ct
}

// Lookup returns the code for symbol, and whether the symbol has one.
func (ct *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	hc := ct.codes[symbol]
	return hc, hc != ""
}

// Set assigns code to symbol, replacing any previous code.  The code must be
// non-empty and consist only of '0' and '1'.
func (ct *CodeTable) Set(symbol Symbol, code Code) error {
	if err := checkCode(string(code)); err != nil {
		return wrapFormatError(err, "symbol %d", symbol)
	}
	ct.set(symbol, code)
	return nil
}

func (ct *CodeTable) set(symbol Symbol, code Code) {
	if ct.codes[symbol] == "" {
		ct.count++
	}
	ct.codes[symbol] = code
}

// Len returns the number of symbols that have a code.
func (ct *CodeTable) Len() int {
	return ct.count
}

// Symbols lists the symbols that have a code, in ascending order.
func (ct *CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ct.count)
	for symbol, hc := range ct.codes {
		if hc != "" {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// MinSize is the bit length of the shortest code, or 0 for an empty table.
func (ct *CodeTable) MinSize() int {
	var min int
	for _, hc := range ct.codes {
		if hc != "" && (min == 0 || len(hc) < min) {
			min = len(hc)
		}
	}
	return min
}

// MaxSize is the bit length of the longest code, or 0 for an empty table.
func (ct *CodeTable) MaxSize() int {
	var max int
	for _, hc := range ct.codes {
		if len(hc) > max {
			max = len(hc)
		}
	}
	return max
}

// Equal returns true iff both tables assign the same codes to the same
// symbols.
func (ct *CodeTable) Equal(other *CodeTable) bool {
	return ct.count == other.count && ct.codes == other.codes
}

// Clone returns an independent copy of the table.
func (ct *CodeTable) Clone() *CodeTable {
	dupe := *ct
	return &dupe
}

// IsPrefixFree returns true iff no code in the table is a prefix of, or equal
// to, another code.
func (ct *CodeTable) IsPrefixFree() bool {
	sorted := make([]string, 0, ct.count)
	for _, hc := range ct.codes {
		if hc != "" {
			sorted = append(sorted, string(hc))
		}
	}

	// After sorting, any code that prefixes another also prefixes its
	// immediate successor.
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if strings.HasPrefix(sorted[i], sorted[i-1]) {
			return false
		}
	}
	return true
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.MaxSize())
	for _, symbol := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (ct *CodeTable) DebugString() string {
	var buf strings.Builder
	_, _ = ct.Dump(&buf)
	return buf.String()
}

// String returns a brief description of the table.
func (ct *CodeTable) String() string {
	if ct.count == 0 {
		return "(empty Huffman code table)"
	}
	return fmt.Sprintf("(Huffman code table with %d symbols, with coded lengths of %d .. %d bits)", ct.count, ct.MinSize(), ct.MaxSize())
}

var _ fmt.Stringer = (*CodeTable)(nil)
