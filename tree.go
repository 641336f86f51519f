package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NodeID is the index of a Node within its Tree.
type NodeID int32

// NoNode is the NodeID of a missing node.
const NoNode = NodeID(-1)

// Node is one node of a Tree.  A leaf holds a Symbol; an internal node holds
// its two children.
type Node struct {
	// Symbol is the symbol of a leaf.  It is meaningless for internal
	// nodes.
	Symbol Symbol

	// Freq is the frequency of a leaf, or the sum of the frequencies of
	// the children of an internal node.
	Freq uint64

	// Left and Right are the children of an internal node, or NoNode.
	Left  NodeID
	Right NodeID

	leaf bool
}

// IsLeaf returns true iff this node holds a Symbol.
func (node Node) IsLeaf() bool {
	return node.leaf
}

// Tree is a binary code tree whose nodes live in a flat arena.  Every node
// is owned by exactly one parent, except the root.
//
// The zero value is not an empty Tree; use BuildTree.
type Tree struct {
	nodes []Node
	root  NodeID
}

// BuildTree builds a Huffman tree for the given frequencies by repeatedly
// merging the two nodes of lowest frequency.  Ties are broken by NodeID:
// leaves are allocated in ascending Symbol order and internal nodes in merge
// order, so identical input always yields an identical tree.
//
// If no symbol has a non-zero frequency, the result is an empty tree.  If
// exactly one symbol does, the result is a tree with a lone leaf as its root.
//
func BuildTree(freq *FrequencyTable) Tree {
	symbols := freq.Symbols()
	numLeaves := len(symbols)

	t := Tree{root: NoNode}
	if numLeaves == 0 {
		return t
	}

	t.nodes = make([]Node, 0, 2*numLeaves-1)
	h := nodeHeap{tree: &t, list: make([]NodeID, 0, numLeaves)}
	for _, symbol := range symbols {
		h.list = append(h.list, t.appendLeaf(symbol, freq.Count(symbol)))
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(NodeID)
		b := heap.Pop(&h).(NodeID)
		sum := saturatingAdd(t.nodes[a].Freq, t.nodes[b].Freq)
		heap.Push(&h, t.appendInternal(sum, a, b))
	}

	t.root = heap.Pop(&h).(NodeID)
	return t
}

// Empty returns true iff the tree has no nodes.
func (t Tree) Empty() bool {
	return t.root == NoNode
}

// Root returns the NodeID of the root, or NoNode for an empty tree.
func (t Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given NodeID.
func (t Tree) Node(id NodeID) Node {
	assert.Assertf(id >= 0 && int(id) < len(t.nodes), "NodeID %d out of range [0, %d)", id, len(t.nodes))
	return t.nodes[id]
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.
func (t Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.root)
	for index, node := range t.nodes {
		if node.leaf {
			fmt.Fprintf(&buf, "\tNode(%d) = leaf{%d, %d}\n", index, node.Symbol, node.Freq)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = {%d, %d, %d}\n", index, node.Freq, node.Left, node.Right)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *Tree) appendLeaf(symbol Symbol, freq uint64) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{Symbol: symbol, Freq: freq, Left: NoNode, Right: NoNode, leaf: true})
	return id
}

func (t *Tree) appendInternal(freq uint64, left NodeID, right NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{Freq: freq, Left: left, Right: right})
	return id
}

// child follows the branch labelled by bit, which is '1' for Left and '0'
// for Right.
func (t Tree) child(id NodeID, bit byte) NodeID {
	if bit == '1' {
		return t.nodes[id].Left
	}
	return t.nodes[id].Right
}

func (t *Tree) setChild(id NodeID, bit byte, child NodeID) {
	if bit == '1' {
		t.nodes[id].Left = child
	} else {
		t.nodes[id].Right = child
	}
}

// type nodeHeap {{{

type nodeHeap struct {
	tree *Tree
	list []NodeID
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	af, bf := h.tree.nodes[a].Freq, h.tree.nodes[b].Freq
	if af != bf {
		return af < bf
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(NodeID))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
