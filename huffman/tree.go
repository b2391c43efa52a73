package huffman

import (
	"container/heap"
	"math"

	"github.com/chronos-tachyon/assert"
)

// A Node is a node of a Huffman tree. A leaf has no children and carries a
// Symbol; an internal node has exactly two children and a frequency equal to
// the sum of theirs.
type Node struct {
	Symbol byte
	Freq   uint64
	Left   *Node
	Right  *Node
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BuildTree builds a Huffman tree for f and returns its root, or nil if f is
// empty. With a single distinct symbol the root is a lone leaf.
//
// The two lowest-frequency nodes are merged until one remains; the first one
// taken becomes the left child. Ties go to the node inserted first: leaves
// are inserted in ascending symbol order, internal nodes after them in the
// order they are created.
func BuildTree(f *FrequencyTable) *Node {
	if f.Len() == 0 {
		return nil
	}

	// Step 1: one leaf per symbol, already in insertion order.

	h := nodeHeap{list: make([]heapItem, 0, f.Len())}
	for _, sym := range f.Symbols() {
		h.list = append(h.list, heapItem{
			node: &Node{Symbol: sym, Freq: f.Count(sym)},
			seq:  len(h.list),
		})
	}
	h.Init()
	seq := len(h.list)

	// Step 2: merge the two smallest nodes until only the root is left.

	for h.Len() > 1 {
		a := heap.Pop(&h).(heapItem)
		b := heap.Pop(&h).(heapItem)
		assert.Assertf(a.node.Freq <= math.MaxUint64-b.node.Freq, "frequency overflow: %d + %d", a.node.Freq, b.node.Freq)

		heap.Push(&h, heapItem{
			node: &Node{Freq: a.node.Freq + b.node.Freq, Left: a.node, Right: b.node},
			seq:  seq,
		})
		seq++
	}

	assert.Assertf(h.Len() == 1, "expected one root, got %d nodes", h.Len())
	return h.list[0].node
}

// WeightedLength returns the sum over all leaves of frequency times depth,
// which is the number of bits the tree's code needs for its input. A lone
// leaf counts as depth 1.
func WeightedLength(root *Node) uint64 {
	if root == nil {
		return 0
	}
	if root.IsLeaf() {
		return root.Freq
	}

	type stackItem struct {
		n     *Node
		depth uint64
	}

	var total uint64
	stack := []stackItem{{root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.n.IsLeaf() {
			total += top.n.Freq * top.depth
			continue
		}
		stack = append(stack, stackItem{top.n.Right, top.depth + 1}, stackItem{top.n.Left, top.depth + 1})
	}
	return total
}

// type heapItem + type nodeHeap {{{

type heapItem struct {
	node *Node
	seq  int
}

type nodeHeap struct {
	list []heapItem
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
	if a.node.Freq != b.node.Freq {
		return a.node.Freq < b.node.Freq
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(heapItem))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list[last] = heapItem{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
