package huffman

import (
	"fmt"
)

// A decoder is a binary trie rebuilt from a CodeTable. Node 0 is the root;
// a child index of 0 means the branch does not exist, since the root is
// never anyone's child.
type decoder struct {
	nodes []trieNode
}

type trieNode struct {
	child  [2]int32
	symbol byte
	leaf   bool
}

func newDecoder(t *CodeTable) (*decoder, error) {
	d := &decoder{nodes: make([]trieNode, 1, 2*t.Len())}
	for _, sym := range t.Symbols() {
		hc := t.codes[sym]
		cur := int32(0)
		for i := int(hc.Size) - 1; i >= 0; i-- {
			if d.nodes[cur].leaf {
				return nil, fmt.Errorf("code %s of symbol %d extends another code", hc, sym)
			}
			bit := (hc.Bits >> uint(i)) & 1
			next := d.nodes[cur].child[bit]
			if next == 0 {
				next = int32(len(d.nodes))
				d.nodes = append(d.nodes, trieNode{})
				d.nodes[cur].child[bit] = next
			}
			cur = next
		}
		n := &d.nodes[cur]
		if n.leaf || n.child != [2]int32{} {
			return nil, fmt.Errorf("code %s of symbol %d is a prefix of another code", hc, sym)
		}
		n.leaf = true
		n.symbol = sym
	}
	return d, nil
}

// step follows one bit from node cur. It returns the next node, or -1 if
// there is no branch for that bit.
func (d *decoder) step(cur int32, bit bool) int32 {
	var b int
	if bit {
		b = 1
	}
	next := d.nodes[cur].child[b]
	if next == 0 {
		return -1
	}
	return next
}
