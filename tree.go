package huffzip

import (
	"container/heap"
	"math"

	"github.com/chronos-tachyon/assert"
)

// Node is a node of a Huffman code tree.
//
// A leaf carries a Symbol and has no children.  An internal node has exactly
// two children, its Symbol is meaningless, and its Weight is the sum of its
// children's weights.  Each internal node exclusively owns its children.
type Node struct {
	Symbol Symbol
	Weight uint64
	Left   *Node
	Right  *Node
}

// IsLeaf reports whether this Node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BuildTree builds a Huffman code tree by repeatedly merging the two lightest
// nodes until only the root remains.  The first node removed becomes the left
// child and the second node removed becomes the right child.
//
// Ties are broken by rank: a leaf's rank is its Symbol, and an internal node's
// rank is NumSymbols plus the number of merges that preceded its creation.
// Hence, among nodes of equal weight, leaves come first in ascending Symbol
// order, followed by internal nodes in the order they were created.
//
// Entries with a Weight of 0 are ignored.  If no entries remain, BuildTree
// returns nil.  If exactly one entry remains, its leaf is the root.  Each
// Symbol may appear at most once.
//
func BuildTree(weights []SymbolWeight) *Node {
	var seen [NumSymbols]bool
	nodes := make([]rankedNode, 0, len(weights))
	for _, sw := range weights {
		assert.Assertf(!seen[sw.Symbol], "duplicate symbol %d", sw.Symbol)
		seen[sw.Symbol] = true
		if sw.Weight == 0 {
			continue
		}
		leaf := &Node{Symbol: sw.Symbol, Weight: sw.Weight}
		nodes = append(nodes, rankedNode{leaf, uint32(sw.Symbol)})
	}

	if len(nodes) == 0 {
		return nil
	}

	h := nodeHeap{nodes}
	h.Init()

	nextRank := uint32(NumSymbols)
	for h.Len() > 1 {
		a := heap.Pop(&h).(rankedNode)
		b := heap.Pop(&h).(rankedNode)

		// Compute weightSum using saturating addition
		weightSum := a.node.Weight + b.node.Weight
		if weightSum < a.node.Weight {
			weightSum = math.MaxUint64
		}

		parent := &Node{Weight: weightSum, Left: a.node, Right: b.node}
		heap.Push(&h, rankedNode{parent, nextRank})
		nextRank++
	}

	return heap.Pop(&h).(rankedNode).node
}

// type rankedNode + type nodeHeap {{{

type rankedNode struct {
	node *Node
	rank uint32
}

type nodeHeap struct {
	list []rankedNode
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
	if a.node.Weight != b.node.Weight {
		return a.node.Weight < b.node.Weight
	}
	return a.rank < b.rank
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(rankedNode))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = rankedNode{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
