package huffzip

import (
	"testing"

	"github.com/icza/huffman"

	"github.com/chronos-tachyon/huffzip/internal/testutil"
)

func weightsOf(list ...uint64) []SymbolWeight {
	out := make([]SymbolWeight, len(list))
	for i, w := range list {
		out[i] = SymbolWeight{Symbol(i), w}
	}
	return out
}

// checkTree verifies the structural invariants of a tree and returns the
// number of leaves.
func checkTree(t *testing.T, root *Node) int {
	t.Helper()
	var leaves int
	stack := []*Node{root}
	for len(stack) != 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.IsLeaf() {
			leaves++
			continue
		}
		if n.Left == nil || n.Right == nil {
			t.Fatalf("node with weight %d has exactly one child", n.Weight)
		}
		if n.Weight != n.Left.Weight+n.Right.Weight {
			t.Errorf("node weight %d != %d + %d", n.Weight, n.Left.Weight, n.Right.Weight)
		}
		stack = append(stack, n.Left, n.Right)
	}
	return leaves
}

func TestBuildTree(t *testing.T) {
	root := BuildTree(weightsOf(5, 9, 12, 13, 16, 45))
	if root.Weight != 100 {
		t.Errorf("expected root weight 100, got %d", root.Weight)
	}
	if n := checkTree(t, root); n != 6 {
		t.Errorf("expected 6 leaves, got %d", n)
	}
	if !root.Left.IsLeaf() || root.Left.Symbol != 5 {
		t.Errorf("expected the heaviest symbol 5 as left child of the root")
	}
}

func TestBuildTree_TieBreak(t *testing.T) {
	// All weights equal: leaves merge pairwise in ascending symbol order,
	// then the internal nodes merge in creation order.
	root := BuildTree([]SymbolWeight{{'d', 1}, {'b', 1}, {'c', 1}, {'a', 1}})
	expect := map[Symbol]string{'a': "00", 'b': "01", 'c': "10", 'd': "11"}
	table := GenerateTable(root)
	for symbol, str := range expect {
		hc, found := table.Lookup(symbol)
		if !found || hc.bitString() != str {
			t.Errorf("symbol %q: expected %q, got %s (found=%v)", symbol, str, hc, found)
		}
	}

	// A leaf wins a tie against an internal node of the same weight.
	root = BuildTree([]SymbolWeight{{'x', 1}, {'y', 1}, {'z', 2}})
	if root.Left == nil || !root.Left.IsLeaf() || root.Left.Symbol != 'z' {
		t.Errorf("expected leaf 'z' to be merged first as the left child")
	}
}

func TestBuildTree_Degenerate(t *testing.T) {
	if root := BuildTree(nil); root != nil {
		t.Errorf("expected nil tree for no symbols, got %#v", root)
	}
	if root := BuildTree(weightsOf(0, 0, 0)); root != nil {
		t.Errorf("expected nil tree for zero weights, got %#v", root)
	}

	root := BuildTree([]SymbolWeight{{'b', 5}, {'q', 0}})
	if root == nil || !root.IsLeaf() || root.Symbol != 'b' || root.Weight != 5 {
		t.Errorf("expected a lone leaf for 'b', got %#v", root)
	}
}

func TestBuildTree_DuplicateSymbol(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for a duplicate symbol")
		}
	}()
	BuildTree([]SymbolWeight{{'a', 1}, {'a', 2}})
}

func TestBuildTree_Optimal(t *testing.T) {
	r := testutil.NewRand(1)
	for trial := 0; trial < 20; trial++ {
		var src []byte
		if trial%2 == 0 {
			src = r.Bytes(1 + r.Intn(4096))
		} else {
			src = r.Skewed(1+r.Intn(4096), 2+r.Intn(40))
		}
		weights := CountFrequencies(src)
		if len(weights) < 2 {
			continue
		}

		table := GenerateTable(BuildTree(weights))
		var actual uint64
		for _, sw := range weights {
			hc, _ := table.Lookup(sw.Symbol)
			actual += sw.Weight * uint64(hc.Size)
		}

		leaves := make([]*huffman.Node, len(weights))
		for i, sw := range weights {
			leaves[i] = &huffman.Node{Value: huffman.ValueType(sw.Symbol), Count: int(sw.Weight)}
		}
		huffman.Build(leaves)
		var expect uint64
		for _, leaf := range leaves {
			_, bits := leaf.Code()
			expect += uint64(leaf.Count) * uint64(bits)
		}

		if actual != expect {
			t.Errorf("trial %d: expected %d total bits, got %d", trial, expect, actual)
		}
	}
}
