package huffzip

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Table maps each Symbol of an alphabet to its Code.  The codes of a Table are
// never empty and are prefix-free: no code is a prefix of another.
//
// A Table is immutable once built and may be shared between goroutines.  A
// nil *Table behaves like an empty Table.
type Table struct {
	codes   [NumSymbols]Code
	count   int
	minSize byte
	maxSize byte
}

// NewTable constructs a Table from an explicit Symbol → Code mapping.  It
// returns an error wrapping ErrMalformedTable unless every code is non-empty
// and the codes are prefix-free.
func NewTable(codes map[Symbol]Code) (*Table, error) {
	t := new(Table)
	for symbol, hc := range codes {
		if hc.Size == 0 {
			return nil, fmt.Errorf("%w: symbol %d has an empty code", ErrMalformedTable, symbol)
		}
		if !hc.isClean() {
			return nil, fmt.Errorf("%w: symbol %d has stray bits past its code", ErrMalformedTable, symbol)
		}
		t.set(symbol, hc)
	}
	if err := t.checkPrefixFree(); err != nil {
		return nil, err
	}
	return t, nil
}

// GenerateTable derives a Table from a Huffman code tree.  Descending to a
// left child appends a 0 bit and descending to a right child appends a 1 bit;
// each leaf's code is the path from the root to that leaf.
//
// A tree that consists of a single leaf has no paths, so that leaf is given
// the one-bit code "0".  A nil tree yields an empty Table.
//
func GenerateTable(root *Node) *Table {
	t := new(Table)
	if root == nil {
		return t
	}
	if root.IsLeaf() {
		t.set(root.Symbol, MakeCode(1, 0))
		return t
	}

	// The walk uses an explicit stack, as skewed weights can produce trees
	// that are as deep as the alphabet is large.
	//
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		node *Node
		code Code
		x    byte
	}

	stack := make([]stackItem, 0, 16)

	stackPush := func(node *Node, code Code) {
		assert.Assertf(node.Left != nil && node.Right != nil, "internal node with weight %d has only one child", node.Weight)
		stack = append(stack, stackItem{node: node, code: code})
	}

	processChild := func(child *Node, code Code) {
		if child.IsLeaf() {
			t.set(child.Symbol, code)
			return
		}
		stackPush(child, code)
	}

	stackPush(root, Code{})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(top.node.Left, top.code.Append(false))
		case 1:
			processChild(top.node.Right, top.code.Append(true))
		case 2:
			stack[len(stack)-1] = stackItem{}
			stack = stack[:len(stack)-1]
		}
	}
	return t
}

func (t *Table) set(symbol Symbol, hc Code) {
	assert.Assertf(t.codes[symbol].Size == 0, "symbol %d appears twice", symbol)
	t.codes[symbol] = hc
	if t.count == 0 {
		t.minSize = hc.Size
		t.maxSize = hc.Size
	} else if t.minSize > hc.Size {
		t.minSize = hc.Size
	} else if t.maxSize < hc.Size {
		t.maxSize = hc.Size
	}
	t.count++
}

// checkPrefixFree relies on lexicographic order: if one code is a prefix of
// another, it is also a prefix of its immediate successor.
func (t *Table) checkPrefixFree() error {
	sorted := make(byBitString, 0, t.count)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		hc := t.codes[symbol]
		if hc.Size == 0 {
			continue
		}
		sorted = append(sorted, symbolAndCode{Symbol(symbol), hc, hc.bitString()})
	}
	sorted.Sort()
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if b.code.HasPrefix(a.code) {
			return fmt.Errorf("%w: code %s of symbol %d is a prefix of code %s of symbol %d",
				ErrMalformedTable, a.code, a.symbol, b.code, b.symbol)
		}
	}
	return nil
}

// Lookup returns the Code for the given Symbol.  The second result is false
// if the Symbol has no code.
func (t *Table) Lookup(symbol Symbol) (Code, bool) {
	if t == nil {
		return Code{}, false
	}
	hc := t.codes[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of symbols that have a code.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// MinSize is the bit length of the shortest code.
func (t *Table) MinSize() byte {
	if t == nil {
		return 0
	}
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *Table) MaxSize() byte {
	if t == nil {
		return 0
	}
	return t.maxSize
}

// Symbols returns the symbols that have a code, in ascending order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, 0, t.Len())
	if t == nil {
		return out
	}
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if t.codes[symbol].Size != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, with 0 for symbols that have no code.
func (t *Table) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	if t == nil {
		return out
	}
	for symbol := 0; symbol < NumSymbols; symbol++ {
		out[symbol] = t.codes[symbol].Size
	}
	return out
}

// Equal reports whether both tables assign the same codes to the same symbols.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	if t.Len() == 0 {
		return true
	}
	return t.codes == other.codes
}

// Dump writes a programmer-readable debugging dump of the Table to the given
// writer.
func (t *Table) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Table{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.MaxSize())
	for _, symbol := range t.Symbols() {
		fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, t.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a brief description of the Table.
func (t *Table) String() string {
	if t.Len() == 0 {
		return "(Huffman table with 0 symbols)"
	}
	return fmt.Sprintf("(Huffman table with %d symbols, with code lengths of %d .. %d bits)",
		t.Len(), t.MinSize(), t.MaxSize())
}

var _ fmt.Stringer = (*Table)(nil)

// type symbolAndCode + type byBitString {{{

type symbolAndCode struct {
	symbol Symbol
	code   Code
	bits   string
}

type byBitString []symbolAndCode

func (list byBitString) Len() int {
	return len(list)
}

func (list byBitString) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byBitString) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.bits != b.bits {
		return a.bits < b.bits
	}
	return a.symbol < b.symbol
}

func (list byBitString) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = byBitString(nil)

// }}}
