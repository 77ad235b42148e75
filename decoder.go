package huffzip

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/icza/bitio"
)

// MaxHeader is the largest header value a packed stream may carry.
const MaxHeader = 8

// Decoder unpacks streams produced by an Encoder that used the same Table.
type Decoder struct {
	table   *Table
	inverse map[Code]Symbol
	maxSize byte
}

// Init initializes this Decoder to use the given Table.
func (d *Decoder) Init(t *Table) {
	inverse := make(map[Code]Symbol, t.Len())
	for _, symbol := range t.Symbols() {
		inverse[t.codes[symbol]] = symbol
	}
	*d = Decoder{
		table:   t,
		inverse: inverse,
		maxSize: t.MaxSize(),
	}
}

// Table returns the Table this Decoder was initialized with.
func (d Decoder) Table() *Table {
	return d.table
}

// Decode reverses Encoder.Encode.  It scans the valid bits of the payload in
// order, growing a candidate code one bit at a time and emitting a symbol
// whenever the candidate matches a code of the Table.
//
// Decode fails with ErrMalformedStream if the header is missing or out of
// range, if the candidate grows past the longest code in the Table, or if
// the bits run out in the middle of a code.  No partial output is returned
// on failure.
//
func (d Decoder) Decode(packed []byte) ([]byte, error) {
	totalBits, err := PayloadBits(packed)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(packed))
	br := bitio.NewReader(bytes.NewReader(packed[1:]))

	var candidate Code
	for i := uint64(0); i < totalBits; i++ {
		if candidate.Size >= d.maxSize {
			return nil, fmt.Errorf("%w: bits %d..%d match no code", ErrMalformedStream, i-uint64(candidate.Size), i)
		}

		bit, err := br.ReadBool()
		if err != nil {
			return nil, err
		}

		candidate = candidate.Append(bit)
		if symbol, found := d.inverse[candidate]; found {
			out = append(out, byte(symbol))
			candidate = Code{}
		}
	}

	if candidate.Size != 0 {
		return nil, fmt.Errorf("%w: stream ends inside a code after %s", ErrMalformedStream, candidate)
	}
	return out, nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.inverse))
	for hc := range d.inverse {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		fmt.Fprintf(&buf, "\tDecode(%s) = %d\n", hc, d.inverse[hc])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// PayloadBits returns the number of valid payload bits in a packed stream:
// 8 for every payload byte but the last, plus the header's count for the
// last, where a header of 0 counts as 8.
func PayloadBits(packed []byte) (uint64, error) {
	if len(packed) == 0 {
		return 0, fmt.Errorf("%w: missing header byte", ErrMalformedStream)
	}
	header, payloadLen := packed[0], uint64(len(packed)-1)
	if header > MaxHeader {
		return 0, fmt.Errorf("%w: header %d > %d", ErrMalformedStream, header, MaxHeader)
	}
	if payloadLen == 0 {
		if header != 0 {
			return 0, fmt.Errorf("%w: header %d with empty payload", ErrMalformedStream, header)
		}
		return 0, nil
	}
	lastBits := uint64(header)
	if lastBits == 0 {
		lastBits = 8
	}
	return 8*(payloadLen-1) + lastBits, nil
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	for w := range a.Bits {
		if a.Bits[w] != b.Bits[w] {
			return a.Bits[w] < b.Bits[w]
		}
	}
	return false
}

var _ sort.Interface = byCode(nil)

// }}}
