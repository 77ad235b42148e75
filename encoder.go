package huffzip

import (
	"bytes"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Encoder packs byte sequences using a fixed Table.
type Encoder struct {
	table *Table
}

// Init initializes this Encoder to use the given Table.
func (e *Encoder) Init(t *Table) {
	*e = Encoder{table: t}
}

// Table returns the Table this Encoder was initialized with.
func (e Encoder) Table() *Table {
	return e.table
}

// EncodedBits returns the total number of code bits needed to encode src.
// It fails with ErrUnknownSymbol if src holds a byte that has no code.
func (e Encoder) EncodedBits(src []byte) (uint64, error) {
	var sizes [NumSymbols]byte
	copy(sizes[:], e.table.SizeBySymbol())

	var total uint64
	for offset, b := range src {
		size := sizes[b]
		if size == 0 {
			return 0, fmt.Errorf("%w: byte 0x%02x at offset %d", ErrUnknownSymbol, b, offset)
		}
		total += uint64(size)
	}
	return total, nil
}

// Encode packs src into a header byte followed by the concatenated codes of
// each byte of src, MSB-first.  The header holds the number of valid bits in
// the final byte, with 0 meaning all 8.  An empty src yields the lone header
// byte 0x00.
//
// If src holds a byte that has no code, Encode fails with ErrUnknownSymbol
// and returns no output.
//
func (e Encoder) Encode(src []byte) ([]byte, error) {
	totalBits, err := e.EncodedBits(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(1 + bytesForBits(totalBits))
	buf.WriteByte(byte(totalBits % 8))

	bw := bitio.NewWriter(&buf)
	for _, b := range src {
		if err := e.table.codes[b].writeTo(bw); err != nil {
			return nil, err
		}
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, "Encoder ")
	if err != nil {
		return int64(n), err
	}
	m, err := e.table.Dump(w)
	return int64(n) + m, err
}
