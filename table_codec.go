package huffzip

import (
	"encoding"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"
)

// TableVersion is the version byte written by Table.MarshalBinary.
const TableVersion = 1

// tableHeaderSize covers the version byte and the 16-bit entry count.
const tableHeaderSize = 3

// MarshalBinary encodes the Table in a portable, versioned form:
//
//     byte    version (TableVersion)
//     uint16  number of entries, big-endian
//
// followed by one entry per coded symbol, in ascending symbol order:
//
//     byte    symbol
//     byte    code length L, 1..MaxCodeSize
//     ...     ceil(L/8) bytes holding the code bits MSB-first, zero-padded
//
func (t *Table) MarshalBinary() ([]byte, error) {
	out := make([]byte, tableHeaderSize, tableHeaderSize+3*t.Len())
	out[0] = TableVersion
	binary.BigEndian.PutUint16(out[1:tableHeaderSize], uint16(t.Len()))
	for _, symbol := range t.Symbols() {
		hc := t.codes[symbol]
		out = append(out, byte(symbol), hc.Size)
		out = hc.appendBytes(out)
	}
	return out, nil
}

// UnmarshalBinary decodes a Table previously encoded by MarshalBinary.  All
// failures wrap ErrMalformedTable.
func (t *Table) UnmarshalBinary(data []byte) error {
	if len(data) < tableHeaderSize {
		return fmt.Errorf("%w: truncated header", ErrMalformedTable)
	}
	if data[0] != TableVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformedTable, data[0])
	}
	count := int(binary.BigEndian.Uint16(data[1:tableHeaderSize]))
	if count > NumSymbols {
		return fmt.Errorf("%w: %d entries exceeds alphabet size %d", ErrMalformedTable, count, NumSymbols)
	}

	codes := make(map[Symbol]Code, count)
	p := data[tableHeaderSize:]
	for i := 0; i < count; i++ {
		if len(p) < 2 {
			return fmt.Errorf("%w: truncated entry %d", ErrMalformedTable, i)
		}
		symbol, size := Symbol(p[0]), p[1]
		if size == 0 {
			return fmt.Errorf("%w: symbol %d has an empty code", ErrMalformedTable, symbol)
		}
		n := bytesForBits(uint64(size))
		if len(p) < 2+n {
			return fmt.Errorf("%w: truncated entry %d", ErrMalformedTable, i)
		}
		hc, ok := codeFromBytes(size, p[2:2+n])
		if !ok {
			return fmt.Errorf("%w: symbol %d has non-zero padding bits", ErrMalformedTable, symbol)
		}
		if _, dup := codes[symbol]; dup {
			return fmt.Errorf("%w: symbol %d appears twice", ErrMalformedTable, symbol)
		}
		codes[symbol] = hc
		p = p[2+n:]
	}
	if len(p) != 0 {
		return fmt.Errorf("%w: %d bytes of trailing data", ErrMalformedTable, len(p))
	}

	built, err := NewTable(codes)
	if err != nil {
		return err
	}
	*t = *built
	return nil
}

// MarshalJSON encodes the Table as a JSON object that maps each coded symbol,
// written in decimal, to its code as a string of '0' and '1' characters.
func (t *Table) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, t.Len())
	for _, symbol := range t.Symbols() {
		m[strconv.Itoa(int(symbol))] = t.codes[symbol].bitString()
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes a Table previously encoded by MarshalJSON.
func (t *Table) UnmarshalJSON(raw []byte) error {
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}

	codes := make(map[Symbol]Code, len(m))
	for key, value := range m {
		u64, err := strconv.ParseUint(key, 10, 8)
		if err != nil {
			return fmt.Errorf("%w: invalid symbol %q", ErrMalformedTable, key)
		}
		symbol := Symbol(u64)
		if _, dup := codes[symbol]; dup {
			return fmt.Errorf("%w: symbol %d appears twice", ErrMalformedTable, symbol)
		}
		hc, err := ParseCode(value)
		if err != nil {
			return fmt.Errorf("%w: symbol %d: %v", ErrMalformedTable, symbol, err)
		}
		codes[symbol] = hc
	}

	built, err := NewTable(codes)
	if err != nil {
		return err
	}
	*t = *built
	return nil
}

var (
	_ encoding.BinaryMarshaler   = (*Table)(nil)
	_ encoding.BinaryUnmarshaler = (*Table)(nil)
	_ json.Marshaler             = (*Table)(nil)
	_ json.Unmarshaler           = (*Table)(nil)
)
