package huffzip

// Compress builds a Huffman code Table for src and packs src with it.  The
// returned Table must accompany the packed bytes; Decompress needs both.
func Compress(src []byte) ([]byte, *Table, error) {
	table := GenerateTable(BuildTree(CountFrequencies(src)))
	packed, err := Pack(src, table)
	if err != nil {
		return nil, nil, err
	}
	return packed, table, nil
}

// Decompress reverses Compress, given the Table that Compress returned.
func Decompress(packed []byte, table *Table) ([]byte, error) {
	return Unpack(packed, table)
}

// Pack is a convenience function that encodes src with a one-off Encoder.
func Pack(src []byte, table *Table) ([]byte, error) {
	var e Encoder
	e.Init(table)
	return e.Encode(src)
}

// Unpack is a convenience function that decodes packed with a one-off Decoder.
func Unpack(packed []byte, table *Table) ([]byte, error) {
	var d Decoder
	d.Init(table)
	return d.Decode(packed)
}
