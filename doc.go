// Package huffzip implements a static, byte-oriented Huffman compressor.
//
// Compression counts the occurrences of each byte value, greedily merges the
// two lightest nodes until a single prefix-code tree remains, derives a code
// Table from the tree, and packs the concatenated codes MSB-first behind a
// one-byte header.  Decompression needs the packed bytes *and* the exact Table
// produced alongside them; there is no implicit or canonical code scheme.
//
// Packed stream layout:
//
//     +--------+-----------------------------+
//     | header | payload (MSB-first codes)   |
//     +--------+-----------------------------+
//
// The header holds the number of valid bits in the final payload byte, where
// a stored 0 means all 8 bits are valid.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffzip
