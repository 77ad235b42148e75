package testutil

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/icza/bitio"
)

// DecodeBitGen turns a hand-written description of a packed stream into the
// bytes it describes.  Bits are packed MSB-first, which is the order huffzip
// writes its payload in.
//
// The description is a list of whitespace-separated words; '#' comments out
// the rest of its line.  The first word must be ">>>".  Each following word
// is one of:
//
//	0110       literal bits, left-most first (at most 64)
//	D5:17      the value 17 in 5 bits, decimal
//	H8:a5      the value 0xa5 in 8 bits, hexadecimal
//	X:01ff     raw bytes; the stream is first zero-padded to a byte boundary
//
// Any word may end in "*N" to repeat it N times.  The stream is zero-padded to
// a whole number of bytes at the end.
//
// For example, ">>> X:01 0*3 11 11 10" yields the bytes 01 1f 00.
func DecodeBitGen(str string) ([]byte, error) {
	var words []string
	for _, line := range strings.Split(str, "\n") {
		line, _, _ = strings.Cut(line, "#")
		words = append(words, strings.Fields(line)...)
	}
	if len(words) == 0 || words[0] != ">>>" {
		return nil, fmt.Errorf("testutil: BitGen must start with \">>>\"")
	}

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	for _, word := range words[1:] {
		body, count := word, 1
		if i := strings.LastIndexByte(word, '*'); i >= 0 {
			n, err := strconv.Atoi(word[i+1:])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("testutil: bad repeat count in %q", word)
			}
			body, count = word[:i], n
		}

		emit, err := parseWord(body)
		if err != nil {
			return nil, err
		}
		for ; count > 0; count-- {
			if err := emit(bw); err != nil {
				return nil, err
			}
		}
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseWord returns a function that writes one copy of the word.
func parseWord(word string) (func(*bitio.Writer) error, error) {
	switch {
	case strings.HasPrefix(word, "X:"):
		raw, err := hex.DecodeString(word[2:])
		if err != nil || len(raw) == 0 {
			return nil, fmt.Errorf("testutil: bad raw bytes %q", word)
		}
		return func(bw *bitio.Writer) error {
			if _, err := bw.Align(); err != nil {
				return err
			}
			_, err := bw.Write(raw)
			return err
		}, nil

	case strings.HasPrefix(word, "D"), strings.HasPrefix(word, "H"):
		width, value, ok := strings.Cut(word[1:], ":")
		if !ok {
			return nil, fmt.Errorf("testutil: bad word %q", word)
		}
		base := 10
		if word[0] == 'H' {
			base = 16
		}
		n, err1 := strconv.ParseUint(width, 10, 8)
		v, err2 := strconv.ParseUint(value, base, 64)
		if err1 != nil || err2 != nil || n > 64 {
			return nil, fmt.Errorf("testutil: bad number %q", word)
		}
		if n < 64 && v>>n != 0 {
			return nil, fmt.Errorf("testutil: %q does not fit in %d bits", word, n)
		}
		return writeValue(v, uint8(n)), nil

	default:
		if len(word) == 0 || len(word) > 64 || strings.Trim(word, "01") != "" {
			return nil, fmt.Errorf("testutil: bad word %q", word)
		}
		v, _ := strconv.ParseUint(word, 2, 64)
		return writeValue(v, uint8(len(word))), nil
	}
}

func writeValue(v uint64, n uint8) func(*bitio.Writer) error {
	return func(bw *bitio.Writer) error {
		return bw.WriteBits(v, n)
	}
}
