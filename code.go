package huffzip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// MaxCodeSize is the longest Code a Table can hold.  A tree over all 256
// symbols is at most 255 levels deep.
const MaxCodeSize = NumSymbols - 1

const codeWords = 4

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant bit
	// of Bits[0] is the first bit, and bits past Size are always zero.
	Bits [codeWords]uint64
}

// MakeCode is a convenience function that constructs a Code of up to 64 bits.
// The last bit of the sequence is the least significant bit of bits, so
// MakeCode(3, 0x6) is the code "110".
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "size %d > 64", size)
	var hc Code
	hc.Size = size
	if size != 0 {
		hc.Bits[0] = bits << (64 - size)
	}
	return hc
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) == 0 || len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("%w: length %d not in 1..%d", ErrInvalidCode, len(str), MaxCodeSize)
	}
	var hc Code
	for _, ch := range []byte(str) {
		switch ch {
		case '0':
			hc = hc.Append(false)
		case '1':
			hc = hc.Append(true)
		default:
			return Code{}, fmt.Errorf("%w: unexpected character %q in %q", ErrInvalidCode, ch, str)
		}
	}
	return hc, nil
}

// Bit returns the i'th bit of the Code, counting from 0.
func (hc Code) Bit(i int) bool {
	assert.Assertf(i >= 0 && i < int(hc.Size), "bit %d out of range for code of size %d", i, hc.Size)
	return hc.Bits[i/64]>>(63-uint(i)%64)&1 != 0
}

// Append returns a copy of this Code with one more bit at the end.
func (hc Code) Append(bit bool) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code already holds %d bits", hc.Size)
	i := uint(hc.Size)
	if bit {
		hc.Bits[i/64] |= 1 << (63 - i%64)
	}
	hc.Size++
	return hc
}

// HasPrefix reports whether prefix is a prefix of this Code.  Every Code is a
// prefix of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	n := uint(prefix.Size)
	for w := 0; n != 0; w++ {
		k := n
		if k > 64 {
			k = 64
		}
		mask := ^uint64(0) << (64 - k)
		if (hc.Bits[w]^prefix.Bits[w])&mask != 0 {
			return false
		}
		n -= k
	}
	return true
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.bitString())
}

var _ fmt.Stringer = Code{}

func (hc Code) bitString() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := 0; i < int(hc.Size); i++ {
		if hc.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// appendBytes appends the bits of the Code to out, MSB-first, padding the
// final byte with zero bits.
func (hc Code) appendBytes(out []byte) []byte {
	n := bytesForBits(uint64(hc.Size))
	for i := 0; i < n; i++ {
		out = append(out, byte(hc.Bits[i/8]>>(56-8*uint(i%8))))
	}
	return out
}

// codeFromBytes is the inverse of appendBytes.  It reports false if any of
// the padding bits is set.
func codeFromBytes(size byte, in []byte) (Code, bool) {
	assert.Assertf(len(in) == bytesForBits(uint64(size)), "%d bytes cannot hold exactly %d bits", len(in), size)
	var hc Code
	hc.Size = size
	for i, b := range in {
		hc.Bits[i/8] |= uint64(b) << (56 - 8*uint(i%8))
	}
	if pad := uint(len(in)*8) - uint(size); pad != 0 {
		if in[len(in)-1]&(1<<pad-1) != 0 {
			return Code{}, false
		}
	}
	return hc, true
}

// writeTo writes the bits of the Code to bw, first bit first.
func (hc Code) writeTo(bw *bitio.Writer) error {
	n := uint(hc.Size)
	for w := 0; n != 0; w++ {
		k := n
		if k > 64 {
			k = 64
		}
		if err := bw.WriteBits(hc.Bits[w]>>(64-k), uint8(k)); err != nil {
			return err
		}
		n -= k
	}
	return nil
}

// isClean reports whether every bit past Size is zero.
func (hc Code) isClean() bool {
	clean := hc
	n := uint(hc.Size)
	for w := range clean.Bits {
		switch {
		case n >= 64:
			n -= 64
		case n == 0:
			clean.Bits[w] = 0
		default:
			clean.Bits[w] &= ^uint64(0) << (64 - n)
			n = 0
		}
	}
	return clean == hc
}
