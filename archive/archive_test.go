package archive

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/huffzip"
	"github.com/chronos-tachyon/huffzip/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(5)
	inputs := [][]byte{
		{},
		[]byte("bbbbb"),
		[]byte("aaabbc"),
		r.Bytes(4096),
		r.Skewed(10000, 12),
	}
	for _, src := range inputs {
		var buf bytes.Buffer
		n, err := Compress(&buf, src)
		require.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), n)

		out, err := Decompress(&buf)
		require.NoError(t, err)
		assert.Equal(t, src, out)
		assert.Zero(t, buf.Len(), "archive should be fully consumed")
	}
}

func TestLayout(t *testing.T) {
	var buf bytes.Buffer
	_, err := Compress(&buf, []byte("aaabbc"))
	require.NoError(t, err)

	table := testutil.MustDecodeHex("010003" + "610100" + "6202c0" + "630280")
	packed := testutil.MustDecodeHex("011f00")
	crc := crc32.ChecksumIEEE(append(append([]byte{}, table...), packed...))

	expect := "4855465a" + "01" +
		"0000000c" + hex.EncodeToString(table) +
		"0000000000000006" +
		"00000003" + hex.EncodeToString(packed) +
		hex.EncodeToString([]byte{byte(crc >> 24), byte(crc >> 16), byte(crc >> 8), byte(crc)})
	assert.Equal(t, expect, hex.EncodeToString(buf.Bytes()))
}

func TestChecksum(t *testing.T) {
	r := testutil.NewRand(6)
	for i := 0; i < 10; i++ {
		a, b := r.Bytes(r.Intn(300)), r.Bytes(r.Intn(300))
		whole := crc32.ChecksumIEEE(append(append([]byte{}, a...), b...))
		assert.Equal(t, whole, checksum(a, b))
	}
}

func TestRead_Corrupt(t *testing.T) {
	var buf bytes.Buffer
	_, err := Compress(&buf, []byte("hello, hello, hello"))
	require.NoError(t, err)
	good := buf.Bytes()

	mutate := func(f func(b []byte) []byte) []byte {
		return f(append([]byte{}, good...))
	}

	testData := map[string][]byte{
		"empty":       {},
		"bad-magic":   mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
		"truncated":   good[:len(good)-3],
		"flipped-bit": mutate(func(b []byte) []byte { b[len(b)-6] ^= 0x10; return b }),
		"huge-table":  mutate(func(b []byte) []byte { b[5] = 0xff; return b }),
	}
	for name, data := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := Decompress(bytes.NewReader(data))
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}

	data := mutate(func(b []byte) []byte { b[4] = 9; return b })
	_, err = Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrVersion)
}

func TestDecompress_LengthMismatch(t *testing.T) {
	var buf bytes.Buffer
	_, err := Compress(&buf, []byte("aaabbc"))
	require.NoError(t, err)

	a, err := Read(&buf)
	require.NoError(t, err)
	a.Length++

	buf.Reset()
	_, err = Write(&buf, a)
	require.NoError(t, err)

	_, err = Decompress(&buf)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestRead_MalformedTable(t *testing.T) {
	// Symbol 'a' has a 1-bit code but its code byte sets a padding bit.
	table := testutil.MustDecodeHex("010001" + "6101ff")
	packed := testutil.MustDecodeHex("01")

	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(Version)
	binary.Write(&buf, binary.BigEndian, uint32(len(table)))
	buf.Write(table)
	binary.Write(&buf, binary.BigEndian, uint64(0))
	binary.Write(&buf, binary.BigEndian, uint32(len(packed)))
	buf.Write(packed)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(append(append([]byte{}, table...), packed...)))

	_, err := Read(&buf)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, huffzip.ErrMalformedTable)
}
