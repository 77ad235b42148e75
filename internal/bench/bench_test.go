package bench

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/huffzip/internal/testutil"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"flate", "huff", "xz", "zstd"}, Names())
}

func TestRun(t *testing.T) {
	r := testutil.NewRand(7)
	input := Resize(r.Skewed(4096, 16), 1<<15)

	results, err := Run(input, Names())
	require.NoError(t, err)
	require.Len(t, results, len(Names()))
	for i, res := range results {
		assert.Equal(t, Names()[i], res.Codec)
		assert.Equal(t, len(input), res.RawSize)
		assert.Greater(t, res.CompSize, 0)
	}

	// Skewed input over a small alphabet compresses well under Huffman.
	huff := results[1]
	assert.Greater(t, huff.Ratio, 1.5)

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, "skewed", results))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "BENCHMARK: skewed"))
	assert.Contains(t, buf.String(), "huff")
}

func TestRun_UnknownCodec(t *testing.T) {
	_, err := Run([]byte("abc"), []string{"lz4"})
	assert.Error(t, err)
}

func TestParseSizes(t *testing.T) {
	sizes, err := ParseSizes("1e4, 100,")
	require.NoError(t, err)
	assert.Equal(t, []int{10000, 100}, sizes)

	_, err = ParseSizes("bogus")
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	input := []byte{0x01, 0x02}
	assert.Equal(t, input, Resize(input, -1))
	assert.Equal(t, []byte{0x01}, Resize(input, 1))
	assert.Equal(t, []byte{0x01, 0x02, 0x00, 0x03, 0x03}, Resize(input, 5))
	assert.Empty(t, Resize(nil, 0))
	assert.Panics(t, func() { Resize(nil, 3) })
}
