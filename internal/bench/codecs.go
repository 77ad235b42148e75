package bench

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/chronos-tachyon/huffzip/archive"
)

func init() {
	Register("huff",
		func(w io.Writer) (io.WriteCloser, error) {
			return &archiveWriter{w: w}, nil
		},
		func(r io.Reader) (io.ReadCloser, error) {
			out, err := archive.Decompress(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(bytes.NewReader(out)), nil
		})
	Register("flate",
		func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, flate.DefaultCompression)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			return flate.NewReader(r), nil
		})
	Register("zstd",
		func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr.IOReadCloser(), nil
		})
	Register("xz",
		func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			zr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(zr), nil
		})
}

// archiveWriter buffers everything written to it, since the Huffman codec
// needs the whole input to count frequencies, and writes the archive on
// Close.
type archiveWriter struct {
	w   io.Writer
	buf bytes.Buffer
}

func (aw *archiveWriter) Write(p []byte) (int, error) {
	return aw.buf.Write(p)
}

func (aw *archiveWriter) Close() error {
	_, err := archive.Compress(aw.w, aw.buf.Bytes())
	return err
}
