// Package archive stores a huffzip code table together with the packed
// stream it belongs to, so that the pair can be written to a single file.
//
// Layout, all integers big-endian:
//
//     4 bytes   magic "HUFZ"
//     byte      format version
//     uint32    table length T, followed by T bytes of Table.MarshalBinary
//     uint64    original (uncompressed) length
//     uint32    payload length P, followed by P bytes of packed stream
//     uint32    CRC-32 (IEEE) of the table bytes followed by the payload bytes
//
package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	hashutil "github.com/dsnet/golib/hashmerge"
	"github.com/op/go-logging"

	"github.com/chronos-tachyon/huffzip"
)

var log = logging.MustGetLogger("huffzip/archive")

// Magic identifies an archive.
const Magic = "HUFZ"

// Version is the format version written by Write.
const Version = 1

// maxTableSize bounds the table section: a header plus 256 entries of at most
// 2 + 32 bytes each.
const maxTableSize = 3 + huffzip.NumSymbols*(2+32)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "archive: " + string(e) }

var (
	// ErrCorrupt is returned when an archive fails a structural or checksum
	// check.  A bad table section also matches huffzip.ErrMalformedTable.
	ErrCorrupt error = Error("archive is corrupted")

	// ErrVersion is returned for an archive written in an unknown format.
	ErrVersion error = Error("unsupported archive version")
)

// Archive is the in-memory form of an archive.
type Archive struct {
	Table  *huffzip.Table
	Packed []byte
	Length uint64
}

// Write serializes a to w.
func Write(w io.Writer, a *Archive) (int64, error) {
	tableBytes, err := a.Table.MarshalBinary()
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	buf.Grow(len(Magic) + 1 + 4 + len(tableBytes) + 8 + 4 + len(a.Packed) + 4)
	buf.WriteString(Magic)
	buf.WriteByte(Version)
	writeUint32(&buf, uint32(len(tableBytes)))
	buf.Write(tableBytes)
	writeUint64(&buf, a.Length)
	writeUint32(&buf, uint32(len(a.Packed)))
	buf.Write(a.Packed)
	writeUint32(&buf, checksum(tableBytes, a.Packed))

	log.Debugf("writing archive: %d symbols, %d table bytes, %d payload bytes", a.Table.Len(), len(tableBytes), len(a.Packed))
	return buf.WriteTo(w)
}

// Read parses an archive from r.  It verifies the magic, version, and
// checksum, but does not decode the payload.
func Read(r io.Reader) (*Archive, error) {
	var hdr [len(Magic) + 1 + 4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, truncated(err)
	}
	if string(hdr[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, hdr[:len(Magic)])
	}
	if v := hdr[len(Magic)]; v != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, v)
	}

	tableLen := binary.BigEndian.Uint32(hdr[len(Magic)+1:])
	if tableLen > maxTableSize {
		return nil, fmt.Errorf("%w: table section of %d bytes", ErrCorrupt, tableLen)
	}
	tableBytes := make([]byte, tableLen)
	if _, err := io.ReadFull(r, tableBytes); err != nil {
		return nil, truncated(err)
	}

	var mid [8 + 4]byte
	if _, err := io.ReadFull(r, mid[:]); err != nil {
		return nil, truncated(err)
	}
	length := binary.BigEndian.Uint64(mid[0:8])
	packedLen := binary.BigEndian.Uint32(mid[8:12])

	var packed bytes.Buffer
	if n, err := io.CopyN(&packed, r, int64(packedLen)); err != nil {
		log.Debugf("payload cut short after %d of %d bytes", n, packedLen)
		return nil, truncated(err)
	}

	var tail [4]byte
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		return nil, truncated(err)
	}
	expect := binary.BigEndian.Uint32(tail[:])
	if actual := checksum(tableBytes, packed.Bytes()); actual != expect {
		return nil, fmt.Errorf("%w: checksum mismatch: expected %08x, got %08x", ErrCorrupt, expect, actual)
	}

	table := new(huffzip.Table)
	if err := table.UnmarshalBinary(tableBytes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	log.Debugf("read archive: %d symbols, %d payload bytes, %d original bytes", table.Len(), packedLen, length)
	return &Archive{Table: table, Packed: packed.Bytes(), Length: length}, nil
}

// Compress compresses src and writes the resulting archive to w.
func Compress(w io.Writer, src []byte) (int64, error) {
	packed, table, err := huffzip.Compress(src)
	if err != nil {
		return 0, err
	}
	return Write(w, &Archive{Table: table, Packed: packed, Length: uint64(len(src))})
}

// Decompress reads an archive from r and returns the original bytes.
func Decompress(r io.Reader) ([]byte, error) {
	a, err := Read(r)
	if err != nil {
		return nil, err
	}
	out, err := huffzip.Decompress(a.Packed, a.Table)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != a.Length {
		return nil, fmt.Errorf("%w: decoded %d bytes, expected %d", ErrCorrupt, len(out), a.Length)
	}
	return out, nil
}

// checksum computes the CRC of table||packed from the CRCs of the two
// sections, without concatenating them.
func checksum(table, packed []byte) uint32 {
	crc1 := crc32.ChecksumIEEE(table)
	crc2 := crc32.ChecksumIEEE(packed)
	return hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, int64(len(packed)))
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: unexpected end of archive", ErrCorrupt)
	}
	return err
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}
