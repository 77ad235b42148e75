package huffzip

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "huffzip: " + string(e) }

var (
	// ErrUnknownSymbol is returned when encoding a byte that has no code in
	// the Table.  The Table and the input are out of sync.
	ErrUnknownSymbol error = Error("symbol missing from code table")

	// ErrMalformedStream is returned when a packed stream cannot be decoded
	// with the given Table.
	ErrMalformedStream error = Error("malformed packed stream")

	// ErrMalformedTable is returned when a serialized Table is invalid.
	ErrMalformedTable error = Error("malformed code table")

	// ErrInvalidCode is returned by ParseCode for strings that are not a
	// non-empty run of '0' and '1' characters.
	ErrInvalidCode error = Error("invalid code string")
)
