// Package testutil holds helpers shared by the huffzip tests.
package testutil

import (
	"encoding/hex"
)

// MustDecodeHex is hex.DecodeString for literals known to be valid.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecodeBitGen is DecodeBitGen for literals known to be valid.
func MustDecodeBitGen(s string) []byte {
	b, err := DecodeBitGen(s)
	if err != nil {
		panic(err)
	}
	return b
}
