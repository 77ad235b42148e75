package huffzip

// Symbol represents one byte value of the input alphabet.
type Symbol byte

// NumSymbols is the size of the alphabet.
const NumSymbols = 256

// SymbolWeight pairs a Symbol with its weight, i.e. the number of times it
// occurs in the input.
type SymbolWeight struct {
	Symbol Symbol
	Weight uint64
}
