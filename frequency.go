package huffzip

// CountFrequencies scans src and returns one SymbolWeight for each distinct
// byte value present, in ascending Symbol order.  An empty src yields nil.
func CountFrequencies(src []byte) []SymbolWeight {
	var counts [NumSymbols]uint64
	for _, b := range src {
		counts[b]++
	}

	var out []SymbolWeight
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if counts[symbol] != 0 {
			out = append(out, SymbolWeight{Symbol(symbol), counts[symbol]})
		}
	}
	return out
}
