package huffzip

// bytesForBits returns the number of bytes needed to hold n bits.
func bytesForBits(n uint64) int {
	return int((n + 7) / 8)
}
