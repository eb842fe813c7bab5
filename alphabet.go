package huffz78

// effectiveSize returns the number of non-zero entries in counts: the
// size sigma of the effective alphabet.
func effectiveSize(counts []uint64) int {
	n := 0
	for _, c := range counts {
		if c != 0 {
			n++
		}
	}
	return n
}

// buildSymbolTable returns the symbols with non-zero counts, in
// ascending symbol-value order. This is the "by symbol value" ranking
// used during counting and effective-alphabet construction; table.go
// later re-ranks these by (length, symbol).
func buildSymbolTable(counts []uint64) []byte {
	symbols := make([]byte, 0, effectiveSize(counts))
	for s, c := range counts {
		if c != 0 {
			symbols = append(symbols, byte(s))
		}
	}
	return symbols
}
