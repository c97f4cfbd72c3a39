// Package bitbudget computes how many storage bits a branch predictor
// configuration needs.
package bitbudget

// TAGE returns the bits used by a tagged geometric predictor: every component
// table holds 2^b entries of counter, tag and usefulness bits, plus one global
// history register of histLen bits.
func TAGE(histLen, cntBits, tagBits, useBits int, compIndexBits []int) int {
	entries := 0
	for _, b := range compIndexBits {
		entries += 1 << b
	}
	return (cntBits+tagBits+useBits)*entries + histLen
}

// Global returns the bits used by a global history predictor with a
// 2^patternBits pattern history table.
func Global(patternBits, cntBits int) int {
	return (1<<patternBits)*cntBits + patternBits
}

// PAp returns the bits used by a two-level predictor with a per-address
// history table of bhtSize entries and a per-address pattern table.
func PAp(patternBits, bhtSize, counterBits int) int {
	return patternBits*bhtSize + bhtSize*counterBits*(1<<patternBits)
}

// Tournament returns the bits used by two predictors plus a selector table of
// selectorSize saturating counters.
func Tournament(bits1, bits2, selectorSize, counterBits int) int {
	return bits1 + bits2 + selectorSize*counterBits
}
