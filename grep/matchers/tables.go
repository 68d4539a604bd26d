package matchers

const alphabetSize = 256

// BadCharacterTable maps every byte value to the distance between its last
// occurrence in pattern and the end of pattern. Bytes absent from pattern map
// to len(pattern).
func BadCharacterTable(pattern []byte) [alphabetSize]int {
	var table [alphabetSize]int

	patlen := len(pattern)
	for i := range table {
		table[i] = patlen
	}

	for i, b := range pattern {
		table[b] = patlen - 1 - i
	}

	return table
}

// GoodSuffixTable holds, for every pattern position, how far the scan cursor
// moves past a mismatch at that position. It covers both a matched suffix that
// reappears earlier in pattern and a matched suffix that is also a prefix.
func GoodSuffixTable(pattern []byte) []int {
	patlen := len(pattern)
	table := make([]int, patlen)

	lastPrefix := patlen
	for p := patlen - 1; p >= 0; p-- {
		if isPrefix(pattern, p+1) {
			lastPrefix = p + 1
		}
		table[p] = lastPrefix + patlen - 1 - p
	}

	for p := 0; p < patlen-1; p++ {
		slen := suffixLength(pattern, p)
		if pattern[p-slen] != pattern[patlen-1-slen] {
			table[patlen-1-slen] = patlen - 1 - p + slen
		}
	}

	return table
}

// isPrefix reports whether pattern[pos:] is a prefix of pattern.
func isPrefix(pattern []byte, pos int) bool {
	suffixlen := len(pattern) - pos
	for i := 0; i < suffixlen; i++ {
		if pattern[i] != pattern[pos+i] {
			return false
		}
	}

	return true
}

// suffixLength is the length of the longest suffix of pattern ending at pos
// that is also a suffix of pattern, capped at pos.
func suffixLength(pattern []byte, pos int) int {
	last := len(pattern) - 1

	i := 0
	for i < pos && pattern[pos-i] == pattern[last-i] {
		i++
	}

	return i
}
