package matchers

type boyerMoore struct {
	pattern  []byte
	badChar  [alphabetSize]int
	goodSuff []int
}

// NewBoyerMoore builds the shift tables for pattern once. The returned
// Matcher can be reused for any number of scans.
func NewBoyerMoore(pattern []byte) (Matcher, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}

	return &boyerMoore{
		pattern:  pattern,
		badChar:  BadCharacterTable(pattern),
		goodSuff: GoodSuffixTable(pattern),
	}, nil
}

func (m *boyerMoore) Len() int {
	return len(m.pattern)
}

func (m *boyerMoore) Index(text []byte) int {
	patlen := len(m.pattern)
	textlen := len(text)

	if textlen == 0 {
		return -1
	}

	// i is the exclusive end of the window compared against the pattern.
	for i := patlen; i <= textlen; {
		equal := 0
		for equal < patlen && text[i-1-equal] == m.pattern[patlen-1-equal] {
			equal++
		}

		if equal == patlen {
			return i - patlen
		}

		// Both shifts are measured from the mismatching byte, which sits
		// equal bytes before the window end.
		mismatch := i - 1 - equal
		shift := m.badChar[text[mismatch]]
		if good := m.goodSuff[patlen-1-equal]; good > shift {
			shift = good
		}

		i += shift - equal
	}

	return -1
}
