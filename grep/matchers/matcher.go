package matchers

import "errors"

var ErrEmptyPattern = errors.New("pattern must not be empty")

//go:generate counterfeiter . Matcher

// Matcher finds the first occurrence of a fixed byte pattern.
type Matcher interface {
	// Index returns the offset of the first occurrence of the pattern in text,
	// or -1 if there is none.
	Index(text []byte) int
	Len() int
}

// FindAll returns the offsets of every non-overlapping occurrence of the
// matcher's pattern in text, in ascending order. It returns nil when there
// are none.
func FindAll(m Matcher, text []byte) []int {
	var offsets []int

	it := NewIterator(m, text)
	for it.Next() {
		offsets = append(offsets, it.Offset())
	}

	return offsets
}
