package matchers

// Iterator walks the non-overlapping occurrences of a pattern lazily. Every
// scan after a match starts where that match ends. An Iterator cannot be
// restarted.
type Iterator struct {
	matcher Matcher
	text    []byte

	next   int
	offset int
	done   bool
}

func NewIterator(m Matcher, text []byte) *Iterator {
	return &Iterator{
		matcher: m,
		text:    text,
		offset:  -1,
	}
}

// Next advances to the following match and reports whether there was one.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}

	idx := it.matcher.Index(it.text[it.next:])
	if idx < 0 {
		it.done = true
		it.offset = -1
		return false
	}

	it.offset = it.next + idx
	it.next = it.offset + it.matcher.Len()

	return true
}

// Offset is the absolute offset of the current match, or -1 before the
// first call to Next and after the last match.
func (it *Iterator) Offset() int {
	return it.offset
}
