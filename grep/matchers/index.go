package matchers

import "bytes"

type indexMatcher struct {
	s []byte
}

// NewIndex returns a Matcher backed by bytes.Index.
func NewIndex(pattern []byte) (Matcher, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}

	return &indexMatcher{
		s: pattern,
	}, nil
}

func (m *indexMatcher) Len() int {
	return len(m.s)
}

func (m *indexMatcher) Index(text []byte) int {
	return bytes.Index(text, m.s)
}
