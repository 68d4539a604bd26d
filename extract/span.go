package extract

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrNoLeadingBoundary  = errors.New("failed to find the beginning of the string that contains the pattern")
	ErrNoTrailingBoundary = errors.New("failed to find the end of the string that contains the pattern")
)

// BoundaryError is returned when the NUL byte delimiting the string around
// a match is missing.
type BoundaryError struct {
	Offset int
	Err    error
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("0x%X: %s", e.Offset, e.Err)
}

func (e *BoundaryError) Unwrap() error { return e.Err }

// Span is the half-open range [Begin, End) of a NUL-delimited string.
type Span struct {
	Begin int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Begin
}

// FindSpan locates the NUL-delimited string containing offset. Without a NUL
// before offset the string starts at the beginning of buf, unless
// requireLeadingNUL is set. A missing NUL after offset is always an error.
func FindSpan(buf []byte, offset int, requireLeadingNUL bool) (Span, error) {
	begin := bytes.LastIndexByte(buf[:offset], 0) + 1
	if begin == 0 && requireLeadingNUL {
		return Span{}, &BoundaryError{Offset: offset, Err: ErrNoLeadingBoundary}
	}

	end := bytes.IndexByte(buf[offset:], 0)
	if end < 0 {
		return Span{}, &BoundaryError{Offset: offset, Err: ErrNoTrailingBoundary}
	}

	return Span{Begin: begin, End: offset + end}, nil
}
