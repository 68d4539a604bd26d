// Package extract turns a match offset into the decoded string around it.
package extract

import (
	"fmt"

	"github.com/laplus-sadness/sjisgrep/codec"
)

// Entry is one decoded string found around a match.
type Entry struct {
	Address int
	Span    Span
	Text    string

	// DecodeErr is set when the span could not be decoded; Text then holds
	// the error message.
	DecodeErr error
}

// String renders the entry as `0x<ADDRESS> "<text>"`.
func (e Entry) String() string {
	return fmt.Sprintf("0x%X %q", e.Address, e.Text)
}

type Extractor struct {
	Codec codec.Codec

	// ReportSpanStart reports the address of the string start instead of
	// the match offset.
	ReportSpanStart bool

	RequireLeadingNUL bool
}

func (x Extractor) Extract(buf []byte, offset int) (Entry, error) {
	span, err := FindSpan(buf, offset, x.RequireLeadingNUL)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Address: offset,
		Span:    span,
	}

	if x.ReportSpanStart {
		entry.Address = span.Begin
	}

	entry.Text, entry.DecodeErr = x.Codec.Decode(buf[span.Begin:span.End])
	if entry.DecodeErr != nil {
		entry.Text = entry.DecodeErr.Error()
	}

	return entry, nil
}
