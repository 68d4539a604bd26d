package codec

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

var errReplacement = errors.New("input contains bytes that are not valid in the encoding")

var (
	ShiftJIS  Codec = &textCodec{name: "shift-jis", label: "Shift-JIS", enc: japanese.ShiftJIS}
	EUCJP     Codec = &textCodec{name: "euc-jp", label: "EUC-JP", enc: japanese.EUCJP}
	ISO2022JP Codec = &textCodec{name: "iso2022-jp", label: "ISO-2022-JP", enc: japanese.ISO2022JP}
)

type textCodec struct {
	name  string
	label string
	enc   encoding.Encoding
}

func (c *textCodec) Name() string { return c.name }

func (c *textCodec) String() string { return c.label }

func (c *textCodec) Encode(text string) ([]byte, error) {
	b, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, &EncodeError{Codec: c.label, Err: err}
	}

	return b, nil
}

// Decode fails when the decoder had to substitute U+FFFD: none of the
// Japanese encodings can represent that rune, so it only shows up for
// malformed input.
func (c *textCodec) Decode(b []byte) (string, error) {
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &DecodeError{Codec: c.label, Err: err}
	}

	s := string(out)
	if strings.ContainsRune(s, utf8.RuneError) {
		return "", &DecodeError{Codec: c.label, Err: errReplacement}
	}

	return s, nil
}
