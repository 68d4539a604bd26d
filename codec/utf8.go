package codec

import (
	"errors"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("invalid UTF-8 sequence")

// UTF8 passes bytes through unchanged, validating them on decode.
var UTF8 Codec = utf8Codec{}

type utf8Codec struct{}

func (utf8Codec) Name() string { return "utf8" }

func (utf8Codec) String() string { return "UTF-8" }

func (utf8Codec) Encode(text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, &EncodeError{Codec: "UTF-8", Err: errInvalidUTF8}
	}

	return []byte(text), nil
}

func (utf8Codec) Decode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", &DecodeError{Codec: "UTF-8", Err: errInvalidUTF8}
	}

	return string(b), nil
}
