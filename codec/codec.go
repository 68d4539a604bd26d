// Package codec converts between Go strings and the byte encodings that
// sjisgrep can search in.
package codec

import (
	"fmt"
	"sort"
	"strings"
)

//go:generate counterfeiter . Codec

type Codec interface {
	// Name is the canonical name used on the command line.
	Name() string
	Encode(text string) ([]byte, error)
	Decode(b []byte) (string, error)
}

// EncodeError means the text cannot be represented in the codec.
type EncodeError struct {
	Codec string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode the search pattern to %s", e.Codec)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError means the bytes are not valid in the codec.
type DecodeError struct {
	Codec string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode the found string to %s", e.Codec)
}

func (e *DecodeError) Unwrap() error { return e.Err }

const DefaultName = "shift-jis"

var codecs = map[string]Codec{
	"shift-jis":  ShiftJIS,
	"euc-jp":     EUCJP,
	"iso2022-jp": ISO2022JP,
	"utf8":       UTF8,
}

var aliases = map[string]string{
	"shiftjis":    "shift-jis",
	"shift_jis":   "shift-jis",
	"sjis":        "shift-jis",
	"cp932":       "shift-jis",
	"eucjp":       "euc-jp",
	"euc_jp":      "euc-jp",
	"iso-2022-jp": "iso2022-jp",
	"iso2022jp":   "iso2022-jp",
	"jis":         "iso2022-jp",
	"utf-8":       "utf8",
}

// Lookup resolves a codec by name, ignoring case.
func Lookup(name string) (Codec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}

	c, ok := codecs[key]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q (supported: %s)", name, strings.Join(Names(), ", "))
	}

	return c, nil
}

// Names returns the canonical codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
