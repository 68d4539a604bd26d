package mimetype

import (
	"bytes"
	"strings"

	"bitbucket.org/taruti/mimemagic"
)

const (
	Zip  = "application/zip"
	Tar  = "application/x-tar"
	Tgz  = "application/x-gtar"
	Gzip = "application/gzip"
	Zstd = "application/zstd"
	Xz   = "application/x-xz"
)

// HeaderSize is how many leading bytes the sniffers need.
const HeaderSize = 512

// IsArchive reports whether a file is an archive whose members can be
// searched, first by name and then by content.
func IsArchive(filename string, header []byte) (string, bool) {
	if strings.HasSuffix(filename, ".tar.gz") ||
		strings.HasSuffix(filename, ".tgz") {
		return Tgz, true
	} else if strings.HasSuffix(filename, ".tar") {
		return Tar, true
	} else if strings.HasSuffix(filename, ".zip") ||
		strings.HasSuffix(filename, ".jar") {
		return Zip, true
	}

	switch mimemagic.Match("", header) {
	case Zip, "application/x-zip-compressed":
		return Zip, true
	case Tar:
		return Tar, true
	}

	// local file header, in case the magic database does not know it
	if bytes.HasPrefix(header, []byte("PK\x03\x04")) {
		return Zip, true
	}

	return "", false
}

var compressionMagic = []struct {
	mime  string
	magic []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{Xz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
}

// Compression returns the type of a compressed stream from its first bytes,
// or "" when the data does not look compressed.
func Compression(header []byte) string {
	for _, c := range compressionMagic {
		if bytes.HasPrefix(header, c.magic) {
			return c.mime
		}
	}

	return ""
}
