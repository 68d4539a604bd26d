// Package blob loads the whole input to search into memory.
package blob

import (
	"bytes"
	"fmt"
	"io"

	"code.cloudfoundry.org/lager"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/laplus-sadness/sjisgrep/mimetype"
)

type Options struct {
	// Decompress replaces gzip, zstd and xz data with its decompressed form.
	Decompress bool
}

// Blob is the immutable content of one input. Bytes must not be used after
// Close.
type Blob struct {
	Path string

	data    []byte
	release func() error
}

func (b *Blob) Bytes() []byte {
	return b.data
}

func (b *Blob) Close() error {
	b.data = nil
	if b.release == nil {
		return nil
	}

	release := b.release
	b.release = nil
	return release()
}

// Open loads the file at path, mapping it into memory where the platform
// allows.
func Open(logger lager.Logger, path string, opts Options) (*Blob, error) {
	logger = logger.Session("open", lager.Data{"path": path})
	logger.Debug("starting")
	defer logger.Debug("done")

	b, err := mapFile(path)
	if err != nil {
		logger.Error("failed", err)
		return nil, err
	}

	return finish(logger, b, opts)
}

// Read loads everything r produces.
func Read(logger lager.Logger, r io.Reader, name string, opts Options) (*Blob, error) {
	logger = logger.Session("read", lager.Data{"name": name})

	data, err := io.ReadAll(r)
	if err != nil {
		logger.Error("failed", err)
		return nil, err
	}

	return finish(logger, &Blob{Path: name, data: data}, opts)
}

func finish(logger lager.Logger, b *Blob, opts Options) (*Blob, error) {
	if !opts.Decompress {
		return b, nil
	}

	mime := mimetype.Compression(b.data)
	if mime == "" {
		return b, nil
	}

	data, err := decompress(mime, b.data)
	if closeErr := b.Close(); closeErr != nil {
		logger.Error("release-failed", closeErr)
	}
	if err != nil {
		logger.Error("decompress-failed", err, lager.Data{"mime": mime})
		return nil, fmt.Errorf("%s: decompressing %s: %w", b.Path, mime, err)
	}

	logger.Debug("decompressed", lager.Data{"mime": mime, "size": len(data)})

	return &Blob{Path: b.Path, data: data}, nil
}

func decompress(mime string, data []byte) ([]byte, error) {
	switch mime {
	case mimetype.Gzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()

		return io.ReadAll(r)
	case mimetype.Zstd:
		d, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer d.Close()

		return d.DecodeAll(data, nil)
	case mimetype.Xz:
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}

		return io.ReadAll(r)
	default:
		return nil, fmt.Errorf("don't know how to decompress %s", mime)
	}
}
