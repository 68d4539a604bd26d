package inflator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/archiver/extractor"
	"code.cloudfoundry.org/lager"
	"github.com/hashicorp/go-multierror"

	"github.com/laplus-sadness/sjisgrep/mimetype"
)

//go:generate counterfeiter . Inflator

type Inflator interface {
	Inflate(logger lager.Logger, mime, archivePath, destination string) error
}

type inflator struct{}

func New() Inflator {
	return &inflator{}
}

// Inflate extracts the archive into destination, then replaces every archive
// found among its members with a "<name>-contents" directory, recursively.
// Nested archives that fail to extract are left in place.
func (i *inflator) Inflate(logger lager.Logger, mime, archivePath, destination string) error {
	logger = logger.Session("inflate", lager.Data{"archive": archivePath, "mime": mime})
	logger.Debug("starting")
	defer logger.Debug("done")

	if err := extractFile(mime, archivePath, destination); err != nil {
		logger.Error("extract-failed", err)
		return err
	}

	return i.recursivelyExtractArchivesInDir(logger, destination)
}

func extractFile(mime, path, destination string) error {
	var ex extractor.Extractor
	switch mime {
	case mimetype.Zip:
		ex = extractor.NewZip()
	case mimetype.Tar:
		ex = extractor.NewTar()
	case mimetype.Tgz:
		ex = extractor.NewTgz()
	default:
		return fmt.Errorf("don't know how to extract %s", mime)
	}

	if err := os.MkdirAll(destination, 0755); err != nil {
		return err
	}

	return ex.Extract(path, destination)
}

func (i *inflator) recursivelyExtractArchivesInDir(logger lager.Logger, dir string) error {
	children, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var result error
	for _, child := range children {
		absPath := filepath.Join(dir, child.Name())

		if child.IsDir() {
			if err := i.recursivelyExtractArchivesInDir(logger, absPath); err != nil {
				result = multierror.Append(result, err)
			}
			continue
		}

		if !child.Type().IsRegular() {
			continue
		}

		header, err := ReadHeader(absPath)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		mime, isArchive := mimetype.IsArchive(child.Name(), header)
		if !isArchive {
			continue
		}

		extractDir := absPath + "-contents"
		if err := extractFile(mime, absPath, extractDir); err != nil {
			logger.Error("nested-extract-failed", err, lager.Data{"path": absPath})
			continue
		}

		if err := os.RemoveAll(absPath); err != nil {
			result = multierror.Append(result, err)
			continue
		}

		if err := i.recursivelyExtractArchivesInDir(logger, extractDir); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result
}

// ReadHeader returns up to mimetype.HeaderSize leading bytes of a file.
func ReadHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, mimetype.HeaderSize)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}

	return header[:n], nil
}
