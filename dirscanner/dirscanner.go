package dirscanner

import (
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager"
	"github.com/hashicorp/go-multierror"

	"github.com/laplus-sadness/sjisgrep/blob"
	"github.com/laplus-sadness/sjisgrep/grep"
	"github.com/laplus-sadness/sjisgrep/inflator"
	"github.com/laplus-sadness/sjisgrep/mimetype"
)

type DirScanner struct {
	grepper grep.Grepper
	handler grep.HitHandlerFunc
	opts    blob.Options

	inflator   inflator.Inflator
	scratchDir string
}

func New(grepper grep.Grepper, handler grep.HitHandlerFunc, opts blob.Options) *DirScanner {
	return &DirScanner{
		grepper: grepper,
		handler: handler,
		opts:    opts,
	}
}

// WithInflator makes the scanner search inside zip and tar archives by
// inflating them under scratchDir. Members are reported as
// "<archive>/<member>".
func (s *DirScanner) WithInflator(i inflator.Inflator, scratchDir string) *DirScanner {
	s.inflator = i
	s.scratchDir = scratchDir
	return s
}

// Scan greps a single file, or every regular file below a directory in
// lexical order.
func (s *DirScanner) Scan(logger lager.Logger, path string) error {
	return s.ScanAs(logger, path, path)
}

// ScanAs is Scan with hits reported under label instead of path.
func (s *DirScanner) ScanAs(logger lager.Logger, path, label string) error {
	logger = logger.Session("scan", lager.Data{"path": path})
	logger.Debug("starting")
	defer logger.Debug("done")

	info, err := os.Stat(path)
	if err != nil {
		logger.Error("stat-failed", err)
		return err
	}

	if !info.IsDir() {
		return s.scanFile(logger, path, label)
	}

	return s.scanDir(logger, path, label)
}

func (s *DirScanner) scanDir(logger lager.Logger, dir, label string) error {
	children, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("read-dir-failed", err, lager.Data{"dir": dir})
		return err
	}

	var result error
	for _, child := range children {
		wholePath := filepath.Join(dir, child.Name())
		wholeLabel := filepath.Join(label, child.Name())

		if child.IsDir() {
			if err := s.scanDir(logger, wholePath, wholeLabel); err != nil {
				result = multierror.Append(result, err)
			}
			continue
		}

		if !child.Type().IsRegular() {
			logger.Debug("skipping", lager.Data{"path": wholePath, "mode": child.Type().String()})
			continue
		}

		if err := s.scanFile(logger, wholePath, wholeLabel); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result
}

func (s *DirScanner) scanFile(logger lager.Logger, path, label string) error {
	if s.inflator != nil {
		header, err := inflator.ReadHeader(path)
		if err != nil {
			logger.Error("read-header-failed", err, lager.Data{"path": path})
			return err
		}

		if mime, isArchive := mimetype.IsArchive(filepath.Base(path), header); isArchive {
			return s.scanArchive(logger, mime, path, label)
		}
	}

	b, err := blob.Open(logger, path, s.opts)
	if err != nil {
		return err
	}
	defer b.Close()

	return s.grepper.Grep(logger, grep.Source{Path: label, Data: b.Bytes()}, s.handler)
}

func (s *DirScanner) scanArchive(logger lager.Logger, mime, path, label string) error {
	logger = logger.Session("scan-archive", lager.Data{"archive": path, "mime": mime})

	destination, err := os.MkdirTemp(s.scratchDir, filepath.Base(path)+"-")
	if err != nil {
		logger.Error("mkdir-failed", err)
		return err
	}
	defer os.RemoveAll(destination)

	var result error
	if err := s.inflator.Inflate(logger, mime, path, destination); err != nil {
		result = multierror.Append(result, err)
	}

	// nested archives are already inflated in place
	members := New(s.grepper, s.handler, s.opts)
	if err := members.scanDir(logger, destination, label); err != nil {
		result = multierror.Append(result, err)
	}

	return result
}
