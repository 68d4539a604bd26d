package grep

import (
	"errors"

	"code.cloudfoundry.org/lager"
	"github.com/hashicorp/go-multierror"

	"github.com/laplus-sadness/sjisgrep/extract"
	"github.com/laplus-sadness/sjisgrep/grep/matchers"
)

// Source is one named buffer to search.
type Source struct {
	Path string
	Data []byte
}

// Hit is a match together with the string that contains it.
type Hit struct {
	Path   string
	Offset int
	Entry  extract.Entry
}

// ErrStop can be returned by a HitHandlerFunc to end the search of the
// current source without reporting an error.
var ErrStop = errors.New("stop searching")

type HitHandlerFunc func(lager.Logger, Hit) error

//go:generate counterfeiter . Grepper

type Grepper interface {
	Grep(lager.Logger, Source, HitHandlerFunc) error
}

type grepper struct {
	matcher   matchers.Matcher
	extractor extract.Extractor
	maxCount  int
}

// NewGrepper returns a Grepper that reports at most maxCount hits per source.
// A maxCount of zero or less means no limit.
func NewGrepper(matcher matchers.Matcher, extractor extract.Extractor, maxCount int) Grepper {
	return &grepper{
		matcher:   matcher,
		extractor: extractor,
		maxCount:  maxCount,
	}
}

func (g *grepper) Grep(
	logger lager.Logger,
	source Source,
	handleHit HitHandlerFunc,
) error {
	logger = logger.Session("grep", lager.Data{"path": source.Path, "size": len(source.Data)})
	logger.Debug("starting")

	var result error
	found := 0

	it := matchers.NewIterator(g.matcher, source.Data)
	for it.Next() {
		offset := it.Offset()

		entry, err := g.extractor.Extract(source.Data, offset)
		if err != nil {
			logger.Error("extract-failed", err, lager.Data{"offset": offset})
			result = multierror.Append(result, &PathError{Path: source.Path, Err: err})
			continue
		}

		if entry.DecodeErr != nil {
			logger.Debug("decode-failed", lager.Data{"offset": offset, "error": entry.DecodeErr.Error()})
		}

		err = handleHit(logger, Hit{
			Path:   source.Path,
			Offset: offset,
			Entry:  entry,
		})
		if err == ErrStop {
			break
		}
		if err != nil {
			logger.Error("failed", err)
			result = multierror.Append(result, err)
		}

		found++
		if g.maxCount > 0 && found >= g.maxCount {
			logger.Debug("max-count-reached", lager.Data{"count": found})
			break
		}
	}

	logger.Debug("done", lager.Data{"hits": found})
	return result
}

// PathError ties an error to the source it happened in.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }
