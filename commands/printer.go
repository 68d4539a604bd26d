package commands

import (
	"fmt"
	"io"

	"code.cloudfoundry.org/lager"
	"github.com/hashicorp/go-multierror"
	"github.com/twmb/murmur3"

	"github.com/laplus-sadness/sjisgrep/grep"
)

type hitPrinter struct {
	out          io.Writer
	colors       palette
	withFilename bool
	countOnly    bool
	unique       bool

	total    int
	warnings int

	count int
	seen  map[uint64]struct{}
}

func (p *hitPrinter) startSource() {
	p.count = 0
	p.seen = map[uint64]struct{}{}
}

func (p *hitPrinter) finishSource(path string) {
	if p.countOnly {
		fmt.Fprintf(p.out, "%s%d\n", p.prefix(path), p.count)
	}
}

func (p *hitPrinter) prefix(path string) string {
	if !p.withFilename {
		return ""
	}

	return p.colors.path(path) + ":"
}

func (p *hitPrinter) HandleHit(logger lager.Logger, hit grep.Hit) error {
	if p.unique {
		key := murmur3.Sum64([]byte(hit.Entry.Text))
		if _, found := p.seen[key]; found {
			return nil
		}
		p.seen[key] = struct{}{}
	}

	p.count++
	p.total++

	logger.Debug("hit", lager.Data{"path": hit.Path, "offset": hit.Offset, "address": hit.Entry.Address})

	if p.countOnly {
		return nil
	}

	text := fmt.Sprintf("%q", hit.Entry.Text)
	if hit.Entry.DecodeErr != nil {
		text = p.colors.failure(text)
	}

	_, err := fmt.Fprintf(p.out, "%s%s %s\n",
		p.prefix(hit.Path),
		p.colors.address(fmt.Sprintf("0x%X", hit.Entry.Address)),
		text,
	)

	return err
}

// printingGrepper brackets each source with the printer's per-source
// bookkeeping and turns per-match failures into warnings.
type printingGrepper struct {
	grep.Grepper
	printer *hitPrinter
}

func (g *printingGrepper) Grep(logger lager.Logger, source grep.Source, handleHit grep.HitHandlerFunc) error {
	g.printer.startSource()
	err := g.Grepper.Grep(logger, source, handleHit)
	g.printer.finishSource(source.Path)

	if err == nil {
		return nil
	}

	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			warn(e)
		}
		g.printer.warnings += len(merr.Errors)
		return nil
	}

	return err
}
