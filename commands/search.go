package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/kardianos/osext"

	"github.com/laplus-sadness/sjisgrep/blob"
	"github.com/laplus-sadness/sjisgrep/codec"
	"github.com/laplus-sadness/sjisgrep/dirscanner"
	"github.com/laplus-sadness/sjisgrep/extract"
	"github.com/laplus-sadness/sjisgrep/grep"
	"github.com/laplus-sadness/sjisgrep/grep/matchers"
	"github.com/laplus-sadness/sjisgrep/inflator"
)

const stdinName = "STDIN"

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

type SearchCommand struct {
	Beginning    bool   `short:"b" long:"beginning" description:"report the address of the string start instead of the match"`
	Encoding     string `short:"e" long:"encoding" description:"encoding of the strings to search for" default:"shift-jis" env:"SJISGREP_ENCODING" value-name:"ENCODING"`
	Hex          bool   `short:"x" long:"hex" description:"PATTERN is hex encoded bytes and is searched as is"`
	MaxCount     int    `short:"m" long:"max-count" description:"stop after N matches per input" value-name:"N"`
	Count        bool   `short:"c" long:"count" description:"only print the number of matches per input"`
	Unique       bool   `short:"u" long:"unique" description:"print each distinct string once per input"`
	WithFilename bool   `short:"H" long:"with-filename" description:"print the input path for each match"`
	Decompress   bool   `short:"z" long:"decompress" description:"search the decompressed content of gzip, zstd and xz inputs"`
	Archives     bool   `short:"a" long:"archives" description:"search the members of zip and tar inputs"`
	Strict       bool   `long:"strict" description:"require a NUL byte before each string"`
	Algorithm    string `long:"algorithm" description:"search algorithm" choice:"boyer-moore" choice:"index" default:"boyer-moore"`
	NoColor      bool   `long:"no-color" description:"never colour the output"`
	Debug        bool   `long:"debug" description:"enables debug logging"`

	Args struct {
		Pattern string   `positional-arg-name:"PATTERN" required:"yes"`
		Files   []string `positional-arg-name:"FILE"`
	} `positional-args:"yes"`
}

func (command *SearchCommand) Execute(args []string) error {
	warnIfOldExecutable()

	logger := lager.NewLogger("sjisgrep")
	if command.Debug {
		logger.RegisterSink(lager.NewWriterSink(os.Stderr, lager.DEBUG))
	}

	c, err := codec.Lookup(command.Encoding)
	if err != nil {
		return err
	}

	pattern, err := command.pattern(c)
	if err != nil {
		return err
	}

	matcher, err := command.buildMatcher(pattern)
	if err != nil {
		return err
	}

	files := command.Args.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	out, colored := stdout(command.NoColor)
	printer := &hitPrinter{
		out:          out,
		colors:       newPalette(colored),
		withFilename: command.WithFilename || showFilenames(files),
		countOnly:    command.Count,
		unique:       command.Unique,
	}

	extractor := extract.Extractor{
		Codec:             c,
		ReportSpanStart:   command.Beginning,
		RequireLeadingNUL: command.Strict,
	}

	grepper := &printingGrepper{
		Grepper: grep.NewGrepper(matcher, extractor, command.MaxCount),
		printer: printer,
	}

	clean := newCleanup()
	opts := blob.Options{Decompress: command.Decompress}

	scanner := dirscanner.New(grepper, printer.HandleHit, opts)
	if command.Archives {
		scratchDir, err := os.MkdirTemp("", "sjisgrep")
		if err != nil {
			return err
		}
		clean.register(func() { os.RemoveAll(scratchDir) })

		scanner.WithInflator(inflator.New(), scratchDir)
	}

	failed := false
	for _, file := range files {
		var err error
		if file == "-" {
			err = command.searchStdin(logger, grepper, printer, opts)
		} else {
			err = scanner.Scan(logger, file)
		}

		if err != nil {
			fail(err)
			failed = true
		}
	}

	switch {
	case failed || printer.warnings > 0:
		clean.exit(exitError)
	case printer.total == 0:
		clean.exit(exitNoMatch)
	}

	clean.exit(exitMatch)

	return nil
}

func (command *SearchCommand) searchStdin(
	logger lager.Logger,
	grepper grep.Grepper,
	printer *hitPrinter,
	opts blob.Options,
) error {
	b, err := blob.Read(logger, os.Stdin, stdinName, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	return grepper.Grep(logger, grep.Source{Path: stdinName, Data: b.Bytes()}, printer.HandleHit)
}

func (command *SearchCommand) pattern(c codec.Codec) ([]byte, error) {
	if !command.Hex {
		return c.Encode(command.Args.Pattern)
	}

	digits := strings.TrimPrefix(strings.ToLower(command.Args.Pattern), "0x")
	digits = strings.Join(strings.Fields(digits), "")

	pattern, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("invalid hex pattern %q: %w", command.Args.Pattern, err)
	}

	return pattern, nil
}

func (command *SearchCommand) buildMatcher(pattern []byte) (matchers.Matcher, error) {
	switch command.Algorithm {
	case "index":
		return matchers.NewIndex(pattern)
	default:
		return matchers.NewBoyerMoore(pattern)
	}
}

func showFilenames(files []string) bool {
	if len(files) > 1 {
		return true
	}

	if files[0] == "-" {
		return false
	}

	info, err := os.Stat(files[0])
	return err == nil && info.IsDir()
}

type cleanup struct {
	work []func()
}

func newCleanup() *cleanup {
	clean := &cleanup{}

	signalsCh := make(chan os.Signal, 1)
	signal.Notify(signalsCh, os.Interrupt)

	go func() {
		<-signalsCh
		fmt.Fprintln(os.Stderr, "\ncleaning up...")
		clean.exit(exitError)
	}()

	return clean
}

func (c *cleanup) register(fn func()) {
	c.work = append(c.work, fn)
}

func (c *cleanup) exit(status int) {
	for _, w := range c.work {
		w()
	}

	os.Exit(status)
}

func warnIfOldExecutable() {
	const twoWeeks = 14 * 24 * time.Hour

	exePath, err := osext.Executable()
	if err != nil {
		return
	}

	info, err := os.Stat(exePath)
	if err != nil {
		return
	}

	if time.Since(info.ModTime()) > twoWeeks {
		warn("Executable is old! Please consider running `sjisgrep update`.")
	}
}
