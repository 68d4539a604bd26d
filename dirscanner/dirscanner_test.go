package dirscanner_test

import (
	"errors"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/archiver/compressor"
	"code.cloudfoundry.org/lager"
	"code.cloudfoundry.org/lager/lagertest"

	"github.com/laplus-sadness/sjisgrep/blob"
	"github.com/laplus-sadness/sjisgrep/codec"
	"github.com/laplus-sadness/sjisgrep/dirscanner"
	"github.com/laplus-sadness/sjisgrep/extract"
	"github.com/laplus-sadness/sjisgrep/grep"
	"github.com/laplus-sadness/sjisgrep/grep/matchers"
	"github.com/laplus-sadness/sjisgrep/inflator"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DirScanner", func() {
	var (
		scanner *dirscanner.DirScanner
		logger  *lagertest.TestLogger
		tmpDir  string
		hits    []grep.Hit
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "dirscanner")
		Expect(err).NotTo(HaveOccurred())

		logger = lagertest.NewTestLogger("dirscanner")
		hits = nil

		matcher, err := matchers.NewBoyerMoore([]byte("B"))
		Expect(err).NotTo(HaveOccurred())

		grepper := grep.NewGrepper(matcher, extract.Extractor{Codec: codec.UTF8}, 0)
		handler := func(l lager.Logger, hit grep.Hit) error {
			hits = append(hits, hit)
			return nil
		}

		scanner = dirscanner.New(grepper, handler, blob.Options{})
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	writeFile := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	paths := func() []string {
		var ps []string
		for _, h := range hits {
			ps = append(ps, h.Path)
		}
		return ps
	}

	Context("when given a file", func() {
		It("greps the file", func() {
			path := writeFile("msg.bin", "\x00AB\x00")

			Expect(scanner.Scan(logger, path)).To(Succeed())

			Expect(hits).To(HaveLen(1))
			Expect(hits[0].Path).To(Equal(path))
			Expect(hits[0].Entry.String()).To(Equal(`0x2 "AB"`))
		})

		It("reports hits under the given label", func() {
			path := writeFile("msg.bin", "\x00AB\x00")

			Expect(scanner.ScanAs(logger, path, "STDIN")).To(Succeed())

			Expect(paths()).To(Equal([]string{"STDIN"}))
		})
	})

	Context("when given a directory", func() {
		It("greps every file in lexical order", func() {
			writeFile("b.bin", "\x00B\x00")
			writeFile("a.bin", "\x00AB\x00")
			writeFile(filepath.Join("c", "d.bin"), "\x00BB\x00")

			Expect(scanner.Scan(logger, tmpDir)).To(Succeed())

			Expect(paths()).To(Equal([]string{
				filepath.Join(tmpDir, "a.bin"),
				filepath.Join(tmpDir, "b.bin"),
				filepath.Join(tmpDir, "c", "d.bin"),
				filepath.Join(tmpDir, "c", "d.bin"),
			}))
		})

		It("keeps going after a file fails", func() {
			writeFile("a.bin", "\x00AB")
			writeFile("b.bin", "\x00AB\x00")

			err := scanner.Scan(logger, tmpDir)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, extract.ErrNoTrailingBoundary)).To(BeTrue())

			Expect(paths()).To(Equal([]string{filepath.Join(tmpDir, "b.bin")}))
		})
	})

	Context("when the path does not exist", func() {
		It("returns an error", func() {
			err := scanner.Scan(logger, filepath.Join(tmpDir, "missing"))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	Context("when there is an archive", func() {
		var (
			archivePath string
			scratchDir  string
		)

		BeforeEach(func() {
			inDir, err := os.MkdirTemp("", "dirscanner-tar-in")
			Expect(err).NotTo(HaveOccurred())
			defer os.RemoveAll(inDir)

			err = os.WriteFile(filepath.Join(inDir, "msg.dat"), []byte("\x00AB\x00"), 0644)
			Expect(err).NotTo(HaveOccurred())

			archivePath = filepath.Join(tmpDir, "out.tar")
			f, err := os.Create(archivePath)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			Expect(compressor.WriteTar(inDir+string(os.PathSeparator), f)).To(Succeed())

			scratchDir, err = os.MkdirTemp("", "dirscanner-scratch")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(scratchDir)
		})

		It("greps the raw archive by default", func() {
			Expect(scanner.Scan(logger, tmpDir)).To(Succeed())

			Expect(hits).NotTo(BeEmpty())
			for _, p := range paths() {
				Expect(p).To(Equal(archivePath))
			}
		})

		Context("with an inflator", func() {
			BeforeEach(func() {
				scanner.WithInflator(inflator.New(), scratchDir)
			})

			It("greps the members under the archive path", func() {
				Expect(scanner.Scan(logger, tmpDir)).To(Succeed())

				Expect(hits).To(HaveLen(1))
				Expect(hits[0].Path).To(HavePrefix(archivePath + string(os.PathSeparator)))
				Expect(hits[0].Path).To(HaveSuffix("msg.dat"))
			})

			It("removes the inflated members afterwards", func() {
				Expect(scanner.Scan(logger, tmpDir)).To(Succeed())

				entries, err := os.ReadDir(scratchDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(BeEmpty())
			})
		})
	})
})
