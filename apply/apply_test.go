package apply_test

import (
	"bytes"
	"crypto/sha256"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/lagertest"

	"github.com/laplus-sadness/sjisgrep/apply"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Apply", func() {
	var (
		logger     *lagertest.TestLogger
		tmpDir     string
		targetPath string
		newBinary  []byte
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "apply")
		Expect(err).NotTo(HaveOccurred())

		logger = lagertest.NewTestLogger("apply")
		targetPath = filepath.Join(tmpDir, "sjisgrep")
		newBinary = []byte("new release")

		Expect(os.WriteFile(targetPath, []byte("old release"), 0755)).To(Succeed())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("replaces the target", func() {
		err := apply.Apply(logger, bytes.NewReader(newBinary), apply.Options{TargetPath: targetPath})
		Expect(err).NotTo(HaveOccurred())

		Expect(os.ReadFile(targetPath)).To(Equal(newBinary))
	})

	Context("when the checksum matches", func() {
		It("replaces the target", func() {
			sum := sha256.Sum256(newBinary)

			err := apply.Apply(logger, bytes.NewReader(newBinary), apply.Options{
				TargetPath: targetPath,
				Checksum:   sum[:],
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(os.ReadFile(targetPath)).To(Equal(newBinary))
		})
	})

	Context("when the checksum does not match", func() {
		It("leaves the target alone", func() {
			sum := sha256.Sum256([]byte("something else"))

			err := apply.Apply(logger, bytes.NewReader(newBinary), apply.Options{
				TargetPath: targetPath,
				Checksum:   sum[:],
			})
			Expect(err).To(HaveOccurred())

			Expect(os.ReadFile(targetPath)).To(Equal([]byte("old release")))
		})
	})
})
