// Package apply swaps the running executable for a downloaded release.
package apply

import (
	"crypto"
	_ "crypto/sha256"
	"fmt"
	"io"

	"code.cloudfoundry.org/lager"
	"github.com/inconshreveable/go-update"
)

type Options struct {
	// TargetPath is the file to replace. Empty means the running executable.
	TargetPath string

	// Checksum is the expected SHA-256 of the new binary, if known.
	Checksum []byte
}

type rollbackErr struct {
	error             // original error
	rollbackErr error // error encountered while rolling back
}

func (e *rollbackErr) Error() string {
	return fmt.Sprintf("%s (rollback failed: %s)", e.error, e.rollbackErr)
}

func (e *rollbackErr) Unwrap() error { return e.error }

func Apply(logger lager.Logger, r io.Reader, opts Options) error {
	logger = logger.Session("apply", lager.Data{"target": opts.TargetPath})
	logger.Debug("starting")
	defer logger.Debug("done")

	updateOpts := update.Options{TargetPath: opts.TargetPath}
	if opts.Checksum != nil {
		updateOpts.Checksum = opts.Checksum
		updateOpts.Hash = crypto.SHA256
	}

	if err := updateOpts.CheckPermissions(); err != nil {
		logger.Error("permission-check-failed", err)
		return err
	}

	err := update.Apply(r, updateOpts)
	if err == nil {
		return nil
	}

	logger.Error("failed", err)

	if rerr := update.RollbackError(err); rerr != nil {
		return &rollbackErr{err, rerr}
	}

	return err
}
