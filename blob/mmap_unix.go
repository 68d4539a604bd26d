//go:build unix

package blob

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

const maxInt = int64(^uint(0) >> 1)

func mapFile(path string) (*Blob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	// pipes and devices cannot be mapped
	if !fi.Mode().IsRegular() {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return &Blob{Path: path, data: data}, nil
	}

	size := fi.Size()
	if size == 0 {
		return &Blob{Path: path}, nil
	}
	if size > maxInt {
		return nil, fmt.Errorf("%s: file too large to map (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: err}
	}

	return &Blob{
		Path:    path,
		data:    data,
		release: func() error { return unix.Munmap(data) },
	}, nil
}
