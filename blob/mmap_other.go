//go:build !unix

package blob

import "os"

func mapFile(path string) (*Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Blob{Path: path, data: data}, nil
}
