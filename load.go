package gofds

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/aligator/gofds/checkpoint"
	"github.com/therootcompany/xz"
)

var (
	gzipMagic = []byte("\x1f\x8b")
	xzMagic   = []byte("\xfd7zXZ\x00")
)

// Load reads a whole dump into memory.
// Dumps compressed with gzip or xz are decompressed transparently.
// Errors match ErrReadInput.
func Load(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(xzMagic))

	var src io.Reader = br
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, checkpoint.Wrap(err, fmt.Errorf("%w: gzip", ErrReadInput))
		}
		defer zr.Close()
		src = zr
	case bytes.HasPrefix(head, xzMagic):
		zr, err := xz.NewReader(br, xz.DefaultDictMax)
		if err != nil {
			return nil, checkpoint.Wrap(err, fmt.Errorf("%w: xz", ErrReadInput))
		}
		src = zr
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadInput)
	}
	return data, nil
}

// LoadFile reads the dump stored in the named file.
func LoadFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, checkpoint.Wrap(err, fmt.Errorf("%w: %s", ErrReadInput, name))
	}
	defer f.Close()

	return Load(f)
}
