package gofds

import (
	"io/fs"

	"github.com/spf13/afero"
)

// NewGoFS decodes the dump and returns its filesystem view as fs.FS,
// using the afero.IOFS compatibility layer.
func NewGoFS(data []byte, opts Options) fs.FS {
	return afero.NewIOFS(NewWithOptions(data, opts))
}

// NewGoFSFromImages returns the fs.FS view of already decoded images.
func NewGoFSFromImages(images []Image) fs.FS {
	return afero.NewIOFS(NewFromImages(images))
}
