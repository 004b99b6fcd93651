package gofds

import (
	"errors"
)

// These errors are reported while decoding a dump.
// None of them aborts a whole scan: see Image.Err, Listing.Problems and FileEntry.Err.
var (
	ErrOutOfRange        = errors.New("read past the end of the dump")
	ErrTruncatedHeader   = errors.New("disk header is truncated")
	ErrUnexpectedBlock   = errors.New("unexpected block")
	ErrMissingFileData   = errors.New("missing file data for declared header")
	ErrFileCountMismatch = errors.New("file count wrong, check file system")
	ErrTruncatedPayload  = errors.New("file data is shorter than the declared size")
)

// These errors may occur while reading input or writing recovered files.
var (
	ErrReadInput = errors.New("could not read the input dump")
	ErrWriteFile = errors.New("could not write the extracted file")
)

// These errors may occur while using the read only filesystem view.
var (
	ErrReadOnly = errors.New("the disk dump filesystem is read only")
	ErrReadFile = errors.New("could not read file completely")
	ErrSeekFile = errors.New("could not seek inside of the file")
	ErrReadDir  = errors.New("could not read the directory")
)
