package gofds

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/aligator/gofds/checkpoint"
	"github.com/spf13/afero"
)

// fdsFileFs provides all methods needed from the dump filesystem for File.
// It mainly exists to be able to mock the Fs in tests.
// Generated mock using mockgen:
//  mockgen -source=file.go -destination=file_mock.go -package gofds
type fdsFileFs interface {
	readFileAt(name string, offset int64, readSize int64) ([]byte, error)
	readDir(name string) ([]os.FileInfo, error)
}

// File is an opened file or directory of Fs.
type File struct {
	fs   fdsFileFs
	path string

	isDirectory bool

	stat   os.FileInfo
	offset int64
}

func (f *File) Close() error {
	f.fs = nil
	f.path = ""
	f.isDirectory = false
	f.stat = nil
	f.offset = 0

	return nil
}

func (f *File) Read(p []byte) (n int, err error) {
	if p == nil {
		return 0, nil
	}

	if f.isDirectory {
		return 0, checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}

	// Reading a file if the size has been already reached, makes no sense.
	if f.stat.Size() <= f.offset {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.path, f.offset, int64(len(p)))
	n = copy(p, data)

	// Seek even if an error occurred, errors from reading are used even if seek also errors.
	_, seekErr := f.Seek(int64(n), io.SeekCurrent)

	if err != nil {
		return n, checkpoint.Wrap(err, ErrReadFile)
	}

	if seekErr != nil {
		return n, checkpoint.Wrap(seekErr, ErrReadFile)
	}

	return n, nil
}

func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if p == nil {
		return 0, nil
	}

	if f.isDirectory {
		return 0, checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}

	if off < 0 {
		return 0, checkpoint.Wrap(syscall.EINVAL, ErrReadFile)
	}

	// Reading over the end makes no sense.
	if f.stat.Size() <= off {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.path, off, int64(len(p)))
	n = copy(p, data)

	if err != nil {
		return n, checkpoint.Wrap(err, ErrReadFile)
	}

	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Seek jumps to a specific offset in the file. This affects all Read operation except ReadAt.
// May return a syscall.EINVAL error if the whence value is invalid.
// May return an afero.ErrOutOfRange error if the offset is out of range.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = f.stat.Size() + offset
	default:
		return 0, checkpoint.Wrap(ErrSeekFile, fmt.Errorf("%w, offset: %v, whence: %v", syscall.EINVAL, offset, whence))
	}

	if offset < 0 || offset > f.stat.Size() {
		return 0, checkpoint.Wrap(afero.ErrOutOfRange, fmt.Errorf("%w, offset: %v, whence: %v", ErrSeekFile, offset, whence))
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, readOnly("write", f.path)
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, readOnly("write", f.path)
}

func (f *File) Name() string {
	return f.stat.Name()
}

// Readdir reads the contents of a directory.
// With count > 0 at most count entries are returned and io.EOF signals the end of the directory.
// With count <= 0 all remaining entries are returned.
// May return syscall.ENOTDIR if the current File is no directory.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if !f.isDirectory {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	content, err := f.fs.readDir(f.path)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	if f.offset > int64(len(content)) {
		f.offset = int64(len(content))
	}
	content = content[f.offset:]

	if count <= 0 {
		f.offset += int64(len(content))
		return content, nil
	}

	if len(content) == 0 {
		return nil, io.EOF
	}

	if count > len(content) {
		count = len(content)
	}
	f.offset += int64(count)
	return content[:count], nil
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, err
}

func (f *File) Stat() (os.FileInfo, error) {
	return f.stat, nil
}

// Sync does nothing as nothing can be written.
func (f *File) Sync() error {
	return nil
}

func (f *File) Truncate(size int64) error {
	return readOnly("truncate", f.path)
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}
