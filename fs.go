package gofds

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/aligator/gofds/checkpoint"
	"github.com/spf13/afero"
)

// node is a directory or a file of the filesystem view.
type node struct {
	name     string
	isDir    bool
	data     []byte
	modTime  time.Time
	sys      interface{}
	children []*node
}

// Fs is a read only afero.Fs presenting the files recovered from a dump.
// The root contains one directory per disk (see DirName) holding its files (see FileName),
// which are the same names the Extractor uses.
type Fs struct {
	images []Image
	root   *node
	nodes  map[string]*node
}

// New decodes the dump with the default options and returns its filesystem view.
func New(data []byte) *Fs {
	return NewWithOptions(data, DefaultOptions())
}

// NewWithOptions decodes the dump using opts and returns its filesystem view.
func NewWithOptions(data []byte, opts Options) *Fs {
	return NewFromImages(Decode(data, opts))
}

// NewFromImages builds the filesystem view of already decoded images.
// Images with a header error are left out. If two files end up with the same path,
// the one decoded later wins, just like a repeated extraction would overwrite it.
func NewFromImages(images []Image) *Fs {
	fs := &Fs{
		images: images,
		root:   &node{name: ".", isDir: true},
		nodes:  make(map[string]*node),
	}
	fs.nodes[""] = fs.root

	for i := range images {
		img := &images[i]
		if img.Err != nil {
			continue
		}

		dirName := DirName(*img)
		dir, ok := fs.nodes[dirName]
		if !ok {
			dir = &node{
				name:    dirName,
				isDir:   true,
				modTime: img.Header.Created.Time(),
				sys:     &img.Header,
			}
			fs.nodes[dirName] = dir
			fs.root.children = append(fs.root.children, dir)
		}

		for j := range img.Listing.Entries {
			entry := &img.Listing.Entries[j]
			fileName := FileName(*img, *entry)
			file := &node{
				name:    fileName,
				data:    entry.Payload,
				modTime: img.Header.Created.Time(),
				sys:     entry,
			}

			key := dirName + "/" + fileName
			if old, ok := fs.nodes[key]; ok {
				*old = *file
				continue
			}
			fs.nodes[key] = file
			dir.children = append(dir.children, file)
		}
	}

	for _, n := range fs.nodes {
		sort.Slice(n.children, func(a, b int) bool { return n.children[a].name < n.children[b].name })
	}

	return fs
}

// Images returns all decoded images, including the ones with errors.
func (fs *Fs) Images() []Image {
	return fs.images
}

// cleanPath converts any accepted path notation into the key of the nodes map.
// The root is "".
func cleanPath(name string) string {
	return strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(name)), "/")
}

func (fs *Fs) lookup(name string) (*node, bool) {
	n, ok := fs.nodes[cleanPath(name)]
	return n, ok
}

// readFileAt reads up to readSize bytes of the file at offset.
// If less bytes are available, io.EOF is returned together with them.
func (fs *Fs) readFileAt(name string, offset int64, readSize int64) ([]byte, error) {
	n, ok := fs.lookup(name)
	if !ok || n.isDir {
		return nil, checkpoint.Wrap(os.ErrNotExist, ErrReadFile)
	}
	if offset < 0 {
		return nil, checkpoint.Wrap(syscall.EINVAL, ErrReadFile)
	}

	size := int64(len(n.data))
	if offset >= size {
		return nil, io.EOF
	}

	end := offset + readSize
	if end > size {
		return n.data[offset:], io.EOF
	}
	return n.data[offset:end], nil
}

// readDir lists the directory.
func (fs *Fs) readDir(name string) ([]os.FileInfo, error) {
	n, ok := fs.lookup(name)
	if !ok {
		return nil, checkpoint.Wrap(os.ErrNotExist, ErrReadDir)
	}
	if !n.isDir {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	infos := make([]os.FileInfo, len(n.children))
	for i, child := range n.children {
		infos[i] = nodeFileInfo{child}
	}
	return infos, nil
}

func readOnly(op, name string) error {
	return &os.PathError{Op: op, Path: name, Err: checkpoint.Wrap(syscall.EPERM, ErrReadOnly)}
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, readOnly("create", name)
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return readOnly("mkdir", name)
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return readOnly("mkdir", path)
}

func (fs *Fs) Open(name string) (afero.File, error) {
	n, ok := fs.lookup(name)
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}

	return &File{
		fs:          fs,
		path:        cleanPath(name),
		isDirectory: n.isDir,
		stat:        nodeFileInfo{n},
	}, nil
}

func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_APPEND|os.O_TRUNC) != 0 {
		return nil, readOnly("open", name)
	}
	return fs.Open(name)
}

func (fs *Fs) Remove(name string) error {
	return readOnly("remove", name)
}

func (fs *Fs) RemoveAll(path string) error {
	return readOnly("remove", path)
}

func (fs *Fs) Rename(oldname, newname string) error {
	return readOnly("rename", oldname)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	n, ok := fs.lookup(name)
	if !ok {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
	}
	return nodeFileInfo{n}, nil
}

func (fs *Fs) Name() string {
	return "gofds"
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return readOnly("chmod", name)
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return readOnly("chown", name)
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return readOnly("chtimes", name)
}
