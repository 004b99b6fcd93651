package gofds

import (
	"os"
	"time"
)

// nodeFileInfo is the os.FileInfo of a node.
// Sys returns the *FileEntry of a file and the *Header of a disk directory.
type nodeFileInfo struct {
	n *node
}

func (i nodeFileInfo) Name() string {
	return i.n.name
}

func (i nodeFileInfo) Size() int64 {
	return int64(len(i.n.data))
}

func (i nodeFileInfo) Mode() os.FileMode {
	if i.IsDir() {
		return os.ModeDir | 0555
	}
	return 0444
}

// ModTime is the creation date of the disk, or time.Time{} if the disk stores an invalid date.
func (i nodeFileInfo) ModTime() time.Time {
	return i.n.modTime
}

func (i nodeFileInfo) IsDir() bool {
	return i.n.isDir
}

func (i nodeFileInfo) Sys() interface{} {
	return i.n.sys
}
