package gofds

import (
	"fmt"
	"strings"
)

// unsafeChars are removed from every name built from disk data.
// They would allow directory injection or are invalid in file names.
var unsafeChars = strings.NewReplacer("/", "", "\\", "", "\x00", "")

// sanitize removes path separators from a name built from disk fields.
func sanitize(name string) string {
	return unsafeChars.Replace(name)
}

// DirName is the directory name recovered files of the image are stored in:
//  system-maker-title
// for example "HVC-01-ZEL".
func DirName(img Image) string {
	return sanitize(fmt.Sprintf("%s-%02X-%s", img.Header.System(), img.Header.Maker, img.Header.Title()))
}

// FileName is the name a recovered file is stored as:
//  image-number-secondary-name
// for example "0-1-0F-KYODAKU-".
func FileName(img Image, entry FileEntry) string {
	return sanitize(fmt.Sprintf("%d-%d-%02X-%s", img.Location.Index, entry.Number, entry.Secondary, entry.Name))
}

// EntryPath is DirName and FileName joined by a slash.
func EntryPath(img Image, entry FileEntry) string {
	return DirName(img) + "/" + FileName(img, entry)
}
