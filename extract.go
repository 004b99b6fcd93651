package gofds

import (
	"fmt"
	"os"

	"github.com/aligator/gofds/checkpoint"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// Extractor writes recovered files into a filesystem.
// Existing files are overwritten, so running an extraction twice gives the same result.
type Extractor struct {
	fs afero.Fs
}

// NewExtractor creates an Extractor writing into fs.
// Use afero.NewBasePathFs to extract below a directory of the OS filesystem.
func NewExtractor(fs afero.Fs) *Extractor {
	return &Extractor{fs: fs}
}

// Result lists what ExtractImage did.
type Result struct {
	Written []string
	// Failed contains one error per file which could not be written.
	Failed []error
}

// Extract writes the payload of one entry to DirName/FileName and returns that path.
// Errors match ErrWriteFile.
func (e *Extractor) Extract(img Image, entry FileEntry) (string, error) {
	dir := DirName(img)
	name := dir + "/" + FileName(img, entry)

	if err := e.fs.MkdirAll(dir, dirPerm); err != nil {
		return name, checkpoint.Wrap(err, fmt.Errorf("%w: %s", ErrWriteFile, dir))
	}

	if err := afero.WriteFile(e.fs, name, entry.Payload, filePerm); err != nil {
		return name, checkpoint.Wrap(err, fmt.Errorf("%w: %s", ErrWriteFile, name))
	}

	return name, nil
}

// ExtractImage extracts every entry of the image whose path (see EntryPath) matches
// the doublestar pattern. An empty pattern matches all entries.
// A failing file does not stop the extraction of the remaining ones.
func (e *Extractor) ExtractImage(img Image, pattern string) (Result, error) {
	var result Result
	if img.Err != nil {
		return result, nil
	}

	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return result, checkpoint.From(fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern))
	}

	for _, entry := range img.Listing.Entries {
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, EntryPath(img, entry)); !ok {
				continue
			}
		}

		name, err := e.Extract(img, entry)
		if err != nil {
			result.Failed = append(result.Failed, err)
			continue
		}
		result.Written = append(result.Written, name)
	}

	return result, nil
}
