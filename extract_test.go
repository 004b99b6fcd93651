package gofds

import (
	"errors"
	"os"
	"path"
	"syscall"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// failingFs refuses to create one file name.
type failingFs struct {
	afero.Fs
	fail string
}

func (f failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if path.Base(name) == f.fail {
		return nil, &os.PathError{Op: "open", Path: name, Err: syscall.ENOSPC}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func sampleImages(t *testing.T) []Image {
	t.Helper()
	images := Decode(testDump(t, "sample.fds"), DefaultOptions())
	require.Len(t, images, 2)
	return images
}

func TestExtractor_ExtractImage(t *testing.T) {
	images := sampleImages(t)
	fs := afero.NewMemMapFs()
	e := NewExtractor(fs)

	result, err := e.ExtractImage(images[0], "")
	require.NoError(t, err)
	require.Empty(t, result.Failed)
	require.Equal(t, []string{
		"HVC-01-ZEL/0-0-00-KYODAKU-",
		"HVC-01-ZEL/0-1-0F-MAIN",
		"HVC-01-ZEL/0-2-10-CHR01",
	}, result.Written)

	main, err := afero.ReadFile(fs, "HVC-01-ZEL/0-1-0F-MAIN")
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, main)

	catalog, err := afero.ReadFile(fs, "HVC-01-ZEL/0-0-00-KYODAKU-")
	require.NoError(t, err)
	require.Equal(t, testDump(t, "catalog.bin"), catalog)

	// A second run overwrites the files.
	result, err = e.ExtractImage(images[0], "")
	require.NoError(t, err)
	require.Len(t, result.Written, 3)

	info, err := fs.Stat("HVC-01-ZEL/0-2-10-CHR01")
	require.NoError(t, err)
	require.EqualValues(t, 32, info.Size())
}

func TestExtractor_ExtractImage_pattern(t *testing.T) {
	images := sampleImages(t)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "single file", pattern: "HVC-01-ZEL/0-1-*", want: []string{"HVC-01-ZEL/0-1-0F-MAIN"}},
		{name: "by number", pattern: "*/*-0-*", want: []string{"HVC-01-ZEL/0-0-00-KYODAKU-"}},
		{name: "double star", pattern: "**/*CHR*", want: []string{"HVC-01-ZEL/0-2-10-CHR01"}},
		{name: "other image", pattern: "HVC-A4-*/**", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewExtractor(afero.NewMemMapFs()).ExtractImage(images[0], tt.pattern)
			require.NoError(t, err)
			require.Equal(t, tt.want, result.Written)
		})
	}
}

func TestExtractor_ExtractImage_badPattern(t *testing.T) {
	images := sampleImages(t)
	fs := afero.NewMemMapFs()

	result, err := NewExtractor(fs).ExtractImage(images[0], "HVC-[")
	require.ErrorIs(t, err, doublestar.ErrBadPattern)
	require.Empty(t, result.Written)

	exists, err := afero.DirExists(fs, "HVC-01-ZEL")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestExtractor_ExtractImage_failuresContinue(t *testing.T) {
	images := sampleImages(t)
	fs := failingFs{Fs: afero.NewMemMapFs(), fail: "0-1-0F-MAIN"}

	result, err := NewExtractor(fs).ExtractImage(images[0], "")
	require.NoError(t, err)
	require.Equal(t, []string{"HVC-01-ZEL/0-0-00-KYODAKU-", "HVC-01-ZEL/0-2-10-CHR01"}, result.Written)
	require.Len(t, result.Failed, 1)
	require.ErrorIs(t, result.Failed[0], ErrWriteFile)
	require.ErrorIs(t, result.Failed[0], syscall.ENOSPC)
}

func TestExtractor_ExtractImage_readOnly(t *testing.T) {
	images := sampleImages(t)
	e := NewExtractor(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	result, err := e.ExtractImage(images[1], "")
	require.NoError(t, err)
	require.Empty(t, result.Written)
	require.Len(t, result.Failed, 1)
	require.True(t, errors.Is(result.Failed[0], ErrWriteFile))
}

func TestExtractor_ExtractImage_brokenImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	img := Image{Err: ErrTruncatedHeader, Listing: Listing{Entries: []FileEntry{{Name: "X"}}}}

	result, err := NewExtractor(fs).ExtractImage(img, "")
	require.NoError(t, err)
	require.Empty(t, result.Written)
	require.Empty(t, result.Failed)
}

func TestExtractor_Extract(t *testing.T) {
	fs := afero.NewMemMapFs()
	img := Image{Header: Header{Maker: 0xA4}}
	copy(img.Header.Signature[:], Signature)
	copy(img.Header.TitleID[:], "SMB ")

	name, err := NewExtractor(fs).Extract(img, FileEntry{Secondary: 1, Name: "DATA", Payload: []byte("SMBDATA!")})
	require.NoError(t, err)
	require.Equal(t, "HVC-A4-SMB/0-0-01-DATA", name)

	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	require.Equal(t, "SMBDATA!", string(data))
}
