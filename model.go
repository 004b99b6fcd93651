// File model contains the structs which match the structures of the disk system format.

package gofds

import (
	"strings"
)

// HeaderSize is the length of the disk header block including its block tag.
const HeaderSize = 56

// Signature is the disk header block start: block tag 1 followed by the system id.
const Signature = "\x01*NINTENDO-HVC*"

// BlockTag is the first byte of each block in the block stream.
type BlockTag byte

const (
	BlockUnknown    BlockTag = 0
	BlockDiskHeader BlockTag = 1
	BlockDirectory  BlockTag = 2
	BlockFileHeader BlockTag = 3
	BlockFileData   BlockTag = 4
)

func (t BlockTag) String() string {
	switch t {
	case BlockDiskHeader:
		return "disk header"
	case BlockDirectory:
		return "directory"
	case BlockFileHeader:
		return "file header"
	case BlockFileData:
		return "file data"
	}
	return "unknown"
}

// FileType is the raw file type byte of a file header.
type FileType byte

const (
	Program       FileType = 0
	CharacterData FileType = 1
	ArbitraryData FileType = 2
)

// Known reports whether the type is one of the three defined types.
func (t FileType) Known() bool {
	return t <= ArbitraryData
}

func (t FileType) String() string {
	switch t {
	case Program:
		return "PRG"
	case CharacterData:
		return "CHR"
	case ArbitraryData:
		return "VRAM"
	}
	return "?"
}

// Location is a disk image found by Scan.
type Location struct {
	// Offset is the position of the signature in the dump.
	Offset int
	// Index is the position among all images found in the same dump.
	Index int
}

// Header is the decoded disk header block.
type Header struct {
	Signature   [15]byte
	Maker       byte
	TitleID     [4]byte
	Version     byte
	Side        byte
	DiskNumbers [3]byte
	UseIPL      byte
	Completed   Date
	Created     Date
}

// System returns the three letter system id stored inside the signature ("HVC").
func (h Header) System() string {
	return string(h.Signature[11:14])
}

// Title returns the title id with trailing padding removed.
func (h Header) Title() string {
	return strings.TrimRight(string(h.TitleID[:]), padding)
}

// FileEntry is one file recovered from the block stream.
type FileEntry struct {
	Number      byte
	Secondary   byte
	Name        string
	LoadAddress uint16
	Size        uint16
	Type        FileType

	// Payload is a view into the dump. It is shorter than Size if the dump ended early.
	Payload []byte
	// Offset is the position of the payload in the dump.
	Offset int
	// Err is set if the payload is truncated.
	Err error
}

// LoadSpan is the last address the file occupies when loaded.
func (e FileEntry) LoadSpan() int {
	return int(e.LoadAddress) + int(e.Size) - 1
}

// Listing is the directory of one disk image.
type Listing struct {
	// HasDirectory is false if the stream did not start with a directory block.
	HasDirectory bool
	// Declared is the file count stored in the directory block.
	Declared int
	Entries  []FileEntry
	// Problems contains the recoverable errors found while walking the blocks.
	Problems []error
}

// Image is a decoded disk image.
type Image struct {
	Location Location
	Header   Header
	Listing  Listing
	// Err is set if the header could not be decoded. Header and Listing are empty then.
	Err error
}

// Catalogs returns the recognized catalog blocks keyed by entry index.
func (img Image) Catalogs() map[int]*Catalog {
	catalogs := make(map[int]*Catalog)
	for i, entry := range img.Listing.Entries {
		if c, ok := RecognizeCatalog(entry); ok {
			catalogs[i] = c
		}
	}
	return catalogs
}

// padding are the characters trimmed from fixed width text fields.
const padding = " \t\n\r\x00\x0b"
