package gofds

import (
	"fmt"
	"strings"

	"github.com/aligator/gofds/checkpoint"
)

// crcVariantGap is the number of bytes the CRC variant stores in front of every block tag.
const crcVariantGap = 2

// walkState is the state of the block stream walk.
type walkState int

const (
	awaitingBlockTag walkState = iota
	directoryBlock
	fileHeaderBlock
	fileDataBlock
	done
	malformed
)

// blockWalker walks the block stream behind a disk header.
// The stream has no length prefix: the walk ends at the first tag which is
// neither a directory nor a file header, or at the end of the dump.
type blockWalker struct {
	c       *Cursor
	opts    Options
	listing Listing

	// tagOffset is the position of the tag read last.
	tagOffset int
	// dirOffset is the position of the directory block tag.
	dirOffset int
	// header is the file header waiting for its data block.
	header FileEntry
}

// DecodeBlocks decodes the block stream starting at pos, which normally is the
// position returned by DecodeHeader.
// It never fails as a whole: every problem is recorded in Listing.Problems and
// the entries decoded so far are kept.
func DecodeBlocks(data []byte, pos int, opts Options) Listing {
	w := &blockWalker{
		c:    NewCursor(data, pos),
		opts: opts,
	}

	state := awaitingBlockTag
	for state != done && state != malformed {
		switch state {
		case awaitingBlockTag:
			state = w.awaitTag()
		case directoryBlock:
			state = w.directory()
		case fileHeaderBlock:
			state = w.fileHeader()
		case fileDataBlock:
			state = w.fileData()
		}
	}

	if w.listing.HasDirectory && w.listing.Declared != len(w.listing.Entries) {
		w.problem(checkpoint.At(
			w.dirOffset,
			fmt.Errorf("declared %d, found %d", w.listing.Declared, len(w.listing.Entries)),
			ErrFileCountMismatch,
		))
	}

	return w.listing
}

func (w *blockWalker) problem(err error) {
	w.listing.Problems = append(w.listing.Problems, err)
	if offset, ok := checkpoint.Offset(err); ok {
		w.opts.logger().Warn("blockStreamProblem", "offset", offset, "err", err)
		return
	}
	w.opts.logger().Warn("blockStreamProblem", "err", err)
}

// readTag reads the next block tag. ok is false at the end of the dump.
func (w *blockWalker) readTag() (tag BlockTag, ok bool) {
	if w.opts.CRCVariant {
		if err := w.c.Skip(crcVariantGap); err != nil {
			return BlockUnknown, false
		}
	}

	w.tagOffset = w.c.Pos()
	b, err := w.c.Byte()
	if err != nil {
		return BlockUnknown, false
	}
	return BlockTag(b), true
}

func (w *blockWalker) awaitTag() walkState {
	tag, ok := w.readTag()
	if !ok {
		return done
	}

	switch tag {
	case BlockDirectory:
		if w.listing.HasDirectory || len(w.listing.Entries) > 0 {
			w.problem(checkpoint.At(w.tagOffset, nil, fmt.Errorf("%w: second %v block", ErrUnexpectedBlock, tag)))
			return done
		}
		return directoryBlock
	case BlockFileHeader:
		return fileHeaderBlock
	}

	// Any other tag ends the directory. This is the normal termination.
	return done
}

func (w *blockWalker) directory() walkState {
	count, err := w.c.Byte()
	if err != nil {
		w.problem(checkpoint.At(w.tagOffset, err, fmt.Errorf("%w: file count missing", ErrUnexpectedBlock)))
		return malformed
	}

	w.listing.HasDirectory = true
	w.listing.Declared = int(count)
	w.dirOffset = w.tagOffset
	return awaitingBlockTag
}

func (w *blockWalker) fileHeader() walkState {
	r := &headerReader{c: w.c}

	var name [8]byte
	h := FileEntry{}
	h.Number = r.u8()
	h.Secondary = r.u8()
	r.bytes(name[:])
	h.Name = strings.Trim(string(name[:]), padding)
	if r.err == nil {
		h.LoadAddress, r.err = w.c.Uint16()
	}
	if r.err == nil {
		h.Size, r.err = w.c.Uint16()
	}
	h.Type = FileType(r.u8())

	if r.err != nil {
		w.problem(checkpoint.At(w.tagOffset, r.err, fmt.Errorf("%w: file header cut short", ErrMissingFileData)))
		return malformed
	}
	w.header = h
	return fileDataBlock
}

// fileData expects the data block belonging to w.header.
func (w *blockWalker) fileData() walkState {
	h := w.header

	tag, ok := w.readTag()
	if !ok {
		w.problem(checkpoint.At(w.tagOffset, nil, fmt.Errorf("%w: file %d %q ends the dump", ErrMissingFileData, h.Number, h.Name)))
		return malformed
	}
	if tag != BlockFileData {
		w.problem(checkpoint.At(w.tagOffset, nil, fmt.Errorf("%w: file %d %q is followed by a %v block", ErrMissingFileData, h.Number, h.Name, tag)))
		return malformed
	}

	h.Offset = w.c.Pos()
	payload, err := w.c.Take(int(h.Size))
	h.Payload = payload
	if err != nil {
		h.Err = checkpoint.At(h.Offset, err, fmt.Errorf("%w: file %d %q has %d of %d bytes", ErrTruncatedPayload, h.Number, h.Name, len(payload), h.Size))
		w.problem(h.Err)
	}

	w.listing.Entries = append(w.listing.Entries, h)
	return awaitingBlockTag
}
