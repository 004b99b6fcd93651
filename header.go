package gofds

import (
	"github.com/aligator/gofds/checkpoint"
)

// headerReader collects the first error of a series of sequential reads,
// so that the fixed header layout can be read field after field.
type headerReader struct {
	c   *Cursor
	err error
}

func (r *headerReader) bytes(dst []byte) {
	if r.err != nil {
		return
	}
	b, err := r.c.Take(len(dst))
	copy(dst, b)
	r.err = err
}

func (r *headerReader) u8() byte {
	var b [1]byte
	r.bytes(b[:])
	return b[0]
}

func (r *headerReader) skip(n int) {
	if r.err != nil {
		return
	}
	r.err = r.c.Skip(n)
}

func (r *headerReader) date() Date {
	return Date{
		Year:  r.u8(),
		Month: r.u8(),
		Day:   r.u8(),
	}
}

// DecodeHeader reads the disk header block of the image at loc.
// It returns the header and the position of the first block following it.
// If the dump ends inside the header an error matching ErrTruncatedHeader is returned.
func DecodeHeader(data []byte, loc Location) (Header, int, error) {
	r := &headerReader{c: NewCursor(data, loc.Offset)}

	var h Header
	r.bytes(h.Signature[:])
	h.Maker = r.u8()
	r.bytes(h.TitleID[:])
	h.Version = r.u8()
	h.Side = r.u8()
	r.bytes(h.DiskNumbers[:])
	h.UseIPL = r.u8()
	r.skip(5)
	h.Completed = r.date()
	r.skip(10)
	h.Created = r.date()
	r.skip(9)

	if r.err != nil {
		return Header{}, r.c.Pos(), checkpoint.At(loc.Offset, r.err, ErrTruncatedHeader)
	}

	return h, r.c.Pos(), nil
}
