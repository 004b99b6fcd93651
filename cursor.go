package gofds

import (
	"encoding/binary"
	"fmt"

	"github.com/aligator/gofds/checkpoint"
)

// Cursor is a forward only read position over an immutable dump.
// All decoders read through a Cursor so that every access is bounds checked.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor over data starting at pos.
// A negative pos is treated as 0, a pos past the end as the end.
func NewCursor(data []byte, pos int) *Cursor {
	if pos < 0 {
		pos = 0
	}
	if pos > len(data) {
		pos = len(data)
	}
	return &Cursor{data: data, pos: pos}
}

// Pos returns the absolute offset of the next byte.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Peek returns the next n bytes without advancing.
// If less than n bytes remain, the available bytes are returned together with ErrOutOfRange
// so that diagnostic callers can still show them.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if n < 0 {
		n = 0
	}
	if c.Remaining() < n {
		return c.data[c.pos:], checkpoint.At(c.pos, nil, fmt.Errorf("%w: want %d bytes, have %d", ErrOutOfRange, n, c.Remaining()))
	}
	return c.data[c.pos : c.pos+n], nil
}

// Take returns the next n bytes and advances by n.
// On a short read the cursor moves to the end of the dump.
func (c *Cursor) Take(n int) ([]byte, error) {
	b, err := c.Peek(n)
	c.pos += len(b)
	return b, err
}

// Skip advances by n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	_, err := c.Take(n)
	return err
}

// Byte reads a single byte.
func (c *Cursor) Byte() (byte, error) {
	b, err := c.Take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a little endian (low byte first) 16 bit value.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.Take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}
