// Package checkpoint decorates errors with the caller location and, optionally,
// the byte offset inside a disk dump the error refers to.
// Each error added to a checkpoint can be checked by errors.Is and retrieved by errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// noOffset marks a checkpoint without dump position.
const noOffset = -1

// From wraps an error by a new checkpoint which adds some caller information to the error.
// It returns nil, if err == nil.
func From(err error) error {
	// io.EOF must be returned as io.EOF directly
	// https://github.com/golang/go/issues/39155
	if err == io.EOF || err == io.ErrUnexpectedEOF || err == nil {
		return err
	}

	return newCheckpoint(nil, err, noOffset)
}

// Wrap adds a checkpoint with some caller information from an error and accepts
// also another error which further describes the checkpoint.
// Returns nil if prev == nil.
// Predefined sentinel errors are meant to be used as err:
//  func readTag() error {
//  	_, err := cursor.Take(1)
//  	return checkpoint.Wrap(err, ErrMissingFileData)
//  }
// Both errors.Is(err, ErrMissingFileData) and errors.Is(err, <the cursor error>) hold afterwards.
func Wrap(prev, err error) error {
	// io.EOF must be returned as io.EOF directly
	// https://github.com/golang/go/issues/39155
	if prev == io.EOF {
		return io.EOF
	}

	if prev == nil {
		return nil
	}

	return newCheckpoint(prev, err, noOffset)
}

// At behaves like Wrap but also records the absolute offset in the dump
// where the problem was found. Unlike Wrap it creates a checkpoint even if
// prev is nil, because a problem at a position is an error on its own.
func At(offset int, prev, err error) error {
	return newCheckpoint(prev, err, offset)
}

// Offset returns the innermost dump offset recorded by At in the error chain.
func Offset(err error) (int, bool) {
	offset, found := noOffset, false
	for err != nil {
		var c *checkpoint
		if !errors.As(err, &c) {
			break
		}
		if c.offset != noOffset {
			offset, found = c.offset, true
		}
		err = c.prev
	}
	return offset, found
}

type checkpoint struct {
	err    error
	prev   error
	offset int

	callerOk bool
	file     string
	line     int
}

func newCheckpoint(prev, err error, offset int) *checkpoint {
	// Skip newCheckpoint and the exported constructor.
	_, file, line, ok := runtime.Caller(2)

	return &checkpoint{
		err:    err,
		prev:   prev,
		offset: offset,

		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

func (e *checkpoint) Error() string {
	location := "File: unknown"
	if e.callerOk {
		location = fmt.Sprintf("File: %s:%d", e.file, e.line)
	}
	if e.offset != noOffset {
		location += fmt.Sprintf(" @ byte %d", e.offset)
	}

	msg := fmt.Sprintf("%s\n\t%v", location, e.err)
	if e.prev == nil {
		return msg
	}

	// Use different formatting for the prev error if it was not also a checkpoint.
	prevErrString := e.prev.Error()
	if _, ok := e.prev.(*checkpoint); !ok {
		prevErrString = "File: unknown\n\t" + strings.ReplaceAll(prevErrString, "\n", "\n\t")
	}
	return msg + "\n" + prevErrString
}

func (e *checkpoint) Unwrap() error {
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return errors.As(e.err, target)
}
