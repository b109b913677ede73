// Copyright 2021 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ondisk

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"
)

// ErrTruncated is returned when a read runs past the end of the buffer.
var ErrTruncated = errors.New("ondisk: unexpected end of data")

// Cursor is a sequential reader over a file image.  It keeps its own
// position and never writes to the underlying buffer.
type Cursor struct {
	s   *kaitai.Stream
	len int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{
		s:   kaitai.NewStream(bytes.NewReader(buf)),
		len: len(buf),
	}
}

// Pos returns the current read offset in bytes.
func (c *Cursor) Pos() (int, error) {
	pos, err := c.s.Pos()
	if err != nil {
		return 0, fmt.Errorf("kaitai.Pos: %w", err)
	}
	return int(pos), nil
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() (int, error) {
	pos, err := c.Pos()
	if err != nil {
		return 0, err
	}
	return c.len - pos, nil
}

func (c *Cursor) U32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v, err := c.s.ReadU4le()
	if err != nil {
		return 0, c.wrap(err, 4)
	}
	return v, nil
}

// Bytes returns a copy of the next n bytes.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b, err := c.s.ReadBytes(n)
	if err != nil {
		return nil, c.wrap(err, n)
	}
	return b, nil
}

// need fails with ErrTruncated unless n more bytes are unread.
func (c *Cursor) need(n int) error {
	remaining, err := c.Remaining()
	if err != nil {
		return err
	}
	if n < 0 || n > remaining {
		return fmt.Errorf("%w: reading %d bytes at offset %d of %d byte buffer", ErrTruncated, n, c.len-remaining, c.len)
	}
	return nil
}

func (c *Cursor) wrap(err error, n int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %d bytes of %d byte buffer", ErrTruncated, n, c.len)
	}
	return err
}
