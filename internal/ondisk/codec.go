// Copyright 2021 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package ondisk reads and writes fixed-size little-endian records inside
// an in-memory file image.
package ondisk

import (
	"fmt"
)

// Record is a fixed-size value with a flat little-endian encoding.  Size
// must not depend on the receiver's contents.
type Record interface {
	Size() int
	MarshalTo(b []byte) error
	UnmarshalBytes(b []byte) error
}

type recordPtr[T any] interface {
	*T
	Record
}

// Codec reads records of type T from a Cursor and rewrites them in place.
type Codec[T any, P recordPtr[T]] struct {
	size int
}

func NewCodec[T any, P recordPtr[T]]() *Codec[T, P] {
	var zero T
	return &Codec[T, P]{
		size: P(&zero).Size(),
	}
}

// Size is the encoded length of a single record in bytes.
func (c *Codec[T, P]) Size() int {
	return c.size
}

// Read decodes the record at the cursor's position, advancing the cursor
// by Size bytes.
func (c *Codec[T, P]) Read(cur *Cursor) (T, error) {
	var v T
	b, err := cur.Bytes(c.size)
	if err != nil {
		return v, err
	}
	if err := P(&v).UnmarshalBytes(b); err != nil {
		return v, err
	}
	return v, nil
}

// WriteAt encodes v over buf[off:off+Size()].  No other byte of buf is
// touched, and no cursor reading buf is moved.
func (c *Codec[T, P]) WriteAt(buf []byte, v T, off int) error {
	if off < 0 || off+c.size > len(buf) {
		return fmt.Errorf("offset (%d) out of range (len %d)", off, len(buf))
	}
	return P(&v).MarshalTo(buf[off : off+c.size])
}
