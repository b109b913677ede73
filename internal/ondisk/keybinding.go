// Copyright 2021 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ondisk

import (
	"encoding/binary"
	"fmt"
)

// KeyBindingSize is the on-disk length of a KeyBinding:
// key (4) + name id (4) + ctrl (1) + alt (1) + shift (1) + pad (1)
const KeyBindingSize = 4 + 4 + 1 + 1 + 1 + 1

const (
	keyOff    = 0
	nameIDOff = 4
	ctrlOff   = 8
	altOff    = 9
	shiftOff  = 10
	padOff    = 11
)

// KeyBinding is the on-disk layout of a single action to key assignment.
type KeyBinding struct {
	Key    uint32
	NameID uint32
	Ctrl   bool
	Alt    bool
	Shift  bool
	// Pad is carried through unchanged; the game doesn't seem to read it.
	Pad    byte
}

// DecodeBool interprets a one-byte flag: any nonzero value is true.
func DecodeBool(b byte) bool {
	return b != 0
}

// EncodeBool returns the canonical byte for v.
func EncodeBool(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func (*KeyBinding) Size() int {
	return KeyBindingSize
}

func (r *KeyBinding) MarshalTo(b []byte) error {
	if len(b) < KeyBindingSize {
		return fmt.Errorf("buffer too short: %d < %d", len(b), KeyBindingSize)
	}
	b = b[:KeyBindingSize]
	binary.LittleEndian.PutUint32(b[keyOff:keyOff+4], r.Key)
	binary.LittleEndian.PutUint32(b[nameIDOff:nameIDOff+4], r.NameID)
	b[ctrlOff] = EncodeBool(r.Ctrl)
	b[altOff] = EncodeBool(r.Alt)
	b[shiftOff] = EncodeBool(r.Shift)
	b[padOff] = r.Pad
	return nil
}

func (r *KeyBinding) UnmarshalBytes(b []byte) error {
	if len(b) < KeyBindingSize {
		return fmt.Errorf("record too short: %d < %d", len(b), KeyBindingSize)
	}
	b = b[:KeyBindingSize]
	r.Key = binary.LittleEndian.Uint32(b[keyOff : keyOff+4])
	r.NameID = binary.LittleEndian.Uint32(b[nameIDOff : nameIDOff+4])
	r.Ctrl = DecodeBool(b[ctrlOff])
	r.Alt = DecodeBool(b[altOff])
	r.Shift = DecodeBool(b[shiftOff])
	r.Pad = b[padOff]
	return nil
}
