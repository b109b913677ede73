// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hkfile

import (
	"strings"

	"github.com/bpowers/hotkeys/internal/ondisk"
	"github.com/bpowers/hotkeys/names"
)

// Record is the decoded form of a single on-disk hotkey record.
type Record = ondisk.KeyBinding

// Binding is one action's key assignment inside a File.  Setters write the
// record back into the owning file's image immediately.
type Binding struct {
	file  *File
	off   int // byte offset of the record in the inflated image
	index int // position in file.bindings
	rec   ondisk.KeyBinding
}

// File returns the file this binding was read from.
func (b *Binding) File() *File {
	return b.file
}

// Offset is the record's byte offset within the inflated image.
func (b *Binding) Offset() int {
	return b.off
}

// Record returns a copy of the decoded record.
func (b *Binding) Record() Record {
	return b.rec
}

func (b *Binding) Key() Key {
	return Key(b.rec.Key)
}

// NameID is the game string id naming the action.
func (b *Binding) NameID() uint32 {
	return b.rec.NameID
}

func (b *Binding) Ctrl() bool {
	return b.rec.Ctrl
}

func (b *Binding) Alt() bool {
	return b.rec.Alt
}

func (b *Binding) Shift() bool {
	return b.rec.Shift
}

func (b *Binding) SetKey(k Key) error {
	return b.set(func(r *ondisk.KeyBinding) { r.Key = uint32(k) })
}

func (b *Binding) SetCtrl(v bool) error {
	return b.set(func(r *ondisk.KeyBinding) { r.Ctrl = v })
}

func (b *Binding) SetAlt(v bool) error {
	return b.set(func(r *ondisk.KeyBinding) { r.Alt = v })
}

func (b *Binding) SetShift(v bool) error {
	return b.set(func(r *ondisk.KeyBinding) { r.Shift = v })
}

// set only updates b once the owning file accepted the new record, so b
// and the image never disagree.
func (b *Binding) set(update func(r *ondisk.KeyBinding)) error {
	next := b.rec
	update(&next)
	if err := b.file.writeRecord(b.index, b.off, next); err != nil {
		return err
	}
	b.rec = next
	return nil
}

// Name resolves the action name through l.
func (b *Binding) Name(l names.Lookup) string {
	return names.Resolve(l, b.rec.NameID)
}

// Describe renders the binding like "Create Group #1: Ctrl + 1".
func (b *Binding) Describe(l names.Lookup) string {
	var sb strings.Builder
	sb.WriteString(b.Name(l))
	sb.WriteString(": ")
	if b.rec.Ctrl {
		sb.WriteString("Ctrl + ")
	}
	if b.rec.Alt {
		sb.WriteString("Alt + ")
	}
	if b.rec.Shift {
		sb.WriteString("Shift + ")
	}
	sb.WriteString(b.Key().String())
	return sb.String()
}

func (b *Binding) String() string {
	return b.Describe(nil)
}
