// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hkfile

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dgryski/go-farm"

	"github.com/bpowers/hotkeys/internal/bitset"
	"github.com/bpowers/hotkeys/internal/container"
	"github.com/bpowers/hotkeys/internal/ondisk"
	"github.com/bpowers/hotkeys/version"
)

var recordCodec = ondisk.NewCodec[ondisk.KeyBinding]()

// File is a single hotkey file held in memory.  A File is not safe for
// concurrent use.
type File struct {
	path     string
	format   Format
	version  version.Descriptor
	buf      []byte
	bindings []*Binding
	changed  *bitset.Bitset
	modTime  time.Time
	logger   *slog.Logger
	closed   bool
}

// Load reads and parses the hotkey file at path.  The header shape is
// chosen by DetectFormat.
func Load(path string, opts ...Option) (*File, error) {
	o := buildOptions(opts)

	buf, modTime, err := container.Open(path)
	if err != nil {
		return nil, err
	}

	f := &File{
		path:    path,
		format:  DetectFormat(path),
		buf:     buf,
		modTime: modTime,
		logger:  o.logger,
	}
	if err := f.parse(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.changed = bitset.New(len(f.bindings))

	f.logger.Debug("loaded hotkey file",
		slog.String("path", path),
		slog.String("format", f.format.String()),
		slog.String("version", f.version.ID),
		slog.Int("bindings", len(f.bindings)))

	return f, nil
}

func (f *File) parse() error {
	cur := ondisk.NewCursor(f.buf)

	code, err := cur.U32()
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}
	if f.version, err = version.Lookup(code); err != nil {
		return err
	}
	if !f.version.IsValidSize(len(f.buf)) {
		// informational only; the game has shipped more sizes than we know about
		f.logger.Warn("unexpected decompressed size",
			slog.String("path", f.path),
			slog.String("version", f.version.ID),
			slog.Int("size", len(f.buf)))
	}

	if f.format == Extended {
		if err := f.readMenus(cur, extendedLeadingMenus); err != nil {
			return fmt.Errorf("leading menus: %w", err)
		}
	}

	menus, err := cur.U32()
	if err != nil {
		return fmt.Errorf("menu count: %w", err)
	}
	if err := f.readMenus(cur, menus); err != nil {
		return err
	}

	return nil
}

func (f *File) readMenus(cur *ondisk.Cursor, n uint32) error {
	for i := uint32(0); i < n; i++ {
		count, err := cur.U32()
		if err != nil {
			return fmt.Errorf("menu %d: %w", i, err)
		}
		remaining, err := cur.Remaining()
		if err != nil {
			return err
		}
		if uint64(count)*uint64(recordCodec.Size()) > uint64(remaining) {
			return fmt.Errorf("menu %d: %w: %d records need %d bytes, %d left",
				i, ErrTruncated, count, uint64(count)*uint64(recordCodec.Size()), remaining)
		}
		for j := uint32(0); j < count; j++ {
			off, err := cur.Pos()
			if err != nil {
				return err
			}
			rec, err := recordCodec.Read(cur)
			if err != nil {
				return fmt.Errorf("menu %d record %d: %w", i, j, err)
			}
			f.bindings = append(f.bindings, &Binding{
				file:  f,
				off:   off,
				index: len(f.bindings),
				rec:   rec,
			})
		}
	}
	return nil
}

// Clone returns an independent in-memory copy of source that saves to
// path.  Nothing is written to disk.  The header isn't re-parsed: format
// and version are taken from source.
func Clone(source *File, path string) (*File, error) {
	if source.closed {
		return nil, ErrClosed
	}
	modTime, _, err := container.ModTime(path)
	if err != nil {
		return nil, err
	}

	f := &File{
		path:     path,
		format:   source.format,
		version:  source.version,
		buf:      slices.Clone(source.buf),
		bindings: make([]*Binding, 0, len(source.bindings)),
		changed:  bitset.New(len(source.bindings)),
		modTime:  modTime,
		logger:   source.logger,
	}
	for _, b := range source.bindings {
		f.bindings = append(f.bindings, &Binding{
			file:  f,
			off:   b.off,
			index: b.index,
			rec:   b.rec,
		})
	}
	return f, nil
}

// Write re-encodes b's current values into the in-memory image.  Binding
// setters call it; there is no need to call it directly after a setter.
func (f *File) Write(b *Binding) error {
	if b.file != f {
		return ErrForeignBinding
	}
	return f.writeRecord(b.index, b.off, b.rec)
}

func (f *File) writeRecord(index, off int, rec ondisk.KeyBinding) error {
	if f.closed {
		return ErrClosed
	}
	if err := recordCodec.WriteAt(f.buf, rec, off); err != nil {
		return err
	}
	f.changed.Set(index)
	return nil
}

// Save compresses the in-memory image over the file it was loaded from.
//
// If the file on disk has a newer modification time than when this File
// was loaded (or last saved), Save writes nothing and returns an error
// wrapping ErrExternalConflict, unless force is set.  This is advisory:
// another process can still write between the check and the save.
func (f *File) Save(force bool) error {
	if f.closed {
		return ErrClosed
	}

	onDisk, exists, err := container.ModTime(f.path)
	if err != nil {
		return err
	}
	if exists && !force && onDisk.After(f.modTime) {
		return fmt.Errorf("%w: %q modified at %s, loaded at %s; set force to overwrite anyway",
			ErrExternalConflict, f.path, onDisk.Format(time.RFC3339Nano), f.modTime.Format(time.RFC3339Nano))
	}

	modTime, err := container.Save(f.path, f.buf)
	if err != nil {
		return err
	}
	f.modTime = modTime

	f.logger.Debug("saved hotkey file",
		slog.String("path", f.path),
		slog.Bool("force", force),
		slog.Int("changed", f.changed.Count()))

	return nil
}

// SaveAs saves a Clone of f to path and returns the clone, which is
// returned even when saving fails.  If something already exists at path
// and overwrite is false, nothing is written and the error wraps
// ErrAlreadyExists.
func (f *File) SaveAs(path string, overwrite bool) (*File, error) {
	clone, err := Clone(f, path)
	if err != nil {
		return nil, err
	}
	if !overwrite && container.Exists(path) {
		return clone, fmt.Errorf("%w: %q", ErrAlreadyExists, path)
	}
	return clone, clone.Save(false)
}

// Close releases the in-memory image.  Getters on the file's bindings keep
// working; setters, Write and Save fail with ErrClosed.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	clear(f.buf)
	f.buf = nil
	return nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Format() Format {
	return f.format
}

func (f *File) Version() version.Descriptor {
	return f.version
}

// ModTime is the on-disk modification time as of the last load or save.
func (f *File) ModTime() time.Time {
	return f.modTime
}

// Bindings returns the file's bindings in on-disk order.  The slice is a
// copy but the bindings are shared with f.
func (f *File) Bindings() []*Binding {
	return slices.Clone(f.bindings)
}

func (f *File) Len() int {
	return len(f.bindings)
}

func (f *File) At(i int) *Binding {
	return f.bindings[i]
}

// Bytes returns a copy of the inflated image.
func (f *File) Bytes() []byte {
	return slices.Clone(f.buf)
}

// Fingerprint hashes the inflated image.
func (f *File) Fingerprint() uint64 {
	return farm.Hash64(f.buf)
}

// Changed returns the indexes of bindings modified through a setter or
// Write since the file was loaded or cloned.
func (f *File) Changed() []int {
	return f.changed.Ones()
}

func (f *File) String() string {
	name := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))
	return fmt.Sprintf("%s [%s]", name, f.format)
}
