// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hkfile

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/hotkeys/internal/container"
	"github.com/bpowers/hotkeys/internal/ondisk"
	"github.com/bpowers/hotkeys/names"
)

const deVersion = 0x40866666

func records(n int, nameBase uint32) []Record {
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{
			Key:    uint32(KeyA) + uint32(i),
			NameID: nameBase + uint32(i),
			Ctrl:   i%2 == 0,
			Shift:  i%3 == 0,
		}
	}
	return recs
}

func writeImage(t *testing.T, path string, buf []byte) {
	t.Helper()
	_, err := container.Save(path, buf)
	require.NoError(t, err)
}

func TestLoad_Compact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.hkp")
	l := &Layout{
		Version: deVersion,
		Menus:   [][]Record{records(3, 100), records(5, 200)},
	}
	f, err := Create(path, l)
	require.NoError(t, err)

	assert.Equal(t, Compact, f.Format())
	assert.Equal(t, "de", f.Version().ID)
	assert.Equal(t, path, f.Path())
	assert.Equal(t, "mine [compact]", f.String())
	require.Equal(t, 8, f.Len())

	// version + menu count + first menu's record count
	const firstOff = 4 + 4 + 4
	assert.Equal(t, firstOff, f.At(0).Offset())
	assert.Equal(t, firstOff+2*ondisk.KeyBindingSize, f.At(2).Offset())
	// second menu's record count sits between the menus
	assert.Equal(t, firstOff+3*ondisk.KeyBindingSize+4, f.At(3).Offset())

	for i, rec := range append(records(3, 100), records(5, 200)...) {
		assert.Equal(t, rec, f.At(i).Record())
		assert.Same(t, f, f.At(i).File())
	}
}

func TestLoad_Extended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.hkp")
	l := &Layout{
		Version: deVersion,
		Leading: [][]Record{records(1, 10), nil, records(2, 20)},
		Menus:   [][]Record{records(4, 300)},
	}
	f, err := Create(path, l)
	require.NoError(t, err)

	assert.Equal(t, Extended, f.Format())
	require.Equal(t, 7, f.Len())
	assert.Equal(t, uint32(10), f.At(0).NameID())
	assert.Equal(t, uint32(20), f.At(1).NameID())
	assert.Equal(t, uint32(300), f.At(3).NameID())
}

func TestLoad_EmptyLeadingMenus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pompeii.hkp")
	f, err := Create(path, &Layout{
		Version: deVersion,
		Menus:   [][]Record{records(4, 1)},
	})
	require.NoError(t, err)
	require.Equal(t, 4, f.Len())
	// version + 3 empty menus + menu count + record count
	assert.Equal(t, 4+3*4+4+4, f.At(0).Offset())
}

func TestLoad_UnrecognizedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.hkp")
	buf, err := (&Layout{Version: 0x12345678, Menus: [][]Record{records(1, 1)}}).Encode(Compact)
	require.NoError(t, err)
	writeImage(t, path, buf)

	f, err := Load(path)
	require.ErrorIs(t, err, ErrUnrecognizedVersion)
	assert.Nil(t, f)
	assert.Contains(t, err.Error(), "0x12345678")
}

func TestLoad_Truncated(t *testing.T) {
	dir := t.TempDir()
	buf, err := (&Layout{Version: deVersion, Menus: [][]Record{records(3, 1)}}).Encode(Compact)
	require.NoError(t, err)

	u32s := func(vs ...uint32) []byte {
		var b []byte
		for _, v := range vs {
			b = binary.LittleEndian.AppendUint32(b, v)
		}
		return b
	}

	for _, tc := range []struct {
		name  string
		file  string
		image []byte
	}{
		{"empty", "mine.hkp", nil},
		{"partial version", "mine.hkp", buf[:2]},
		{"partial menu count", "mine.hkp", buf[:6]},
		{"partial record", "mine.hkp", buf[:len(buf)-1]},
		{"huge record count", "mine.hkp", u32s(deVersion, 1, 0xffffffff)},
		{"missing leading menus", "base.hkp", u32s(deVersion, 0)},
	} {
		path := filepath.Join(dir, tc.name, tc.file)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		writeImage(t, path, tc.image)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrTruncated, tc.name)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hkp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.hkp")
	_, err := Create(path, &Layout{Version: deVersion, Menus: [][]Record{records(7, 1), records(2, 50)}})
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	f, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, f.Save(false))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Empty(t, f.Changed())
}

func TestBinding_WriteThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.hkp")
	f, err := Create(path, &Layout{Version: deVersion, Menus: [][]Record{records(4, 1)}})
	require.NoError(t, err)
	orig := f.Bytes()

	b := f.At(2)
	fp := f.Fingerprint()
	require.NoError(t, b.SetKey(KeyF1))
	require.NoError(t, b.SetCtrl(true))
	require.NoError(t, b.SetAlt(true))
	require.NoError(t, b.SetShift(false))

	assert.Equal(t, KeyF1, b.Key())
	assert.True(t, b.Ctrl())
	assert.True(t, b.Alt())
	assert.False(t, b.Shift())
	assert.NotEqual(t, fp, f.Fingerprint())
	assert.Equal(t, []int{2}, f.Changed())

	image := f.Bytes()
	var rec ondisk.KeyBinding
	require.NoError(t, rec.UnmarshalBytes(image[b.Offset():]))
	assert.Equal(t, b.Record(), rec)

	// nothing outside the record moved
	assert.Equal(t, orig[:b.Offset()], image[:b.Offset()])
	end := b.Offset() + ondisk.KeyBindingSize
	assert.Equal(t, orig[end:], image[end:])

	// and it survives a save + reload
	require.NoError(t, f.Save(false))
	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, b.Record(), reloaded.At(2).Record())
	assert.Equal(t, f.At(1).Record(), reloaded.At(1).Record())
}

func TestBinding_NormalizesNonzeroFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.hkp")
	buf, err := (&Layout{Version: deVersion, Menus: [][]Record{records(1, 1)}}).Encode(Compact)
	require.NoError(t, err)
	const off = 4 + 4 + 4
	buf[off+8] = 0x02  // ctrl
	buf[off+10] = 0xff // shift
	writeImage(t, path, buf)

	f, err := Load(path)
	require.NoError(t, err)
	b := f.At(0)
	assert.True(t, b.Ctrl())
	assert.True(t, b.Shift())

	require.NoError(t, b.SetAlt(true))
	image := f.Bytes()
	assert.Equal(t, []byte{1, 1, 1}, image[off+8:off+11])
}

func TestWrite_ForeignBinding(t *testing.T) {
	dir := t.TempDir()
	a, err := Create(filepath.Join(dir, "a.hkp"), &Layout{Version: deVersion, Menus: [][]Record{records(1, 1)}})
	require.NoError(t, err)
	b, err := Create(filepath.Join(dir, "b.hkp"), &Layout{Version: deVersion, Menus: [][]Record{records(1, 1)}})
	require.NoError(t, err)

	assert.ErrorIs(t, a.Write(b.At(0)), ErrForeignBinding)
	assert.NoError(t, a.Write(a.At(0)))
}

func TestSave_ExternalConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.hkp")
	f, err := Create(path, &Layout{Version: deVersion, Menus: [][]Record{records(3, 1)}})
	require.NoError(t, err)
	loadedAt := f.ModTime()

	require.NoError(t, f.At(0).SetKey(KeyZ))

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = f.Save(false)
	require.ErrorIs(t, err, ErrExternalConflict)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, loadedAt, f.ModTime())

	require.NoError(t, f.Save(true))
	onDisk, _, err := container.ModTime(path)
	require.NoError(t, err)
	assert.True(t, onDisk.Equal(f.ModTime()))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, KeyZ, reloaded.At(0).Key())

	// the captured time moved, so a plain save works again
	require.NoError(t, f.Save(false))
}

func TestSave_RecreatesDeletedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.hkp")
	f, err := Create(path, &Layout{Version: deVersion, Menus: [][]Record{records(2, 1)}})
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	require.NoError(t, f.Save(false))
	_, err = Load(path)
	require.NoError(t, err)
}

func TestSaveAs(t *testing.T) {
	dir := t.TempDir()
	src, err := Create(filepath.Join(dir, "mine.hkp"), &Layout{Version: deVersion, Menus: [][]Record{records(3, 1)}})
	require.NoError(t, err)
	require.NoError(t, src.At(1).SetShift(true))

	target := filepath.Join(dir, "copy.hkp")
	require.NoError(t, os.WriteFile(target, []byte("occupied"), 0o644))

	clone, err := src.SaveAs(target, false)
	require.ErrorIs(t, err, ErrAlreadyExists)
	require.NotNil(t, clone)
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("occupied"), content)

	clone, err = src.SaveAs(target, true)
	require.NoError(t, err)
	assert.Equal(t, target, clone.Path())

	loaded, err := Load(target)
	require.NoError(t, err)
	assert.Equal(t, src.Bytes(), loaded.Bytes())

	fresh := filepath.Join(dir, "fresh.hkp")
	_, err = src.SaveAs(fresh, false)
	require.NoError(t, err)
	assert.True(t, container.Exists(fresh))
}

func TestClone_Independent(t *testing.T) {
	dir := t.TempDir()
	src, err := Create(filepath.Join(dir, "base.hkp"), &Layout{Version: deVersion, Menus: [][]Record{records(3, 1)}})
	require.NoError(t, err)

	clone, err := Clone(src, filepath.Join(dir, "other", "base.hkp"))
	require.NoError(t, err)
	assert.Equal(t, src.Format(), clone.Format())
	assert.Equal(t, src.Version(), clone.Version())
	require.Equal(t, src.Len(), clone.Len())
	assert.Equal(t, src.Bytes(), clone.Bytes())
	assert.True(t, clone.ModTime().IsZero())

	require.NoError(t, clone.At(0).SetKey(KeyF24))
	assert.Equal(t, KeyF24, clone.At(0).Key())
	assert.NotEqual(t, KeyF24, src.At(0).Key())
	assert.NotEqual(t, src.Bytes(), clone.Bytes())
	assert.Same(t, clone, clone.At(0).File())
	assert.Empty(t, src.Changed())

	assert.False(t, container.Exists(clone.Path()))
}

func TestClose(t *testing.T) {
	f, err := Create(filepath.Join(t.TempDir(), "mine.hkp"), &Layout{Version: deVersion, Menus: [][]Record{records(2, 1)}})
	require.NoError(t, err)
	b := f.At(0)
	key := b.Key()

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	assert.ErrorIs(t, b.SetKey(KeyZ), ErrClosed)
	assert.Equal(t, key, b.Key())
	assert.ErrorIs(t, f.Save(true), ErrClosed)
	_, err = f.SaveAs(filepath.Join(t.TempDir(), "x.hkp"), true)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBinding_Describe(t *testing.T) {
	f, err := Create(filepath.Join(t.TempDir(), "mine.hkp"), &Layout{
		Version: deVersion,
		Menus: [][]Record{{
			{Key: uint32(Key0 + 1), NameID: 10000, Ctrl: true},
			{Key: uint32(Key('Q')), NameID: 10001, Alt: true, Shift: true},
		}},
	})
	require.NoError(t, err)

	table := names.Table{10000: "Create Group #1"}
	assert.Equal(t, "Create Group #1: Ctrl + 1", f.At(0).Describe(table))
	assert.Equal(t, "#10001: Alt + Shift + Q", f.At(1).Describe(table))
	assert.Equal(t, "#10000: Ctrl + 1", f.At(0).String())
	assert.Equal(t, "Create Group #1", f.At(0).Name(table))
}

func TestLayout_Encode(t *testing.T) {
	_, err := (&Layout{Leading: [][]Record{nil}}).Encode(Compact)
	assert.Error(t, err)
	_, err = (&Layout{Leading: [][]Record{nil, nil}}).Encode(Extended)
	assert.Error(t, err)
	_, err = (&Layout{}).Encode(Format(7))
	assert.Error(t, err)

	buf, err := (&Layout{Version: deVersion}).Encode(Compact)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x66, 0x66, 0x86, 0x40, 0, 0, 0, 0}, buf)

	buf, err = (&Layout{Version: deVersion}).Encode(Extended)
	require.NoError(t, err)
	assert.Equal(t, 4+3*4+4, len(buf))
	assert.True(t, bytes.Equal(buf[4:], make([]byte, 16)))
}
