// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package container moves hotkey file images between disk and memory.
// On disk a hotkey file is a raw deflate stream with no header, checksum
// or preset dictionary.
package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
)

const defaultMode = 0o644

// Open decompresses the whole file at path into memory and returns it
// along with the file's modification time as observed before reading.
func Open(path string) (buf []byte, modTime time.Time, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() {
		_ = f.Close()
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, time.Time{}, err
	}

	compressed, release, err := mapFile(f, fi.Size())
	if err != nil {
		return nil, time.Time{}, err
	}
	defer release()

	r := flate.NewReader(bytes.NewReader(compressed))
	defer func() {
		_ = r.Close()
	}()
	buf, err = io.ReadAll(r)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("decompress %s: %w", path, err)
	}

	return buf, fi.ModTime(), nil
}

// Save compresses buf and replaces the file at path with the result,
// returning the new modification time.  The data is written to a temporary
// file in the same directory and renamed over path.
func Save(path string, buf []byte) (time.Time, error) {
	mode := fs.FileMode(defaultMode)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".hotkeys-*")
	if err != nil {
		return time.Time{}, err
	}
	tmpPath := tmp.Name()
	fail := func(err error) (time.Time, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return time.Time{}, err
	}

	w, err := flate.NewWriter(tmp, flate.DefaultCompression)
	if err != nil {
		return fail(fmt.Errorf("flate.NewWriter: %w", err))
	}
	if _, err := w.Write(buf); err != nil {
		return fail(fmt.Errorf("compress: %w", err))
	}
	if err := w.Close(); err != nil {
		return fail(fmt.Errorf("compress: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return time.Time{}, err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return time.Time{}, err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return time.Time{}, err
	}

	modTime, _, err := ModTime(path)
	return modTime, err
}

// ModTime returns the modification time of path.  A missing file is not an
// error: it reports ok == false and the zero time.
func ModTime(path string) (modTime time.Time, ok bool, err error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, false, nil
	} else if err != nil {
		return time.Time{}, false, err
	}
	return fi.ModTime(), true, nil
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
