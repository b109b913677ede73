// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hotkeys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLibrary(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "alpha", filepath.Join(dir, "alpha", "base.hkp"))
	writeProfile(t, dir, "beta", filepath.Join(dir, "beta", "pompeii.hkp"))
	// no base file anywhere
	writeFile(t, filepath.Join(dir, "broken.hkp"), recs(1, 1))
	// not profiles
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	mkdirs(t, dir, "folder.hkp")

	l, err := OpenLibrary(dir)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, l.Close())
	}()

	assert.Equal(t, dir, l.Folder())
	require.Equal(t, 2, l.Len())
	assert.Equal(t, "alpha", l.Profiles()[0].Name())
	assert.Equal(t, "beta", l.Profiles()[1].Name())

	beta, ok := l.Get("beta")
	require.True(t, ok)
	assert.Equal(t, 12, beta.Len())
	_, ok = l.Get("broken")
	assert.False(t, ok)

	require.Len(t, l.Issues(), 1)
	assert.ErrorIs(t, l.Issues()[0], ErrBaseFileNotFound)
	assert.Contains(t, l.Issues()[0].Error(), "broken.hkp")
}

func TestOpenLibrary_FlatBaseFile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "one", filepath.Join(dir, "base.hkp"))
	writeFile(t, filepath.Join(dir, "two.hkp"), recs(2, 100))

	l, err := OpenLibrary(dir)
	require.NoError(t, err)
	require.Equal(t, 2, l.Len(), "base.hkp itself isn't a profile")
	assert.Empty(t, l.Issues())

	two, ok := l.Get("two")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "base.hkp"), two.BaseFile().Path())
	assert.Equal(t, 4+2, two.Len())
}

func TestOpenUserLibrary(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "alpha", filepath.Join(dir, "alpha", "base.hkp"))

	l, err := OpenUserLibrary(FixedPaths{Profiles: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())

	_, err = OpenUserLibrary(FixedPaths{})
	require.ErrorIs(t, err, ErrNoProfilesDir)

	_, err = OpenLibrary(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
