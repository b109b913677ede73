// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package version

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Known(t *testing.T) {
	for _, code := range []uint32{0x3f800000, 0x40000000, 0x40400000, 0x40866666} {
		d, err := Lookup(code)
		require.NoError(t, err)
		assert.Equal(t, code, d.Code)
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.ValidSizes)
	}

	d, err := Lookup(0x40866666)
	require.NoError(t, err)
	assert.Equal(t, "de", d.ID)
	assert.True(t, d.IsValidSize(4996))
	assert.False(t, d.IsValidSize(4997))
}

func TestLookup_Unknown(t *testing.T) {
	for _, code := range []uint32{0, 1, 0x3f800001, 0x40866667, 0xffffffff} {
		_, err := Lookup(code)
		require.ErrorIs(t, err, ErrUnrecognizedVersion)
	}

	_, err := Lookup(0xDEADBEEF)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0xDEADBEEF")
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Code, all[i].Code)
	}
	for _, d := range all {
		got, err := Lookup(d.Code)
		require.NoError(t, err)
		assert.Equal(t, d.ID, got.ID)
	}
}

func TestLookup_ConcurrentReaders(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_, err := Lookup(0x40866666)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
